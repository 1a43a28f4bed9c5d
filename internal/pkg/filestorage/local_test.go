package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadedFile builds a multipart.FileHeader the way gin hands one to the
// services, by running a real multipart form through a request.
func uploadedFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	_, header, err := req.FormFile("image")
	require.NoError(t, err)
	return header
}

func TestLocalStorage_SaveFileWithPath(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	header := uploadedFile(t, "cover.gif", []byte("GIF89a"))

	url, err := storage.SaveFileWithPath(header, "posts")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/media/posts/"), "got %q", url)
	assert.True(t, strings.HasSuffix(url, ".gif"), "got %q", url)

	// The file must exist on disk with the uploaded content
	physicalPath := storage.GetFullPath(url)
	require.NotEmpty(t, physicalPath)
	content, err := os.ReadFile(physicalPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("GIF89a"), content)
}

func TestLocalStorage_SaveFile_RootDirectory(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	url, err := storage.SaveFile(uploadedFile(t, "avatar.png", []byte("png-bytes")))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/media/"), "got %q", url)
	assert.NotContains(t, strings.TrimPrefix(url, "/media/"), "/")
}

func TestLocalStorage_SaveFile_NilHeader(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	url, err := storage.SaveFile(nil)
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestLocalStorage_UniqueFilenames(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	first, err := storage.SaveFileWithPath(uploadedFile(t, "cover.jpg", []byte("a")), "posts")
	require.NoError(t, err)
	second, err := storage.SaveFileWithPath(uploadedFile(t, "cover.jpg", []byte("b")), "posts")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalStorage_DeleteFile(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	url, err := storage.SaveFileWithPath(uploadedFile(t, "cover.gif", []byte("GIF89a")), "posts")
	require.NoError(t, err)
	physicalPath := storage.GetFullPath(url)

	require.NoError(t, storage.DeleteFile(url))
	_, err = os.Stat(physicalPath)
	assert.True(t, os.IsNotExist(err))

	// Deleting an already removed file stays a no-op
	assert.NoError(t, storage.DeleteFile(url))
}

func TestLocalStorage_DeleteFile_RejectsEscapingPaths(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	assert.Error(t, storage.DeleteFile("/media/../../etc/passwd"))
	assert.Empty(t, storage.GetFullPath("/media/../../etc/passwd"))
}

func TestValidateImageExtension(t *testing.T) {
	tests := []struct {
		filename string
		valid    bool
	}{
		{"cover.jpg", true},
		{"cover.JPEG", true},
		{"cover.png", true},
		{"cover.gif", true},
		{"cover.webp", true},
		{"notes.txt", false},
		{"archive.tar.gz", false},
		{"no-extension", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			err := ValidateImageExtension(tt.filename)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrUnsupportedImage)
			}
		})
	}
}
