package validation

import "regexp"

// Field limits enforced at signup.
const (
	PasswordMinLength = 8
	UsernameMinLength = 3
	UsernameMaxLength = 150
)

// CompiledPatterns holds the compiled form of every input pattern the
// services match against. Email values are lowercased before matching.
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	Username *regexp.Regexp
	Slug     *regexp.Regexp
}{
	Email:    regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`),
	Username: regexp.MustCompile(`^[\w.@+\-]+$`),
	Slug:     regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`),
}
