package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 20*time.Second, ParseDuration("20s", time.Minute))
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Minute))
}

func TestParseDuration_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("10", time.Minute))
}
