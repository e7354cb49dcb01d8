package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStateFullName(t *testing.T) {
	code, ok := NormalizeState("California")
	assert.True(t, ok)
	assert.Equal(t, "CA", code)
}

func TestNormalizeStatePassthroughCode(t *testing.T) {
	code, ok := NormalizeState("WY")
	assert.True(t, ok)
	assert.Equal(t, "WY", code)
}

func TestNormalizeStateRejectsUnknown(t *testing.T) {
	for _, value := range []string{"Ontario", "california", "XX", ""} {
		_, ok := NormalizeState(value)
		assert.False(t, ok, "expected %q to be rejected", value)
	}
}

func TestStateTableCoversAllFiftyStates(t *testing.T) {
	assert.Len(t, stateCodes, 50)
	seen := make(map[string]bool)
	for name, code := range stateCodes {
		assert.Len(t, code, 2, "code for %s", name)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}
