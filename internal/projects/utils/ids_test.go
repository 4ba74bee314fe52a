package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProjectID(t *testing.T) {
	pattern := regexp.MustCompile(`^proj-\d{5}-\d{4}$`)
	for range 50 {
		id, err := NewProjectID()
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
	}
}
