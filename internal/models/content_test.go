package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTargetType(t *testing.T) {
	for _, valid := range []string{"Post", "Story", "Comment", "Reel"} {
		parsed, err := ParseTargetType(valid)
		require.NoError(t, err)
		assert.Equal(t, TargetType(valid), parsed)
	}

	for _, invalid := range []string{"", "post", "POST", "Photo"} {
		_, err := ParseTargetType(invalid)
		assert.Error(t, err, "tag %q", invalid)
	}
}
