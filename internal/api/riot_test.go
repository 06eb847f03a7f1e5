package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRiotID(t *testing.T) {
	name, tag, err := ParseRiotID("Faker#KR1")
	require.NoError(t, err)
	assert.Equal(t, "Faker", name)
	assert.Equal(t, "KR1", tag)

	// Only the first # separates name from tag.
	name, tag, err = ParseRiotID("Player#EU#W")
	require.NoError(t, err)
	assert.Equal(t, "Player", name)
	assert.Equal(t, "EU#W", tag)

	for _, bad := range []string{"Faker", "#KR1", "Faker#", ""} {
		_, _, err := ParseRiotID(bad)
		assert.Error(t, err, "riot id %q must be rejected", bad)
	}
}
