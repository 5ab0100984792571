package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mamaar/condflat/pkg/types"
)

func TestParsePositionArg(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		file, pos, err := parsePositionArg("src/app.js:12:5")
		require.NoError(t, err)
		require.Equal(t, "src/app.js", file)
		require.Equal(t, types.Position{Line: 12, Column: 5}, pos)
	})

	t.Run("file name containing colons", func(t *testing.T) {
		file, pos, err := parsePositionArg("weird:name.js:3:1")
		require.NoError(t, err)
		require.Equal(t, "weird:name.js", file)
		require.Equal(t, types.Position{Line: 3, Column: 1}, pos)
	})

	invalid := []string{
		"app.js",
		"app.js:12",
		"app.js:0:1",
		"app.js:1:0",
		"app.js:x:1",
		"app.js:1:y",
		":1:1",
	}
	for _, arg := range invalid {
		t.Run("invalid "+arg, func(t *testing.T) {
			_, _, err := parsePositionArg(arg)
			require.Error(t, err)
		})
	}
}
