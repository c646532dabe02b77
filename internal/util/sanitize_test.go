package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeLine(t *testing.T) {
	t.Parallel()

	t.Run("trims and drops control characters", func(t *testing.T) {
		require.Equal(t, "Hello world", SanitizeLine("  Hello\x00 wor\x07ld \n"))
	})

	t.Run("drops zero width characters", func(t *testing.T) {
		require.Equal(t, "admin", SanitizeLine("ad\u200Bmin\uFEFF"))
	})

	t.Run("collapses to empty", func(t *testing.T) {
		require.Equal(t, "", SanitizeLine(" \u200B\t "))
	})

	t.Run("keeps non ascii letters", func(t *testing.T) {
		require.Equal(t, "café ñandú", SanitizeLine("café ñandú"))
	})
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "line one\nline two\n\tindented", SanitizeText("line one\r\nline two\n\tindented\x1b  "))
	require.Equal(t, "", SanitizeText("\r\n\u200D"))
}
