package regwizard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOTPBufferSet(t *testing.T) {
	t.Parallel()

	var b OTPBuffer

	b.Set(0, "1")
	b.Set(1, "2")
	require.False(t, b.Complete())
	require.Equal(t, "12", b.Code())

	// Typing into a filled slot keeps the last character only.
	b.Set(0, "19")
	require.Equal(t, "92", b.Code())

	// Non-digit input is ignored.
	b.Set(2, "x")
	require.Equal(t, "92", b.Code())

	// Empty input clears the slot (backspace).
	b.Set(1, "")
	require.Equal(t, "9", b.Code())

	// Out-of-range indexes are ignored.
	b.Set(-1, "5")
	b.Set(4, "5")
	require.Equal(t, "9", b.Code())
}

func TestOTPBufferPaste(t *testing.T) {
	t.Parallel()

	var b OTPBuffer

	b.Paste("1234")
	require.True(t, b.Complete())
	require.Equal(t, "1234", b.Code())

	// Longer pastes keep the leading 4 digits.
	b.Paste("987654")
	require.Equal(t, "9876", b.Code())

	// A non-digit stops the fill.
	b.Paste("12x4")
	require.Equal(t, "12", b.Code())
	require.False(t, b.Complete())

	b.Clear()
	require.Equal(t, "", b.Code())
}
