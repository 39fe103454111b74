package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	out := &bytes.Buffer{}
	got, err := GetSimpleText(readerFromLines("  hello  "), "Prompt", out)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Contains(t, out.String(), "Prompt\n> ")
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	out := &bytes.Buffer{}
	r := bufio.NewReader(strings.NewReader("partial")) // no trailing newline
	got, err := GetSimpleText(r, "Prompt", out)
	require.NoError(t, err)
	assert.Equal(t, "partial", got)
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	readPassword = func(_ int) ([]byte, error) { return []byte("secret"), nil }
	defer func() { readPassword = orig }()

	out := &bytes.Buffer{}
	pw, err := GetPassword(out)
	require.NoError(t, err)
	assert.Equal(t, "secret", pw)
	assert.Contains(t, out.String(), "Enter password: ")
}

func TestGetMultiline(t *testing.T) {
	out := &bytes.Buffer{}
	got, err := GetMultiline(readerFromLines("first", "second", ""), "Content", out)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", got)
}

func TestGetMultiline_Empty(t *testing.T) {
	out := &bytes.Buffer{}
	got, err := GetMultiline(readerFromLines(""), "Content", out)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestConfirm(t *testing.T) {
	cases := []struct {
		answer string
		want   bool
	}{
		{"y", true},
		{"Y", true},
		{"yes", true},
		{"YES", true},
		{"n", false},
		{"no", false},
		{"", false},
		{"maybe", false},
	}
	for _, tc := range cases {
		out := &bytes.Buffer{}
		got := Confirm(readerFromLines(tc.answer), "Sure?", out)
		assert.Equalf(t, tc.want, got, "answer %q", tc.answer)
		assert.Contains(t, out.String(), "Sure? (y/n)")
	}
}
