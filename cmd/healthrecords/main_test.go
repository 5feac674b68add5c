package main

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPassword(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"newline terminated", "secret\n", "secret"},
		{"crlf terminated", "secret\r\n", "secret"},
		{"piped without newline", "secret", "secret"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := readPassword(strings.NewReader(tc.input), io.Discard)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReadPasswordEmptyInput(t *testing.T) {
	_, err := readPassword(strings.NewReader(""), io.Discard)
	assert.ErrorIs(t, err, io.EOF)
}
