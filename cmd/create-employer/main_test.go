package main

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func read(input string) (employerInput, error) {
	return readEmployer(bufio.NewReader(strings.NewReader(input)), io.Discard)
}

func TestReadEmployer_EnteredPassword(t *testing.T) {
	in, err := read("TechNova\nHR@TechNova.io\nsecret123\nsecret123\n")
	require.NoError(t, err)
	assert.Equal(t, "TechNova", in.Name)
	assert.Equal(t, "hr@technova.io", in.Email)
	assert.Equal(t, "secret123", in.Password)
	assert.False(t, in.Generated)
}

func TestReadEmployer_GeneratedPassword(t *testing.T) {
	in, err := read("TechNova\nhr@technova.io\n\n")
	require.NoError(t, err)
	assert.True(t, in.Generated)
	assert.Len(t, in.Password, 16)
}

func TestReadEmployer_Rejects(t *testing.T) {
	_, err := read("TechNova\nhr@technova.io\nsecret123\nsecret124\n")
	assert.ErrorIs(t, err, errPasswordMismatch)

	_, err = read("TechNova\nnot-an-email\n\n")
	assert.Error(t, err)

	_, err = read("T\nhr@technova.io\n\n")
	assert.Error(t, err)
}
