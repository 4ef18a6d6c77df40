package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string passthrough", "hello", "hello"},
		{"int stringified", 2869, "2869"},
		{"int64 stringified", int64(42), "42"},
		{"json whole number", float64(10), "10"},
		{"json fraction", 12.5, "12.5"},
		{"bool", true, "true"},
		{"nil", nil, ""},
		{"bytes", []byte("abc"), "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeString(tt.in))
		})
	}
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool("True"))
	assert.True(t, ToBool(" yes "))
	assert.True(t, ToBool(float64(1)))
	assert.False(t, ToBool("0"))
	assert.False(t, ToBool(nil))
	assert.False(t, ToBool("maybe"))
}

func TestToStringList(t *testing.T) {
	assert.Nil(t, ToStringList(nil))
	assert.Nil(t, ToStringList(""))
	assert.Equal(t, []string{"opera"}, ToStringList("opera"))
	assert.Equal(t, []string{"a", "b"}, ToStringList([]string{"a", "b"}))
	assert.Equal(t, []string{"a", "2"}, ToStringList([]any{"a", 2, ""}))
}

func TestCleanWhitespace(t *testing.T) {
	assert.Equal(t, "+31612345678", CleanWhitespace(" +31 6 1234 5678 "))
	assert.Equal(t, "janedoe", CleanWhitespace("Jane Doe"))
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Concertgebouw Orkest", "concertgebouw-orkest"},
		{"Théâtre de la Ville", "theatre-de-la-ville"},
		{"  An  Evening -- of Song!  ", "an-evening-of-song"},
		{"Mahler: Symphony No. 2", "mahler-symphony-no-2"},
		{"ÅÄÖ", "aao"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeID(tt.in))
		})
	}
}
