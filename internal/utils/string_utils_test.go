package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAnyBlank(t *testing.T) {
	assert.True(t, IsAnyBlank(""))
	assert.True(t, IsAnyBlank("abc", "   "))
	assert.True(t, IsAnyBlank("abc", "\t\n"))
	assert.False(t, IsAnyBlank("abc", "def"))
	assert.False(t, IsAnyBlank())

	assert.True(t, IsNotBlank("a", "b"))
	assert.False(t, IsNotBlank("a", " "))
}

func TestHasSpecialChar(t *testing.T) {
	tests := []struct {
		account string
		want    bool
	}{
		{"dogYupi", false},
		{"user_01", false},
		{"用户账号", false},
		{"user-01", true},
		{"user 01", true},
		{"user@mail", true},
		{"tab\tuser", true},
	}

	for _, tt := range tests {
		t.Run(tt.account, func(t *testing.T) {
			assert.Equal(t, tt.want, HasSpecialChar(tt.account))
		})
	}
}

func TestIsStringListJSON(t *testing.T) {
	valid := []string{`[]`, `["java"]`, `["Java", "Python", "Go"]`, ` [ "a" ] `}
	for _, s := range valid {
		assert.True(t, IsStringListJSON(s), s)
	}

	invalid := []string{``, `null`, `{}`, `"java"`, `[1, 2]`, `["a", 1]`, `["a", null]`, `[["a"]]`, `[`}
	for _, s := range invalid {
		assert.False(t, IsStringListJSON(s), s)
	}
}

func TestJSONToStringList(t *testing.T) {
	tags, err := JSONToStringList(`["Java","Python"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Java", "Python"}, tags)

	tags, err = JSONToStringList(`[]`)
	require.NoError(t, err)
	assert.Empty(t, tags)

	_, err = JSONToStringList(`null`)
	assert.ErrorIs(t, err, ErrNotStringList)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty[string](nil))
	assert.True(t, IsEmpty([]int{}))
	assert.False(t, IsEmpty([]string{"a"}))
}

func TestEncryptPassword(t *testing.T) {
	digest := EncryptPassword("yupi", "12345678")
	assert.Equal(t, "b0dd3697a192885d7c055db46155b26a", digest)
	assert.Equal(t, digest, EncryptPassword("yupi", "12345678"))
	assert.NotEqual(t, digest, EncryptPassword("other", "12345678"))
}
