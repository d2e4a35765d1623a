package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateData(t *testing.T) {
	empty := ""
	name := "dogyupi"
	gender := 0

	req := UserUpdateRequest{
		ID:       1,
		Username: &name,
		Email:    &empty,
		Gender:   &gender,
	}
	assert.Equal(t, map[string]interface{}{
		"username": "dogyupi",
		"gender":   0,
	}, req.UpdateData())

	assert.Empty(t, (&UserUpdateRequest{ID: 1, Phone: &empty}).UpdateData())
}

func TestNewPagination(t *testing.T) {
	page := NewPagination[string](nil, 11, 2, 5)
	assert.EqualValues(t, 3, page.Pages)
	assert.NotNil(t, page.Records)
	assert.Empty(t, page.Records)

	page = NewPagination([]string{"a"}, 0, 1, 10)
	assert.Zero(t, page.Pages)
}
