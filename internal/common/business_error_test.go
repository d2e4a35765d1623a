package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewBusinessError(ParamsError, "账号重复"))

	assert.ErrorIs(t, err, NewBusinessError(ParamsError, "账号重复"))
	assert.ErrorIs(t, err, NewBusinessError(ParamsError, ""))
	assert.NotErrorIs(t, err, NewBusinessError(ParamsError, "用户不存在"))
	assert.NotErrorIs(t, err, NewBusinessError(NoAuth, ""))
	assert.NotErrorIs(t, err, errors.New("账号重复"))
}

func TestAsBusinessError(t *testing.T) {
	be, ok := AsBusinessError(fmt.Errorf("wrapped: %w", NewBusinessError(NotLogin, "用户未登录")))
	assert.True(t, ok)
	assert.Equal(t, 40100, be.Code)
	assert.Equal(t, "未登录", be.Message)
	assert.Equal(t, "40100 未登录: 用户未登录", be.Error())

	_, ok = AsBusinessError(errors.New("boom"))
	assert.False(t, ok)
}
