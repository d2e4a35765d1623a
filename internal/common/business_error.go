package common

import (
	"errors"
	"fmt"
)

// BusinessError 业务异常
//
// Code 与 Message 来自状态码表, Description 给出具体原因
type BusinessError struct {
	Code        int
	Message     string
	Description string
}

// NewBusinessError 创建业务异常
func NewBusinessError(status StatusCode, description string) *BusinessError {
	return &BusinessError{
		Code:        status.Code,
		Message:     status.Message,
		Description: description,
	}
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Code, e.Message, e.Description)
}

// Is 按状态码比较
func (e *BusinessError) Is(target error) bool {
	var t *BusinessError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && (t.Description == "" || e.Description == t.Description)
}

// AsBusinessError 取出错误链中的业务异常
func AsBusinessError(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
