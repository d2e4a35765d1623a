package utils

import (
	"net/http"

	"user-center/internal/common"
	"user-center/internal/dto"

	"github.com/gin-gonic/gin"
)

// Response 统一响应格式
type Response = dto.BaseResponse[interface{}]

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    common.Success.Code,
		Data:    data,
		Message: common.Success.Message,
	})
}

// ErrorResponse 错误响应
//
// 业务异常与系统异常都返回 200, 由 code 区分
func ErrorResponse(c *gin.Context, code int, message, description string) {
	c.JSON(http.StatusOK, Response{
		Code:        code,
		Message:     message,
		Description: description,
	})
}

// StatusResponse 按状态码响应
func StatusResponse(c *gin.Context, status common.StatusCode, description string) {
	ErrorResponse(c, status.Code, status.Message, description)
}

// Error 将错误转换为统一响应
func Error(c *gin.Context, err error) {
	if be, ok := common.AsBusinessError(err); ok {
		ErrorResponse(c, be.Code, be.Message, be.Description)
		return
	}
	ErrorResponse(c, common.SystemError.Code, err.Error(), "")
}

// BadRequest 参数错误
func BadRequest(c *gin.Context, description string) {
	StatusResponse(c, common.ParamsError, description)
}

// NullRequest 请求数据为空
func NullRequest(c *gin.Context, description string) {
	StatusResponse(c, common.NullError, description)
}
