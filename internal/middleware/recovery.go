package middleware

import (
	"fmt"

	"user-center/internal/common"
	"user-center/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Recovery 捕获 panic 并返回系统异常
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithFields(logrus.Fields{
			"path":       c.Request.URL.Path,
			"request_id": GetRequestID(c),
			"panic":      recovered,
		}).Error("请求处理发生异常")

		utils.ErrorResponse(c, common.SystemError.Code, fmt.Sprintf("%v", recovered), "")
		c.Abort()
	})
}
