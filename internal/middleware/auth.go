package middleware

import (
	"user-center/internal/common"
	"user-center/internal/models"
	"user-center/internal/service"
	"user-center/internal/session"
	"user-center/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const loginUserKey = "login_user"

// LoginState 读取会话中的登录用户并存入上下文, 未登录时不拦截
func LoginState(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := session.LoginUser(sessions.Default(c))
		if err != nil {
			logger.WithError(err).Warn("解析会话中的登录用户失败")
		} else if user != nil {
			c.Set(loginUserKey, user)
		}
		c.Next()
	}
}

// AdminRequired 管理员权限中间件
func AdminRequired(userService *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !userService.IsAdmin(sessions.Default(c)) {
			utils.StatusResponse(c, common.NoAuth, "用户非管理员")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetLoginUser 从上下文获取登录用户
func GetLoginUser(c *gin.Context) (*models.SafetyUser, bool) {
	value, exists := c.Get(loginUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.SafetyUser)
	return user, ok
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *gin.Context) (int64, bool) {
	user, ok := GetLoginUser(c)
	if !ok {
		return 0, false
	}
	return user.ID, true
}
