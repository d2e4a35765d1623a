package session

import (
	"encoding/json"
	"fmt"

	"user-center/internal/models"
)

// UserLoginState 会话中保存登录用户的键
const UserLoginState = "user_login_state"

// Handle 会话读写接口
//
// github.com/gin-contrib/sessions.Session 满足该接口
type Handle interface {
	Get(key interface{}) interface{}
	Set(key interface{}, val interface{})
	Delete(key interface{})
	Clear()
	Save() error
}

// SetLoginUser 保存登录用户
func SetLoginUser(sess Handle, user *models.SafetyUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("序列化登录用户失败: %w", err)
	}
	sess.Set(UserLoginState, string(data))
	if err := sess.Save(); err != nil {
		return fmt.Errorf("保存会话失败: %w", err)
	}
	return nil
}

// LoginUser 读取登录用户, 未登录时返回 nil
func LoginUser(sess Handle) (*models.SafetyUser, error) {
	if sess == nil {
		return nil, nil
	}
	raw, ok := sess.Get(UserLoginState).(string)
	if !ok || raw == "" {
		return nil, nil
	}

	var user models.SafetyUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("解析登录用户失败: %w", err)
	}
	return &user, nil
}

// IsLogin 是否已登录
func IsLogin(sess Handle) bool {
	if sess == nil {
		return false
	}
	raw, ok := sess.Get(UserLoginState).(string)
	return ok && raw != ""
}
