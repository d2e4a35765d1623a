package models

import (
	"time"
)

const (
	// DefaultRole 普通用户
	DefaultRole = 0
	// AdminRole 管理员
	AdminRole = 1
)

// User 用户模型
type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     *string    `gorm:"size:256" json:"username"`
	UserAccount  string     `gorm:"size:256;not null;uniqueIndex:idx_user_account_active,where:is_deleted = false" json:"user_account"`
	UserPassword string     `gorm:"size:512;not null" json:"-"`
	UserRole     int        `gorm:"not null;default:0" json:"user_role"`
	Gender       *int       `json:"gender"`
	Phone        *string    `gorm:"size:128" json:"phone"`
	Email        *string    `gorm:"size:512" json:"email"`
	AvatarURL    *string    `gorm:"size:1024" json:"avatar_url"`
	UserProfile  *string    `gorm:"size:512" json:"user_profile"`
	UserStatus   int        `gorm:"not null;default:0" json:"user_status"` // 0 - 正常
	Tags         *string    `gorm:"size:1024" json:"tags"`                  // JSON 字符串列表
	CreateTime   time.Time  `gorm:"autoCreateTime;not null" json:"create_time"`
	UpdateTime   time.Time  `gorm:"autoUpdateTime;not null" json:"-"`
	IsDeleted    bool       `gorm:"not null;default:false;index" json:"-"`
	DeleteTime   *time.Time `json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "user"
}

// SafetyUser 脱敏后的用户信息
//
// 对外返回以及会话中保存的都是该结构, 不包含密码与删除相关字段
type SafetyUser struct {
	ID          int64     `json:"id"`
	Username    *string   `json:"username"`
	UserAccount string    `json:"user_account"`
	AvatarURL   *string   `json:"avatar_url"`
	Gender      *int      `json:"gender"`
	UserRole    int       `json:"user_role"`
	Phone       *string   `json:"phone"`
	Email       *string   `json:"email"`
	UserStatus  int       `json:"user_status"`
	Tags        *string   `json:"tags"`
	UserProfile *string   `json:"user_profile"`
	CreateTime  time.Time `json:"create_time"`
}

// NewSafetyUser 用户信息脱敏
func NewSafetyUser(user *User) *SafetyUser {
	if user == nil {
		return nil
	}
	return &SafetyUser{
		ID:          user.ID,
		Username:    user.Username,
		UserAccount: user.UserAccount,
		AvatarURL:   user.AvatarURL,
		Gender:      user.Gender,
		UserRole:    user.UserRole,
		Phone:       user.Phone,
		Email:       user.Email,
		UserStatus:  user.UserStatus,
		Tags:        user.Tags,
		UserProfile: user.UserProfile,
		CreateTime:  user.CreateTime,
	}
}

// NewSafetyUsers 批量脱敏
func NewSafetyUsers(users []User) []SafetyUser {
	result := make([]SafetyUser, 0, len(users))
	for i := range users {
		result = append(result, *NewSafetyUser(&users[i]))
	}
	return result
}

// IsAdmin 是否为管理员
func (u *SafetyUser) IsAdmin() bool {
	return u != nil && u.UserRole == AdminRole
}
