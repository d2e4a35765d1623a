package dto

// UserRegisterRequest 用户注册请求
type UserRegisterRequest struct {
	UserAccount     string `json:"user_account"`
	UserPassword    string `json:"user_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UserLoginRequest 用户登录请求
type UserLoginRequest struct {
	UserAccount  string `json:"user_account"`
	UserPassword string `json:"user_password"`
}

// UserUpdateRequest 用户更新请求
//
// 未传或为空字符串的字段不会更新, 0 值会被保留
type UserUpdateRequest struct {
	ID          int64   `json:"id"`
	Username    *string `json:"username"`
	AvatarURL   *string `json:"avatar_url" binding:"omitempty,url"`
	Gender      *int    `json:"gender"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" binding:"omitempty,email"`
	UserProfile *string `json:"user_profile"`
	Tags        *string `json:"tags" binding:"omitempty,string_list_json"`
}

// UpdateData 生成更新字段, 键为列名
func (r *UserUpdateRequest) UpdateData() map[string]interface{} {
	data := make(map[string]interface{})

	putString := func(column string, value *string) {
		if value != nil && *value != "" {
			data[column] = *value
		}
	}

	putString("username", r.Username)
	putString("avatar_url", r.AvatarURL)
	putString("phone", r.Phone)
	putString("email", r.Email)
	putString("user_profile", r.UserProfile)
	putString("tags", r.Tags)
	if r.Gender != nil {
		data["gender"] = *r.Gender
	}

	return data
}

// RecommendQuery 推荐用户分页参数
type RecommendQuery struct {
	PageNumber int `form:"page_number"`
	PageSize   int `form:"page_size"`
}

// SearchTagsQuery 标签搜索参数
type SearchTagsQuery struct {
	TagNameList []string `form:"tag_name_list"`
}
