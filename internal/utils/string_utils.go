package utils

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNotStringList 不是序列化的字符串列表
var ErrNotStringList = errors.New("不是序列化的字符串列表")

// 与 Python 的 \w 保持一致, 字母与数字按 Unicode 判断
var specialCharPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]|\s+`)

// IsAnyBlank 任意一个字符串为空或只包含空白字符
func IsAnyBlank(strs ...string) bool {
	for _, s := range strs {
		if strings.TrimSpace(s) == "" {
			return true
		}
	}
	return false
}

// IsNotBlank 所有字符串都不为空
func IsNotBlank(strs ...string) bool {
	return !IsAnyBlank(strs...)
}

// HasSpecialChar 账号是否包含特殊字符或空白
func HasSpecialChar(account string) bool {
	return specialCharPattern.MatchString(account)
}

// IsStringListJSON 是否为序列化的字符串列表, 如 ["java","go"]
func IsStringListJSON(s string) bool {
	_, err := JSONToStringList(s)
	return err == nil
}

// JSONToStringList 反序列化字符串列表
func JSONToStringList(s string) ([]string, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, err
	}
	// null 会被解析为 nil 切片
	if raw == nil {
		return nil, ErrNotStringList
	}

	result := make([]string, 0, len(raw))
	for _, item := range raw {
		// null 元素反序列化到 string 不会报错, 需要单独判断
		if strings.TrimSpace(string(item)) == "null" {
			return nil, ErrNotStringList
		}
		var str string
		if err := json.Unmarshal(item, &str); err != nil {
			return nil, ErrNotStringList
		}
		result = append(result, str)
	}
	return result, nil
}

// IsEmpty 集合是否为空
func IsEmpty[T any](items []T) bool {
	return len(items) == 0
}
