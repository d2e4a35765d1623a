package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// InitValidator 在 gin 的验证器上注册自定义规则
func InitValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin 验证器类型不匹配")
	}
	return RegisterValidations(v)
}

// RegisterValidations 注册自定义验证函数
func RegisterValidations(v *validator.Validate) error {
	// 错误信息中使用 json 字段名
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation("string_list_json", validateStringListJSON); err != nil {
		return fmt.Errorf("注册 string_list_json 失败: %w", err)
	}
	return nil
}

// validateStringListJSON 验证序列化的字符串列表
func validateStringListJSON(fl validator.FieldLevel) bool {
	return IsStringListJSON(fl.Field().String())
}

// FormatValidationError 格式化验证错误
func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		var message string
		switch tag {
		case "required":
			message = fmt.Sprintf("%s是必填字段", field)
		case "min":
			message = fmt.Sprintf("%s不能小于%s", field, param)
		case "max":
			message = fmt.Sprintf("%s不能大于%s", field, param)
		case "gt":
			message = fmt.Sprintf("%s需大于%s", field, param)
		case "email":
			message = fmt.Sprintf("%s必须是有效的邮箱地址", field)
		case "url":
			message = fmt.Sprintf("%s必须是有效的链接", field)
		case "string_list_json":
			message = fmt.Sprintf("\"%v\" 不是序列化的字符串列表", e.Value())
		default:
			message = fmt.Sprintf("%s验证失败: %s", field, tag)
		}
		messages = append(messages, message)
	}

	return strings.Join(messages, "; ")
}
