package common

// StatusCode 业务状态码
type StatusCode struct {
	Code        int
	Message     string
	Description string
}

var (
	// Success 成功
	Success = StatusCode{Code: 0, Message: "ok"}
	// ParamsError 请求参数错误
	ParamsError = StatusCode{Code: 40000, Message: "请求参数错误"}
	// NullError 请求数据为空
	NullError = StatusCode{Code: 40001, Message: "请求数据为空"}
	// NotLogin 未登录
	NotLogin = StatusCode{Code: 40100, Message: "未登录"}
	// NoAuth 无权限
	NoAuth = StatusCode{Code: 40101, Message: "无权限"}
	// SystemError 系统内部异常
	SystemError = StatusCode{Code: 50000, Message: "系统内部异常"}
)
