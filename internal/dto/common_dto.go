package dto

// BaseResponse 统一响应格式
type BaseResponse[T any] struct {
	Code        int    `json:"code"`
	Data        T      `json:"data"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

// Pagination 分页结果
type Pagination[T any] struct {
	Total   int64 `json:"total"`
	Pages   int64 `json:"pages"`
	Current int   `json:"current"`
	Size    int   `json:"size"`
	Records []T   `json:"records"`
}

// NewPagination 构造分页结果, 页数向上取整
func NewPagination[T any](records []T, total int64, current, size int) *Pagination[T] {
	var pages int64
	if size > 0 {
		pages = (total + int64(size) - 1) / int64(size)
	}
	if records == nil {
		records = []T{}
	}
	return &Pagination[T]{
		Total:   total,
		Pages:   pages,
		Current: current,
		Size:    size,
		Records: records,
	}
}
