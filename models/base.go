package models

// PaginationQuery 列表接口通用的分页参数
type PaginationQuery struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"pageSize" json:"pageSize"`
}

// Normalize 填充分页默认值并约束每页数量上限
func (q *PaginationQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 10
	}
}

// Offset 计算当前页的偏移量
func (q PaginationQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// PaginationResult 列表接口统一返回的分页信息
type PaginationResult struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// NewPaginationResult 创建一个新的分页结果对象
func NewPaginationResult(total int64, page, pageSize int) PaginationResult {
	return PaginationResult{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
