package repository

// FieldMatch 文档字段等值匹配
type FieldMatch struct {
	Field string
	Value string
}

// DocumentListFilter 查询文档列表的过滤条件
type DocumentListFilter struct {
	Page     int
	PageSize int
	Matches  []FieldMatch
}
