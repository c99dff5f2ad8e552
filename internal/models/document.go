package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// 模拟存储中的集合名称
const (
	CollectionUsers    = "users"
	CollectionProducts = "products"
)

// RawDocument 原始 JSON 文档，按文本存储以兼容 sqlite 与 postgres
type RawDocument json.RawMessage

// Value 实现 driver.Valuer 接口
func (d RawDocument) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "{}", nil
	}
	return string(d), nil
}

// Scan 实现 sql.Scanner 接口
func (d *RawDocument) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = RawDocument("{}")
	case []byte:
		*d = append(RawDocument(nil), v...)
	case string:
		*d = RawDocument(v)
	default:
		return fmt.Errorf("unsupported document type %T", value)
	}
	return nil
}

// MarshalJSON 原样输出
func (d RawDocument) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("{}"), nil
	}
	return d, nil
}

// StoreDocument 模拟 REST 存储的文档表（类 json-server）
type StoreDocument struct {
	ID         uint        `gorm:"primarykey" json:"-"`                                                   // 主键（插入顺序）
	Collection string      `gorm:"type:varchar(40);not null;uniqueIndex:idx_store_doc" json:"collection"` // 集合名
	DocID      string      `gorm:"type:varchar(64);not null;uniqueIndex:idx_store_doc" json:"doc_id"`     // 文档ID
	Body       RawDocument `gorm:"type:text;not null" json:"body"`                                        // 文档内容
	CreatedAt  time.Time   `gorm:"index" json:"created_at"`                                               // 创建时间
	UpdatedAt  time.Time   `json:"updated_at"`                                                            // 更新时间
}

// TableName 指定表名
func (StoreDocument) TableName() string {
	return "store_documents"
}
