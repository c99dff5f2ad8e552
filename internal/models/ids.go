package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ProductID 商品ID（远端存储中可能为数字或数字字符串）
type ProductID int64

// ParseProductID 解析商品ID
func ParseProductID(raw string) (ProductID, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid product id %q", raw)
	}
	return ProductID(value), nil
}

// String 返回十进制表示
func (id ProductID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// UnmarshalJSON 兼容数字与字符串两种写法
func (id *ProductID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		value, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", s)
		}
		*id = ProductID(value)
		return nil
	}
	var value int64
	if err := json.Unmarshal(b, &value); err != nil {
		return err
	}
	*id = ProductID(value)
	return nil
}

// RecordID 文档记录ID，保持远端原始的数字/字符串形态
type RecordID string

// String 返回字符串表示
func (id RecordID) String() string {
	return string(id)
}

// IsZero 是否为空
func (id RecordID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// UnmarshalJSON 接受数字或字符串
func (id *RecordID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = RecordID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = RecordID(n.String())
	return nil
}

// MarshalJSON 纯数字输出为 number，其余输出为 string
func (id RecordID) MarshalJSON() ([]byte, error) {
	s := strings.TrimSpace(string(id))
	if s == "" {
		return []byte("null"), nil
	}
	if isDigits(s) {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

func isDigits(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
