package models

import (
	"encoding/json"
)

// CartEntry 用户记录中的购物车项
type CartEntry struct {
	ProductID ProductID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// User 用户文档
// 除 id/name/cart_items/saved_products 外的字段（例如凭据）原样保留在 Extra 中，
// 整体覆盖写回时不会丢失。读到的空 name 也留在 Extra。
type User struct {
	ID            RecordID
	Name          string
	CartItems     []CartEntry
	SavedProducts []ProductID
	Extra         map[string]json.RawMessage
}

const (
	userFieldID            = "id"
	userFieldName          = "name"
	userFieldCartItems     = "cart_items"
	userFieldSavedProducts = "saved_products"
)

// UnmarshalJSON 解析用户文档并保留未知字段
func (u *User) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var decoded User
	if err := decodeUserField(raw, userFieldID, &decoded.ID); err != nil {
		return err
	}
	if err := decodeUserField(raw, userFieldName, &decoded.Name); err != nil {
		return err
	}
	if err := decodeUserField(raw, userFieldCartItems, &decoded.CartItems); err != nil {
		return err
	}
	if err := decodeUserField(raw, userFieldSavedProducts, &decoded.SavedProducts); err != nil {
		return err
	}
	for _, key := range []string{userFieldID, userFieldCartItems, userFieldSavedProducts} {
		delete(raw, key)
	}
	// 空 name（"" 或 null）原样留在 Extra，写回时保持字段存在
	if decoded.Name != "" {
		delete(raw, userFieldName)
	}
	decoded.Extra = raw
	*u = decoded
	return nil
}

// MarshalJSON 输出完整文档，购物车两个字段总是写出（空数组而非 null）
func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(u.Extra)+4)
	for key, value := range u.Extra {
		out[key] = value
	}
	if !u.ID.IsZero() {
		out[userFieldID] = u.ID
	}
	if u.Name != "" {
		out[userFieldName] = u.Name
	}
	cartItems := u.CartItems
	if cartItems == nil {
		cartItems = []CartEntry{}
	}
	savedProducts := u.SavedProducts
	if savedProducts == nil {
		savedProducts = []ProductID{}
	}
	out[userFieldCartItems] = cartItems
	out[userFieldSavedProducts] = savedProducts
	return json.Marshal(out)
}

// Clone 深拷贝，避免读-改-写过程中共享切片
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cloned := &User{ID: u.ID, Name: u.Name}
	if u.CartItems != nil {
		cloned.CartItems = append([]CartEntry(nil), u.CartItems...)
	}
	if u.SavedProducts != nil {
		cloned.SavedProducts = append([]ProductID(nil), u.SavedProducts...)
	}
	if u.Extra != nil {
		cloned.Extra = make(map[string]json.RawMessage, len(u.Extra))
		for key, value := range u.Extra {
			cloned.Extra[key] = append(json.RawMessage(nil), value...)
		}
	}
	return cloned
}

func decodeUserField(raw map[string]json.RawMessage, key string, dest interface{}) error {
	value, ok := raw[key]
	if !ok || len(value) == 0 || string(value) == "null" {
		return nil
	}
	return json.Unmarshal(value, dest)
}
