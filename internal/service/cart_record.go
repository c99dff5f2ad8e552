package service

import (
	"github.com/shoplite/internal/models"
)

// cartRecord 购物车规范模型：唯一的带数量列表
// saved_products 只在写回远端时由该列表投影生成
type cartRecord struct {
	entries []models.CartEntry
}

// cartRecordFromUser 从用户文档构建规范模型
// 第二个返回值表示文档仍是旧格式（仅有 saved_products），需要补写 cart_items
func cartRecordFromUser(user *models.User) (cartRecord, bool) {
	if user == nil {
		return cartRecord{}, false
	}
	if len(user.CartItems) > 0 {
		entries := make([]models.CartEntry, len(user.CartItems))
		copy(entries, user.CartItems)
		return cartRecord{entries: entries}, false
	}
	if len(user.SavedProducts) == 0 {
		return cartRecord{}, false
	}
	record := cartRecord{entries: make([]models.CartEntry, 0, len(user.SavedProducts))}
	for _, id := range user.SavedProducts {
		if record.indexOf(id) >= 0 {
			continue
		}
		record.entries = append(record.entries, models.CartEntry{ProductID: id, Quantity: 1})
	}
	return record, true
}

func (r *cartRecord) indexOf(id models.ProductID) int {
	for i := range r.entries {
		if r.entries[i].ProductID == id {
			return i
		}
	}
	return -1
}

// add 已存在则数量加一，否则追加数量为 1 的条目
func (r *cartRecord) add(id models.ProductID) {
	if idx := r.indexOf(id); idx >= 0 {
		r.entries[idx].Quantity++
		return
	}
	r.entries = append(r.entries, models.CartEntry{ProductID: id, Quantity: 1})
}

// remove 移除条目
func (r *cartRecord) remove(id models.ProductID) {
	kept := r.entries[:0]
	for _, entry := range r.entries {
		if entry.ProductID != id {
			kept = append(kept, entry)
		}
	}
	r.entries = kept
}

// setQuantity 设置数量，不存在则追加；数量不做下限处理
func (r *cartRecord) setQuantity(id models.ProductID, quantity int) {
	if idx := r.indexOf(id); idx >= 0 {
		r.entries[idx].Quantity = quantity
		return
	}
	r.entries = append(r.entries, models.CartEntry{ProductID: id, Quantity: quantity})
}

// applyTo 写回边界：cart_items 取规范列表，saved_products 取其商品ID投影
func (r *cartRecord) applyTo(user *models.User) {
	user.CartItems = make([]models.CartEntry, len(r.entries))
	copy(user.CartItems, r.entries)
	user.SavedProducts = make([]models.ProductID, 0, len(r.entries))
	for _, entry := range r.entries {
		user.SavedProducts = append(user.SavedProducts, entry.ProductID)
	}
}
