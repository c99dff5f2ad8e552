package queue

import (
	"encoding/json"

	"github.com/shoplite/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCartRemoteClear 结算后清空远端购物车任务
	TaskCartRemoteClear = constants.TaskCartRemoteClear
)

// CartRemoteClearPayload 清空远端购物车任务载荷
type CartRemoteClearPayload struct {
	UserID    string `json:"user_id"`
	ReceiptNo string `json:"receipt_no,omitempty"`
}

// NewCartRemoteClearTask 创建清空远端购物车任务
func NewCartRemoteClearTask(payload CartRemoteClearPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCartRemoteClear, body), nil
}

// ParseCartRemoteClearPayload 解析任务载荷
func ParseCartRemoteClearPayload(body []byte) (CartRemoteClearPayload, error) {
	var payload CartRemoteClearPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, err
	}
	return payload, nil
}
