package service

import (
	"context"
	"fmt"

	"github.com/shoplite/internal/session"
)

// Selection 读取会话中的筛选条件，不存在返回空条件
func (s *ProductService) Selection(ctx context.Context, sess *session.Session) (FilterSelection, error) {
	var selection FilterSelection
	ok, err := sess.LoadJSON(ctx, session.NamespaceFilters, &selection)
	if err != nil {
		return FilterSelection{}, fmt.Errorf("%w: %v", ErrSessionStateFailure, err)
	}
	if !ok || selection.Categories == nil {
		selection.Categories = []string{}
	}
	return selection, nil
}

// SaveSelection 保存筛选条件（只存于会话，不写远端）
func (s *ProductService) SaveSelection(ctx context.Context, sess *session.Session, selection FilterSelection) error {
	if selection.Categories == nil {
		selection.Categories = []string{}
	}
	if err := sess.SaveJSON(ctx, session.NamespaceFilters, selection); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionStateFailure, err)
	}
	return nil
}

// ResetSelection 清除筛选条件
func (s *ProductService) ResetSelection(ctx context.Context, sess *session.Session) error {
	if err := sess.DeleteJSON(ctx, session.NamespaceFilters); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionStateFailure, err)
	}
	return nil
}
