package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shoplite/internal/logger"
	"github.com/shoplite/internal/models"
	"github.com/shoplite/internal/repository"
)

const (
	storeQueryPage  = "_page"
	storeQueryLimit = "_limit"
	storeMaxLimit   = 500
)

// StoreService 模拟 REST 存储服务（json-server 语义）
type StoreService struct {
	docs     repository.DocumentRepository
	writable map[string]bool
}

// NewStoreService 创建模拟存储服务；users 可写，products 只读
func NewStoreService(docs repository.DocumentRepository) *StoreService {
	return &StoreService{
		docs: docs,
		writable: map[string]bool{
			models.CollectionUsers:    true,
			models.CollectionProducts: false,
		},
	}
}

// Collections 返回支持的集合
func (s *StoreService) Collections() []string {
	return []string{models.CollectionUsers, models.CollectionProducts}
}

func (s *StoreService) checkCollection(collection string) error {
	if _, ok := s.writable[collection]; !ok {
		return ErrUnknownCollection
	}
	return nil
}

// List 按查询参数列出文档；_page/_limit 控制分页，其余参数为字段等值匹配
func (s *StoreService) List(collection string, query url.Values) ([]json.RawMessage, error) {
	if err := s.checkCollection(collection); err != nil {
		return nil, err
	}
	filter, err := parseStoreQuery(query)
	if err != nil {
		return nil, err
	}
	docs, err := s.docs.List(collection, filter)
	if err != nil {
		return nil, err
	}
	result := make([]json.RawMessage, 0, len(docs))
	for _, doc := range docs {
		result = append(result, json.RawMessage(doc.Body))
	}
	return result, nil
}

// Get 获取单个文档
func (s *StoreService) Get(collection, id string) (json.RawMessage, error) {
	if err := s.checkCollection(collection); err != nil {
		return nil, err
	}
	doc, err := s.docs.Get(collection, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return json.RawMessage(doc.Body), nil
}

// Replace 整体覆盖文档，文档 id 以路径为准
func (s *StoreService) Replace(collection, id string, body []byte) (json.RawMessage, error) {
	if err := s.checkCollection(collection); err != nil {
		return nil, err
	}
	if !s.writable[collection] {
		return nil, ErrCollectionReadOnly
	}
	id = strings.TrimSpace(id)
	existing, err := s.docs.Get(collection, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrDocumentNotFound
	}
	fields, err := decodeDocumentObject(body)
	if err != nil {
		return nil, err
	}
	fields["id"] = storedDocumentID(existing, id)
	encoded, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	updated, err := s.docs.Replace(collection, id, models.RawDocument(encoded))
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrDocumentNotFound
	}
	logger.Debugw("store_document_replaced", "collection", collection, "id", id)
	return json.RawMessage(updated.Body), nil
}

// Create 新增文档；未给出 id 时分配下一个数字 id
func (s *StoreService) Create(collection string, body []byte) (json.RawMessage, error) {
	if err := s.checkCollection(collection); err != nil {
		return nil, err
	}
	if !s.writable[collection] {
		return nil, ErrCollectionReadOnly
	}
	fields, err := decodeDocumentObject(body)
	if err != nil {
		return nil, err
	}
	var created *models.StoreDocument
	err = s.docs.Transaction(func(repo repository.DocumentRepository) error {
		doc, err := buildStoreDocument(repo, collection, fields)
		if err != nil {
			return err
		}
		existing, err := repo.Get(collection, doc.DocID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDocumentConflict
		}
		if err := repo.Create(doc); err != nil {
			return err
		}
		created = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(created.Body), nil
}

// Seed 用给定文档重建集合，返回写入数量
func (s *StoreService) Seed(collection string, documents []map[string]interface{}) (int, error) {
	if err := s.checkCollection(collection); err != nil {
		return 0, err
	}
	count := 0
	err := s.docs.Transaction(func(repo repository.DocumentRepository) error {
		if err := repo.DeleteCollection(collection); err != nil {
			return err
		}
		for _, item := range documents {
			encoded, err := json.Marshal(item)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
			}
			fields, err := decodeDocumentObject(encoded)
			if err != nil {
				return err
			}
			doc, err := buildStoreDocument(repo, collection, fields)
			if err != nil {
				return err
			}
			if err := repo.Create(doc); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	logger.Infow("store_collection_seeded", "collection", collection, "count", count)
	return count, nil
}

func buildStoreDocument(repo repository.DocumentRepository, collection string, fields map[string]json.RawMessage) (*models.StoreDocument, error) {
	docID := documentIDFromRaw(fields["id"])
	if docID == "" {
		next, err := repo.NextNumericID(collection)
		if err != nil {
			return nil, err
		}
		docID = strconv.FormatInt(next, 10)
		fields["id"] = json.RawMessage(docID)
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &models.StoreDocument{
		Collection: collection,
		DocID:      docID,
		Body:       models.RawDocument(encoded),
	}, nil
}

func decodeDocumentObject(body []byte) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrInvalidDocument
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	return fields, nil
}

// documentIDFromRaw 将 JSON 中的 id（数字或字符串）转为文档键
func documentIDFromRaw(raw json.RawMessage) string {
	var id models.RecordID
	if len(raw) == 0 {
		return ""
	}
	if err := json.Unmarshal(raw, &id); err != nil {
		return ""
	}
	return strings.TrimSpace(id.String())
}

// storedDocumentID 沿用已存文档中 id 的原始形态
func storedDocumentID(doc *models.StoreDocument, fallback string) json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc.Body, &fields); err == nil {
		if raw, ok := fields["id"]; ok && len(raw) > 0 {
			return raw
		}
	}
	encoded, _ := json.Marshal(models.RecordID(fallback))
	return encoded
}

func parseStoreQuery(query url.Values) (repository.DocumentListFilter, error) {
	filter := repository.DocumentListFilter{}
	for key, values := range query {
		if len(values) == 0 {
			continue
		}
		value := strings.TrimSpace(values[0])
		switch key {
		case storeQueryPage:
			page, err := strconv.Atoi(value)
			if err != nil || page < 1 {
				return filter, fmt.Errorf("%w: %s", ErrInvalidStoreQuery, key)
			}
			filter.Page = page
		case storeQueryLimit:
			limit, err := strconv.Atoi(value)
			if err != nil || limit < 1 {
				return filter, fmt.Errorf("%w: %s", ErrInvalidStoreQuery, key)
			}
			if limit > storeMaxLimit {
				limit = storeMaxLimit
			}
			filter.PageSize = limit
		default:
			if !repository.ValidDocumentField(key) {
				return filter, fmt.Errorf("%w: %s", ErrInvalidStoreQuery, key)
			}
			filter.Matches = append(filter.Matches, repository.FieldMatch{Field: key, Value: value})
		}
	}
	if filter.Page > 0 && filter.PageSize == 0 {
		filter.PageSize = 10
	}
	return filter, nil
}

// IsStoreClientError 判断是否为调用方错误
func IsStoreClientError(err error) bool {
	return errors.Is(err, ErrInvalidDocument) || errors.Is(err, ErrInvalidStoreQuery)
}
