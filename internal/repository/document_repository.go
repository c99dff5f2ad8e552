package repository

import (
	"errors"
	"strconv"
	"time"

	"github.com/shoplite/internal/models"

	"gorm.io/gorm"
)

// DocumentRepository 模拟存储文档数据访问接口
type DocumentRepository interface {
	List(collection string, filter DocumentListFilter) ([]models.StoreDocument, error)
	Get(collection, docID string) (*models.StoreDocument, error)
	Create(doc *models.StoreDocument) error
	Replace(collection, docID string, body models.RawDocument) (*models.StoreDocument, error)
	NextNumericID(collection string) (int64, error)
	Count(collection string) (int64, error)
	DeleteCollection(collection string) error
	Transaction(fn func(repo DocumentRepository) error) error
}

var _ DocumentRepository = (*GormDocumentRepository)(nil)

// GormDocumentRepository GORM 实现
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository 创建文档仓库
func NewDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDocumentRepository) WithTx(tx *gorm.DB) *GormDocumentRepository {
	if tx == nil {
		return r
	}
	return &GormDocumentRepository{db: tx}
}

// Transaction 在事务内执行
func (r *GormDocumentRepository) Transaction(fn func(repo DocumentRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// List 按插入顺序列出集合文档，可按字段等值过滤与分页
func (r *GormDocumentRepository) List(collection string, filter DocumentListFilter) ([]models.StoreDocument, error) {
	query := r.db.Model(&models.StoreDocument{}).Where("collection = ?", collection)
	if len(filter.Matches) > 0 {
		condition, args, err := buildFieldEqualsCondition(r.db, "body", filter.Matches)
		if err != nil {
			return nil, err
		}
		query = query.Where(condition, args...)
	}
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}
	var docs []models.StoreDocument
	if err := query.Order("id asc").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Get 获取单个文档，不存在返回 nil
func (r *GormDocumentRepository) Get(collection, docID string) (*models.StoreDocument, error) {
	var doc models.StoreDocument
	err := r.db.Where("collection = ? AND doc_id = ?", collection, docID).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create 新增文档
func (r *GormDocumentRepository) Create(doc *models.StoreDocument) error {
	if doc == nil {
		return errors.New("document is nil")
	}
	return r.db.Create(doc).Error
}

// Replace 整体覆盖文档内容，不存在返回 nil
func (r *GormDocumentRepository) Replace(collection, docID string, body models.RawDocument) (*models.StoreDocument, error) {
	result := r.db.Model(&models.StoreDocument{}).
		Where("collection = ? AND doc_id = ?", collection, docID).
		Updates(map[string]interface{}{
			"body":       body,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.Get(collection, docID)
}

// NextNumericID 计算集合中下一个数字ID
func (r *GormDocumentRepository) NextNumericID(collection string) (int64, error) {
	var ids []string
	if err := r.db.Model(&models.StoreDocument{}).Where("collection = ?", collection).Pluck("doc_id", &ids).Error; err != nil {
		return 0, err
	}
	var maxID int64
	for _, raw := range ids {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		if value > maxID {
			maxID = value
		}
	}
	return maxID + 1, nil
}

// Count 统计集合文档数量
func (r *GormDocumentRepository) Count(collection string) (int64, error) {
	var total int64
	if err := r.db.Model(&models.StoreDocument{}).Where("collection = ?", collection).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// DeleteCollection 删除集合全部文档
func (r *GormDocumentRepository) DeleteCollection(collection string) error {
	return r.db.Where("collection = ?", collection).Delete(&models.StoreDocument{}).Error
}
