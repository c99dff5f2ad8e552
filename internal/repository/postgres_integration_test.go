//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/shoplite/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}
	_ = db.Migrator().DropTable(&models.StoreDocument{})
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(&models.StoreDocument{})
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresDocumentFieldMatch(t *testing.T) {
	repo := NewDocumentRepository(setupPostgresIntegrationDB(t))
	for _, doc := range []models.StoreDocument{
		{Collection: models.CollectionUsers, DocID: "1", Body: models.RawDocument(`{"id":1,"name":"alice","password":"pw"}`)},
		{Collection: models.CollectionUsers, DocID: "2", Body: models.RawDocument(`{"id":2,"name":"bob","password":"pw"}`)},
		{Collection: models.CollectionProducts, DocID: "1", Body: models.RawDocument(`{"id":1,"category":"Audio"}`)},
	} {
		doc := doc
		if err := repo.Create(&doc); err != nil {
			t.Fatalf("create document failed: %v", err)
		}
	}

	docs, err := repo.List(models.CollectionUsers, DocumentListFilter{Matches: []FieldMatch{
		{Field: "name", Value: "bob"},
		{Field: "password", Value: "pw"},
	}})
	if err != nil {
		t.Fatalf("list documents failed: %v", err)
	}
	if len(docs) != 1 || docs[0].DocID != "2" {
		t.Fatalf("expected bob only, got %+v", docs)
	}

	docs, err = repo.List(models.CollectionUsers, DocumentListFilter{Matches: []FieldMatch{{Field: "id", Value: "1"}}})
	if err != nil || len(docs) != 1 {
		t.Fatalf("numeric field should match text value, got %d err=%v", len(docs), err)
	}

	next, err := repo.NextNumericID(models.CollectionUsers)
	if err != nil || next != 3 {
		t.Fatalf("expected next id 3, got %d err=%v", next, err)
	}
}
