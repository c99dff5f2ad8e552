package repository

import (
	"fmt"
	"testing"

	"github.com/shoplite/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDocumentRepositoryTest(t *testing.T) *GormDocumentRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate store documents failed: %v", err)
	}
	return NewDocumentRepository(db)
}

func createDocument(t *testing.T, repo *GormDocumentRepository, collection, docID, body string) {
	t.Helper()
	if err := repo.Create(&models.StoreDocument{
		Collection: collection,
		DocID:      docID,
		Body:       models.RawDocument(body),
	}); err != nil {
		t.Fatalf("create document failed: %v", err)
	}
}

func TestDocumentListFiltersByField(t *testing.T) {
	repo := setupDocumentRepositoryTest(t)
	createDocument(t, repo, models.CollectionUsers, "1", `{"id":1,"name":"alice","password":"pw"}`)
	createDocument(t, repo, models.CollectionUsers, "2", `{"id":2,"name":"bob","password":"pw"}`)
	createDocument(t, repo, models.CollectionProducts, "1", `{"id":1,"name":"alice"}`)

	docs, err := repo.List(models.CollectionUsers, DocumentListFilter{
		Matches: []FieldMatch{{Field: "name", Value: "alice"}, {Field: "password", Value: "pw"}},
	})
	if err != nil {
		t.Fatalf("list documents failed: %v", err)
	}
	if len(docs) != 1 || docs[0].DocID != "1" {
		t.Fatalf("unexpected documents %+v", docs)
	}

	byNumber, err := repo.List(models.CollectionUsers, DocumentListFilter{
		Matches: []FieldMatch{{Field: "id", Value: "2"}},
	})
	if err != nil {
		t.Fatalf("list by numeric field failed: %v", err)
	}
	if len(byNumber) != 1 || byNumber[0].DocID != "2" {
		t.Fatalf("numeric field should match its text form, got %+v", byNumber)
	}

	all, err := repo.List(models.CollectionUsers, DocumentListFilter{})
	if err != nil || len(all) != 2 || all[0].DocID != "1" {
		t.Fatalf("unexpected full listing %+v err=%v", all, err)
	}

	page, err := repo.List(models.CollectionUsers, DocumentListFilter{Page: 2, PageSize: 1})
	if err != nil || len(page) != 1 || page[0].DocID != "2" {
		t.Fatalf("unexpected page %+v err=%v", page, err)
	}
}

func TestDocumentReplaceAndGet(t *testing.T) {
	repo := setupDocumentRepositoryTest(t)
	createDocument(t, repo, models.CollectionUsers, "7", `{"id":7,"cart_items":[]}`)

	updated, err := repo.Replace(models.CollectionUsers, "7", models.RawDocument(`{"id":7,"cart_items":[{"productId":1,"quantity":2}]}`))
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if updated == nil || string(updated.Body) != `{"id":7,"cart_items":[{"productId":1,"quantity":2}]}` {
		t.Fatalf("unexpected replaced document %+v", updated)
	}

	missing, err := repo.Replace(models.CollectionUsers, "8", models.RawDocument(`{}`))
	if err != nil || missing != nil {
		t.Fatalf("replace of missing document should return nil, got %+v err=%v", missing, err)
	}
	doc, err := repo.Get(models.CollectionUsers, "8")
	if err != nil || doc != nil {
		t.Fatalf("missing document should be nil, got %+v err=%v", doc, err)
	}
}

func TestDocumentNextNumericIDAndCount(t *testing.T) {
	repo := setupDocumentRepositoryTest(t)
	next, err := repo.NextNumericID(models.CollectionProducts)
	if err != nil || next != 1 {
		t.Fatalf("empty collection should start at 1, got %d err=%v", next, err)
	}
	createDocument(t, repo, models.CollectionProducts, "3", `{"id":3}`)
	createDocument(t, repo, models.CollectionProducts, "abc", `{"id":"abc"}`)
	next, err = repo.NextNumericID(models.CollectionProducts)
	if err != nil || next != 4 {
		t.Fatalf("expected next id 4, got %d err=%v", next, err)
	}
	total, err := repo.Count(models.CollectionProducts)
	if err != nil || total != 2 {
		t.Fatalf("expected 2 documents, got %d err=%v", total, err)
	}
	if err := repo.DeleteCollection(models.CollectionProducts); err != nil {
		t.Fatalf("delete collection failed: %v", err)
	}
	if total, _ := repo.Count(models.CollectionProducts); total != 0 {
		t.Fatalf("collection should be empty, got %d", total)
	}
}
