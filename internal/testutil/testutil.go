package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory sqlite database with the catalog schema.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := open(t, "testdb_")

	if err := db.AutoMigrate(&model.Author{}, &model.Book{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// NewErrorDB opens an in-memory database without any tables, so every query fails.
func NewErrorDB(t *testing.T) *gorm.DB {
	t.Helper()

	return open(t, "errdb_")
}

func open(t *testing.T, prefix string) *gorm.DB {
	t.Helper()

	dsn := "file:" + prefix + uuid.New().String() + "?mode=memory&cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func SeedAuthor(t *testing.T, db *gorm.DB, first, family string) model.Author {
	t.Helper()

	author := model.Author{
		FirstName:  first,
		FamilyName: family,
	}

	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author %q: %v", family, err)
	}

	return author
}

func SeedBook(t *testing.T, db *gorm.DB, author model.Author, title, summary string) model.Book {
	t.Helper()

	now := time.Now()

	book := model.Book{
		ID:        uuid.New(),
		Title:     title,
		AuthorID:  author.ID,
		Summary:   summary,
		ISBN:      "978" + uuid.New().String()[:10],
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book %q: %v", title, err)
	}

	return book
}
