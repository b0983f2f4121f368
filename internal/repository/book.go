package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"gorm.io/gorm"
)

type BookRepository interface {
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Book, error)
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// ListByAuthor returns the author's books with only id, title and summary loaded.
func (r *GormBookRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).
		Select("id", "title", "summary").
		Where("author_id = ?", authorID).
		Order("title ASC").
		Find(&books).Error; err != nil {

		return nil, err
	}
	return books, nil
}
