package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"gorm.io/gorm"
)

// ErrAuthorHasBooks is returned when deleting an author that books still reference.
var ErrAuthorHasBooks = errors.New("author has books")

const pgForeignKeyViolation = "23503"

type AuthorRepository interface {
	List(ctx context.Context) ([]model.Author, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	Create(ctx context.Context, author *model.Author) error
	Update(ctx context.Context, author *model.Author) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormAuthorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{db: db}
}

func (r *GormAuthorRepository) List(ctx context.Context) ([]model.Author, error) {
	var authors []model.Author
	if err := r.db.WithContext(ctx).
		Order("family_name ASC").
		Order("first_name ASC").
		Find(&authors).Error; err != nil {

		return nil, err
	}
	return authors, nil
}

func (r *GormAuthorRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	var author model.Author
	if err := r.db.WithContext(ctx).First(&author, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *GormAuthorRepository) Create(ctx context.Context, author *model.Author) error {
	return r.db.WithContext(ctx).Create(author).Error
}

// Update overwrites the editable fields of the author with author.ID.
// Nil dates clear the stored value.
func (r *GormAuthorRepository) Update(ctx context.Context, author *model.Author) error {
	result := r.db.WithContext(ctx).
		Model(&model.Author{}).
		Where("id = ?", author.ID).
		Updates(map[string]any{
			"first_name":    author.FirstName,
			"family_name":   author.FamilyName,
			"date_of_birth": author.DateOfBirth,
			"date_of_death": author.DateOfDeath,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the author unless a book still references it, in which
// case ErrAuthorHasBooks is returned and nothing is removed.
func (r *GormAuthorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var books int64
		if err := tx.Model(&model.Book{}).Where("author_id = ?", id).Count(&books).Error; err != nil {
			return err
		}
		if books > 0 {
			return ErrAuthorHasBooks
		}

		result := tx.Delete(&model.Author{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if isForeignKeyViolation(err) {
		return ErrAuthorHasBooks
	}
	return err
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
