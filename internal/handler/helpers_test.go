package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/view"
	"gorm.io/gorm"
)

type fakeAuthorRepo struct {
	ListFn     func(ctx context.Context) ([]model.Author, error)
	FindByIDFn func(ctx context.Context, id uuid.UUID) (*model.Author, error)
	CreateFn   func(ctx context.Context, a *model.Author) error
	UpdateFn   func(ctx context.Context, a *model.Author) error
	DeleteFn   func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeAuthorRepo) List(ctx context.Context) ([]model.Author, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return nil, nil
}

func (f *fakeAuthorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthorRepo) Create(ctx context.Context, a *model.Author) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, a)
	}
	return nil
}

func (f *fakeAuthorRepo) Update(ctx context.Context, a *model.Author) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, a)
	}
	return nil
}

func (f *fakeAuthorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

type fakeBookRepo struct {
	ListByAuthorFn func(ctx context.Context, authorID uuid.UUID) ([]model.Book, error)
}

func (f *fakeBookRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Book, error) {
	if f.ListByAuthorFn != nil {
		return f.ListByAuthorFn(ctx, authorID)
	}
	return nil, nil
}

func setupRouterWithRepos(authors repository.AuthorRepository, books repository.BookRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.HTMLRender = view.MustNew()

	site := r.Group("", ErrorHandler(zerolog.Nop(), true))
	NewAuthorHandler(authors, books).RegisterRoutes(site)

	NewAuthorAPIHandler(authors, books).RegisterRoutes(r.Group("/api"))

	return r
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	return setupRouterWithRepos(
		repository.NewAuthorRepository(db),
		repository.NewGormBookRepository(db),
	)
}

func doGet(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doPostForm(t *testing.T, r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func countAuthors(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	if err := db.Model(&model.Author{}).Count(&n).Error; err != nil {
		t.Fatalf("failed to count authors: %v", err)
	}
	return n
}

func setupQuietRouter(authors repository.AuthorRepository, books repository.BookRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.HTMLRender = view.MustNew()

	NewAuthorHandler(authors, books).RegisterRoutes(r.Group("", ErrorHandler(zerolog.Nop(), false)))

	return r
}
