package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
	"gorm.io/gorm"
)

// AuthorAPIHandler exposes the catalog's authors as read-only JSON.
type AuthorAPIHandler struct {
	authors repository.AuthorRepository
	books   repository.BookRepository
}

func NewAuthorAPIHandler(authors repository.AuthorRepository, books repository.BookRepository) *AuthorAPIHandler {
	return &AuthorAPIHandler{authors: authors, books: books}
}

func (h *AuthorAPIHandler) RegisterRoutes(r *gin.RouterGroup) {
	authors := r.Group("/authors")
	{
		authors.GET("", h.ListAuthors)
		authors.GET("/:id", h.GetAuthorByID)
	}
}

// ListAuthors godoc
// @Summary      List authors
// @Description  Get all authors ordered by family name
// @Tags         authors
// @Produce      json
// @Success      200  {object}  ListAuthorsResponse
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors [get]
func (h *AuthorAPIHandler) ListAuthors(c *gin.Context) {
	authors, err := h.authors.List(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError,
			"AUTHOR_LIST_FAILED",
			"failed to list authors",
		)
		return
	}

	res := ListAuthorsResponse{Data: make([]Author, 0, len(authors))}
	for _, a := range authors {
		res.Data = append(res.Data, toAuthor(a, nil))
	}

	c.JSON(http.StatusOK, res)
}

// GetAuthorByID godoc
// @Summary      Get author by ID
// @Description  Get a single author with the titles and summaries of their books
// @Tags         authors
// @Produce      json
// @Param        id   path      string                    true  "Author ID (UUID)"
// @Success      200  {object}  AuthorResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id} [get]
func (h *AuthorAPIHandler) GetAuthorByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"AUTHOR_INVALID_ID",
			"invalid author id",
		)
		return
	}

	author, books, err := loadAuthorWithBooks(c.Request.Context(), h.authors, h.books, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"AUTHOR_NOT_FOUND",
				"author not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"AUTHOR_FETCH_FAILED",
			"failed to fetch author",
		)
		return
	}

	c.JSON(http.StatusOK, AuthorResponse{Data: toAuthor(*author, books)})
}
