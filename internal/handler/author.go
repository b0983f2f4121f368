package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
	"gorm.io/gorm"
)

const authorListPath = "/catalog/authors"

// AuthorHandler serves the server-rendered author pages.
type AuthorHandler struct {
	authors repository.AuthorRepository
	books   repository.BookRepository
}

func NewAuthorHandler(authors repository.AuthorRepository, books repository.BookRepository) *AuthorHandler {
	return &AuthorHandler{authors: authors, books: books}
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.RedirectToList)

	catalog := r.Group("/catalog")
	{
		catalog.GET("", h.RedirectToList)
		catalog.GET("/authors", h.ListAuthors)
		catalog.GET("/author/create", h.CreateAuthorForm)
		catalog.POST("/author/create", h.CreateAuthor)
		catalog.GET("/author/:id", h.AuthorDetail)
		catalog.GET("/author/:id/delete", h.DeleteAuthorForm)
		catalog.POST("/author/:id/delete", h.DeleteAuthor)
		catalog.GET("/author/:id/update", h.UpdateAuthorForm)
		catalog.POST("/author/:id/update", h.UpdateAuthor)
	}
}

func (h *AuthorHandler) RedirectToList(c *gin.Context) {
	c.Redirect(http.StatusFound, authorListPath)
}

func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	authors, err := h.authors.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "author_list", gin.H{
		"title":   "Author List",
		"authors": authors,
	})
}

func (h *AuthorHandler) AuthorDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, errAuthorNotFound(err))
		return
	}

	author, books, err := loadAuthorWithBooks(c.Request.Context(), h.authors, h.books, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, errAuthorNotFound(err))
			return
		}
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "author_detail", gin.H{
		"title":  "Author Detail",
		"author": author,
		"books":  books,
	})
}

func (h *AuthorHandler) CreateAuthorForm(c *gin.Context) {
	renderAuthorForm(c, "Create Author", validation.AuthorForm{}, nil)
}

func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var form validation.AuthorForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		fail(c, &HTTPError{Status: http.StatusBadRequest, Message: "Malformed form", Err: err})
		return
	}

	fields, err := validation.ValidateAuthor(form)
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		renderAuthorForm(c, "Create Author", validation.SanitizeAuthor(form), verrs)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	author := authorFromFields(uuid.Nil, fields)
	if err := h.authors.Create(c.Request.Context(), &author); err != nil {
		fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, author.URL())
}

func (h *AuthorHandler) DeleteAuthorForm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.RedirectToList(c)
		return
	}

	author, books, err := loadAuthorWithBooks(c.Request.Context(), h.authors, h.books, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.RedirectToList(c)
			return
		}
		fail(c, err)
		return
	}

	renderAuthorDelete(c, author, books)
}

// DeleteAuthor removes the author named by the authorid form field (or the
// path id) only when no book references it; otherwise the confirmation page
// is shown again with the blocking books.
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	raw := c.PostForm("authorid")
	if raw == "" {
		raw = c.Param("id")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		h.RedirectToList(c)
		return
	}

	ctx := c.Request.Context()

	author, books, err := loadAuthorWithBooks(ctx, h.authors, h.books, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.RedirectToList(c)
			return
		}
		fail(c, err)
		return
	}

	if len(books) > 0 {
		renderAuthorDelete(c, author, books)
		return
	}

	err = h.authors.Delete(ctx, id)
	switch {
	case err == nil, errors.Is(err, gorm.ErrRecordNotFound):
		h.RedirectToList(c)
	case errors.Is(err, repository.ErrAuthorHasBooks):
		// a book was added after the check above
		books, err = h.books.ListByAuthor(ctx, id)
		if err != nil {
			fail(c, err)
			return
		}
		renderAuthorDelete(c, author, books)
	default:
		fail(c, err)
	}
}

func (h *AuthorHandler) UpdateAuthorForm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, errAuthorNotFound(err))
		return
	}

	author, err := h.authors.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, errAuthorNotFound(err))
			return
		}
		fail(c, err)
		return
	}

	renderAuthorForm(c, "Update Author", formFromAuthor(*author), nil)
}

func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, errAuthorNotFound(err))
		return
	}

	var form validation.AuthorForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		fail(c, &HTTPError{Status: http.StatusBadRequest, Message: "Malformed form", Err: err})
		return
	}

	fields, err := validation.ValidateAuthor(form)
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		renderAuthorForm(c, "Update Author", validation.SanitizeAuthor(form), verrs)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	author := authorFromFields(id, fields)
	if err := h.authors.Update(c.Request.Context(), &author); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, errAuthorNotFound(err))
			return
		}
		fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, author.URL())
}

func renderAuthorForm(c *gin.Context, title string, form validation.AuthorForm, errs validation.Errors) {
	c.HTML(http.StatusOK, "author_form", gin.H{
		"title":  title,
		"form":   form,
		"errors": errs,
	})
}

func renderAuthorDelete(c *gin.Context, author *model.Author, books []model.Book) {
	c.HTML(http.StatusOK, "author_delete", gin.H{
		"title":  "Delete Author",
		"author": author,
		"books":  books,
	})
}

func authorFromFields(id uuid.UUID, fields validation.AuthorFields) model.Author {
	return model.Author{
		ID:          id,
		FirstName:   fields.FirstName(),
		FamilyName:  fields.FamilyName(),
		DateOfBirth: fields.DateOfBirth(),
		DateOfDeath: fields.DateOfDeath(),
	}
}

func formFromAuthor(a model.Author) validation.AuthorForm {
	form := validation.AuthorForm{
		FirstName:  a.FirstName,
		FamilyName: a.FamilyName,
	}
	if a.DateOfBirth != nil {
		form.DateOfBirth = a.DateOfBirth.Format(model.DateLayout)
	}
	if a.DateOfDeath != nil {
		form.DateOfDeath = a.DateOfDeath.Format(model.DateLayout)
	}
	return form
}
