package handler

import (
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
)

type Author struct {
	ID          uuid.UUID     `json:"id"`
	FirstName   string        `json:"first_name"`
	FamilyName  string        `json:"family_name"`
	FullName    string        `json:"full_name"`
	URL         string        `json:"url"`
	DateOfBirth *model.Date   `json:"date_of_birth,omitempty" swaggertype:"string" example:"1920-01-02"`
	DateOfDeath *model.Date   `json:"date_of_death,omitempty" swaggertype:"string" example:"1992-04-06"`
	Books       []BookSummary `json:"books,omitempty"`
}

type BookSummary struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Summary string    `json:"summary"`
	URL     string    `json:"url"`
}

type AuthorResponse struct {
	Data Author `json:"data"`
}

type ListAuthorsResponse struct {
	Data []Author `json:"data"`
}

func toAuthor(a model.Author, books []model.Book) Author {
	out := Author{
		ID:          a.ID,
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		FullName:    a.FullName(),
		URL:         a.URL(),
		DateOfBirth: model.DateOf(a.DateOfBirth),
		DateOfDeath: model.DateOf(a.DateOfDeath),
	}

	if len(books) > 0 {
		out.Books = make([]BookSummary, 0, len(books))
		for _, b := range books {
			out.Books = append(out.Books, BookSummary{
				ID:      b.ID,
				Title:   b.Title,
				Summary: b.Summary,
				URL:     b.URL(),
			})
		}
	}

	return out
}
