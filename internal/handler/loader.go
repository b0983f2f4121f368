package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
	"golang.org/x/sync/errgroup"
)

// loadAuthorWithBooks fetches the author and the author's books concurrently.
// Both must succeed; the first failure cancels the other query and is returned.
func loadAuthorWithBooks(
	ctx context.Context,
	authors repository.AuthorRepository,
	books repository.BookRepository,
	id uuid.UUID,
) (*model.Author, []model.Book, error) {
	var (
		author *model.Author
		list   []model.Book
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a, err := authors.FindByID(gctx, id)
		if err != nil {
			return err
		}
		author = a
		return nil
	})

	g.Go(func() error {
		b, err := books.ListByAuthor(gctx, id)
		if err != nil {
			return err
		}
		list = b
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return author, list, nil
}
