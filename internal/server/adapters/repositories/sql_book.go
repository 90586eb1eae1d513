package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/matthiasBT/library/internal/infra/logging"
	"github.com/matthiasBT/library/internal/server/entities"
)

const bookColumns = "isbn, title, author, review"

type SQLBookRepo struct {
	logger  logging.ILogger
	storage entities.Storage
}

func NewSQLBookRepo(logger logging.ILogger, storage entities.Storage) *SQLBookRepo {
	return &SQLBookRepo{
		logger:  logger,
		storage: storage,
	}
}

func (b *SQLBookRepo) AllBooks(ctx context.Context) ([]entities.Book, error) {
	b.logger.Infoln("Fetching all books")
	books := []entities.Book{}
	if err := b.storage.SelectContext(ctx, &books, "select "+bookColumns+" from books"); err != nil {
		b.logger.Errorf("Failed to fetch books: %s", err.Error())
		return nil, err
	}
	b.logger.Infof("Fetched %d books", len(books))
	return books, nil
}

func (b *SQLBookRepo) FindBookByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	b.logger.Infof("Searching for a book: %s", isbn)
	var book entities.Book
	query := "select " + bookColumns + " from books where isbn = ?"
	if err := b.storage.GetContext(ctx, &book, query, isbn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			b.logger.Infoln("Book not found")
			return nil, nil
		}
		b.logger.Errorf("Failed to find the book: %s", err.Error())
		return nil, err
	}
	b.logger.Infoln("Book found")
	return &book, nil
}

func (b *SQLBookRepo) FindBooksByAuthor(ctx context.Context, author string) ([]entities.Book, error) {
	b.logger.Infof("Searching for books by author: %s", author)
	return b.findLike(ctx, "author", author)
}

func (b *SQLBookRepo) FindBooksByTitle(ctx context.Context, title string) ([]entities.Book, error) {
	b.logger.Infof("Searching for books by title: %s", title)
	return b.findLike(ctx, "title", title)
}

// findLike matches column against %term%. column is never user input.
func (b *SQLBookRepo) findLike(ctx context.Context, column string, term string) ([]entities.Book, error) {
	books := []entities.Book{}
	query := "select " + bookColumns + " from books where " + column + " like ?"
	if err := b.storage.SelectContext(ctx, &books, query, "%"+term+"%"); err != nil {
		b.logger.Errorf("Failed to search books by %s: %s", column, err.Error())
		return nil, err
	}
	b.logger.Infof("Found %d books", len(books))
	return books, nil
}

func (b *SQLBookRepo) FindReview(ctx context.Context, isbn string) (*string, error) {
	b.logger.Infof("Searching for a review: %s", isbn)
	var review sql.NullString
	if err := b.storage.GetContext(ctx, &review, "select review from books where isbn = ?", isbn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			b.logger.Infoln("Book not found")
			return nil, nil
		}
		b.logger.Errorf("Failed to find the review: %s", err.Error())
		return nil, err
	}
	return &review.String, nil
}
