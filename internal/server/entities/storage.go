package entities

import (
	"context"
	"errors"
)

var (
	ErrUnknownDriver  = errors.New("unknown database driver")
	ErrUnknownHashing = errors.New("unknown password hashing mode")
)

// Storage is the query layer. Every call is exactly one round trip to the store.
type Storage interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	InsertContext(ctx context.Context, query string, args ...any) (int64, error)
}

type BookRepo interface {
	AllBooks(ctx context.Context) ([]Book, error)
	FindBookByISBN(ctx context.Context, isbn string) (*Book, error)
	FindBooksByAuthor(ctx context.Context, author string) ([]Book, error)
	FindBooksByTitle(ctx context.Context, title string) ([]Book, error)
	// FindReview returns nil when no book has the ISBN. A book without a review
	// yields a non-nil pointer to an empty string.
	FindReview(ctx context.Context, isbn string) (*string, error)
}

type UserRepo interface {
	CreateUser(ctx context.Context, request *UserAuthRequest) (int64, error)
	FindUser(ctx context.Context, request *UserAuthRequest) (*User, error)
}

type ICryptoProvider interface {
	HashPassword(password string) (string, error)
	CheckPassword(password string, stored string) error
	// Deterministic reports whether the stored form can be matched by equality
	// inside the query.
	Deterministic() bool
}
