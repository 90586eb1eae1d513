// Package memory keeps books and users in a go-memdb database. It implements
// the same repositories as the SQL adapters and is meant for tests and demos;
// books come from LoadBooksFile or AddBooks.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/hashicorp/go-memdb"
	"github.com/matthiasBT/library/internal/infra/logging"
	"github.com/matthiasBT/library/internal/server/entities"
)

const (
	booksTable = "books"
	usersTable = "users"
)

type Store struct {
	logger logging.ILogger
	db     *memdb.MemDB
	crypto entities.ICryptoProvider
	lastID atomic.Int64
}

func NewStore(logger logging.ILogger, crypto entities.ICryptoProvider) (*Store, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			booksTable: {
				Name: booksTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ISBN"},
					},
				},
			},
			usersTable: {
				Name: usersTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
					"username": {
						Name:    "username",
						Unique:  false,
						Indexer: &memdb.StringFieldIndex{Field: "Username"},
					},
				},
			},
		},
	}
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, err
	}
	return &Store{logger: logger, db: db, crypto: crypto}, nil
}

// AddBooks loads books; a book with an existing ISBN replaces the old one.
func (s *Store) AddBooks(books ...entities.Book) error {
	txn := s.db.Txn(true)
	defer txn.Abort()
	for i := range books {
		book := books[i]
		if err := txn.Insert(booksTable, &book); err != nil {
			return err
		}
	}
	txn.Commit()
	return nil
}

// LoadBooksFile adds the books listed in a JSON array file, in the shape the
// API returns them.
func (s *Store) LoadBooksFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var books []entities.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := s.AddBooks(books...); err != nil {
		return 0, err
	}
	s.logger.Infof("Loaded %d books from %s", len(books), path)
	return len(books), nil
}

func (s *Store) AllBooks(ctx context.Context) ([]entities.Book, error) {
	return s.filterBooks(func(*entities.Book) bool { return true })
}

func (s *Store) FindBookByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()
	raw, err := txn.First(booksTable, "id", isbn)
	if err != nil {
		s.logger.Errorf("Failed to find the book: %s", err.Error())
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	book := *raw.(*entities.Book)
	return &book, nil
}

func (s *Store) FindBooksByAuthor(ctx context.Context, author string) ([]entities.Book, error) {
	return s.filterBooks(func(b *entities.Book) bool { return contains(b.Author, author) })
}

func (s *Store) FindBooksByTitle(ctx context.Context, title string) ([]entities.Book, error) {
	return s.filterBooks(func(b *entities.Book) bool { return contains(b.Title, title) })
}

func (s *Store) FindReview(ctx context.Context, isbn string) (*string, error) {
	book, err := s.FindBookByISBN(ctx, isbn)
	if err != nil || book == nil {
		return nil, err
	}
	review := ""
	if book.Review != nil {
		review = *book.Review
	}
	return &review, nil
}

func (s *Store) CreateUser(ctx context.Context, request *entities.UserAuthRequest) (int64, error) {
	stored, err := s.crypto.HashPassword(request.Password)
	if err != nil {
		return 0, err
	}
	user := &entities.User{
		ID:       s.lastID.Add(1),
		Username: request.Username,
		Password: stored,
	}
	txn := s.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert(usersTable, user); err != nil {
		s.logger.Errorf("Failed to create a user record: %s", err.Error())
		return 0, err
	}
	txn.Commit()
	return user.ID, nil
}

func (s *Store) FindUser(ctx context.Context, request *entities.UserAuthRequest) (*entities.User, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()
	it, err := txn.Get(usersTable, "username", request.Username)
	if err != nil {
		s.logger.Errorf("Failed to find the user: %s", err.Error())
		return nil, err
	}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		user := *obj.(*entities.User)
		if s.crypto.CheckPassword(request.Password, user.Password) == nil {
			return &user, nil
		}
	}
	return nil, nil
}

func (s *Store) filterBooks(keep func(*entities.Book) bool) ([]entities.Book, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()
	it, err := txn.Get(booksTable, "id")
	if err != nil {
		s.logger.Errorf("Failed to scan books: %s", err.Error())
		return nil, err
	}
	books := []entities.Book{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		book := obj.(*entities.Book)
		if keep(book) {
			books = append(books, *book)
		}
	}
	return books, nil
}

// contains reports whether value matches the LIKE pattern %term%, the way
// SQLite evaluates it: '%' and '_' in term are wildcards and ASCII letters
// compare case-insensitively.
func contains(value string, term string) bool {
	return likeMatch([]rune(asciiLower(value)), []rune("%"+asciiLower(term)+"%"))
}

func likeMatch(value []rune, pattern []rune) bool {
	// star/mark remember the last '%' so a failed branch can retry one rune later
	vi, pi := 0, 0
	star, mark := -1, 0
	for vi < len(value) {
		switch {
		case pi < len(pattern) && pattern[pi] == '%':
			star, mark = pi, vi
			pi++
		case pi < len(pattern) && (pattern[pi] == '_' || pattern[pi] == value[vi]):
			vi++
			pi++
		case star >= 0:
			mark++
			vi, pi = mark, star+1
		default:
			return false
		}
	}
	for pi < len(pattern) && pattern[pi] == '%' {
		pi++
	}
	return pi == len(pattern)
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
