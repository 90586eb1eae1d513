package usecases

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/matthiasBT/library/internal/server/entities"
)

type mockBookRepo struct {
	mock.Mock
}

func (m *mockBookRepo) AllBooks(ctx context.Context) ([]entities.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Book), args.Error(1)
}

func (m *mockBookRepo) FindBookByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Book), args.Error(1)
}

func (m *mockBookRepo) FindBooksByAuthor(ctx context.Context, author string) ([]entities.Book, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Book), args.Error(1)
}

func (m *mockBookRepo) FindBooksByTitle(ctx context.Context, title string) ([]entities.Book, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Book), args.Error(1)
}

func (m *mockBookRepo) FindReview(ctx context.Context, isbn string) (*string, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) CreateUser(ctx context.Context, request *entities.UserAuthRequest) (int64, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) FindUser(ctx context.Context, request *entities.UserAuthRequest) (*entities.User, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

var errStore = errors.New("database is locked: secret detail")

func serve(c *BaseController, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	c.Route().ServeHTTP(rec, req)
	return rec
}

func TestHandlersHideStoreErrors(t *testing.T) {
	books := new(mockBookRepo)
	users := new(mockUserRepo)
	c := NewBaseController(testLogger(), books, users)

	books.On("AllBooks", mock.Anything).Return(nil, errStore)
	books.On("FindBookByISBN", mock.Anything, "1").Return(nil, errStore)
	books.On("FindBooksByAuthor", mock.Anything, "x").Return(nil, errStore)
	books.On("FindBooksByTitle", mock.Anything, "x").Return(nil, errStore)
	books.On("FindReview", mock.Anything, "1").Return(nil, errStore)
	users.On("CreateUser", mock.Anything, mock.Anything).Return(int64(0), errStore)
	users.On("FindUser", mock.Anything, mock.Anything).Return(nil, errStore)

	for _, tt := range []struct{ method, target, body string }{
		{http.MethodGet, "/books", ""},
		{http.MethodGet, "/books/isbn/1", ""},
		{http.MethodGet, "/books/author/x", ""},
		{http.MethodGet, "/books/title/x", ""},
		{http.MethodGet, "/books/review/1", ""},
		{http.MethodPost, "/users/register", `{"username":"a","password":"b"}`},
		{http.MethodPost, "/users/login", `{"username":"a","password":"b"}`},
	} {
		rec := serve(c, tt.method, tt.target, tt.body)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, tt.target)
		assert.Equal(t, "Server error", rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "secret")
	}
	books.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestValidationSkipsStore(t *testing.T) {
	users := new(mockUserRepo)
	c := NewBaseController(testLogger(), new(mockBookRepo), users)

	rec := serve(c, http.MethodPost, "/users/register", `{"username":"a","password":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = serve(c, http.MethodPost, "/users/login", `{"username":false}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "FindUser", mock.Anything, mock.Anything)
}

func TestRegisterPassesCredentials(t *testing.T) {
	users := new(mockUserRepo)
	c := NewBaseController(testLogger(), new(mockBookRepo), users)
	want := &entities.UserAuthRequest{Username: "a", Password: "b"}
	users.On("CreateUser", mock.Anything, want).Return(int64(42), nil)

	rec := serve(c, http.MethodPost, "/users/register", `{"username":"a","password":"b"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"User registered successfully","userId":42}`, rec.Body.String())
	users.AssertExpectations(t)
}

func TestReviewEmptyIsNotFound(t *testing.T) {
	books := new(mockBookRepo)
	c := NewBaseController(testLogger(), books, new(mockUserRepo))
	empty := ""
	books.On("FindReview", mock.Anything, "1").Return(&empty, nil)

	rec := serve(c, http.MethodGet, "/books/review/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPanicBecomesServerError(t *testing.T) {
	books := new(mockBookRepo)
	c := NewBaseController(testLogger(), books, new(mockUserRepo))
	books.On("AllBooks", mock.Anything).Run(func(mock.Arguments) { panic("boom") })

	rec := serve(c, http.MethodGet, "/books", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
