package usecases

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/matthiasBT/library/internal/infra/logging"
	"github.com/matthiasBT/library/internal/server/entities"
)

type BaseController struct {
	logger logging.ILogger
	books  entities.BookRepo
	users  entities.UserRepo
}

func NewBaseController(logger logging.ILogger, books entities.BookRepo, users entities.UserRepo) *BaseController {
	return &BaseController{
		logger: logger,
		books:  books,
		users:  users,
	}
}

func (c *BaseController) Route() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/books", c.getBooks)
	r.Get("/books/isbn/{isbn}", c.getBookByISBN)
	r.Get("/books/author/{author}", c.getBooksByAuthor)
	r.Get("/books/title/{title}", c.getBooksByTitle)
	r.Get("/books/review/{isbn}", c.getReview)
	r.Post("/users/register", c.register)
	r.Post("/users/login", c.login)
	return r
}
