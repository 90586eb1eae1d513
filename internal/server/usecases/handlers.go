package usecases

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/matthiasBT/library/internal/server/entities"
)

func (c *BaseController) getBooks(w http.ResponseWriter, r *http.Request) {
	books, err := c.books.AllBooks(r.Context())
	if err != nil {
		c.serverError(w, "Error retrieving books", err)
		return
	}
	c.writeJSON(w, http.StatusOK, books)
}

func (c *BaseController) getBookByISBN(w http.ResponseWriter, r *http.Request) {
	book, err := c.books.FindBookByISBN(r.Context(), urlParam(r, "isbn"))
	if err != nil {
		c.serverError(w, "Error finding book by ISBN", err)
		return
	}
	if book == nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Book with the specified ISBN not found"))
		return
	}
	c.writeJSON(w, http.StatusOK, book)
}

func (c *BaseController) getBooksByAuthor(w http.ResponseWriter, r *http.Request) {
	books, err := c.books.FindBooksByAuthor(r.Context(), urlParam(r, "author"))
	if err != nil {
		c.serverError(w, "Error finding books by author", err)
		return
	}
	if len(books) == 0 {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("No books found for the specified author"))
		return
	}
	c.writeJSON(w, http.StatusOK, books)
}

func (c *BaseController) getBooksByTitle(w http.ResponseWriter, r *http.Request) {
	books, err := c.books.FindBooksByTitle(r.Context(), urlParam(r, "title"))
	if err != nil {
		c.serverError(w, "Error finding books by title", err)
		return
	}
	if len(books) == 0 {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("No books found with the specified title"))
		return
	}
	c.writeJSON(w, http.StatusOK, books)
}

func (c *BaseController) getReview(w http.ResponseWriter, r *http.Request) {
	isbn := urlParam(r, "isbn")
	review, err := c.books.FindReview(r.Context(), isbn)
	if err != nil {
		c.serverError(w, "Error retrieving book review", err)
		return
	}
	if review == nil || *review == "" {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Review for the specified ISBN not found"))
		return
	}
	c.writeJSON(w, http.StatusOK, entities.Review{ISBN: isbn, Review: *review})
}

func (c *BaseController) register(w http.ResponseWriter, r *http.Request) {
	userReq := validateUserAuthReq(w, r)
	if userReq == nil {
		return
	}
	userID, err := c.users.CreateUser(r.Context(), userReq)
	if err != nil {
		c.serverError(w, "Error registering user", err)
		return
	}
	c.writeJSON(w, http.StatusCreated, entities.RegisterResponse{
		Message: "User registered successfully",
		UserID:  userID,
	})
}

func (c *BaseController) login(w http.ResponseWriter, r *http.Request) {
	userReq := validateUserAuthReq(w, r)
	if userReq == nil {
		return
	}
	user, err := c.users.FindUser(r.Context(), userReq)
	if err != nil {
		c.serverError(w, "Error logging in user", err)
		return
	}
	if user == nil {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Invalid username or password"))
		return
	}
	c.writeJSON(w, http.StatusOK, entities.LoginResponse{
		Message:  "Login successful",
		Username: user.Username,
	})
}

// serverError logs the cause and hides it from the client.
func (c *BaseController) serverError(w http.ResponseWriter, what string, err error) {
	c.logger.Errorf("%s: %s", what, err.Error())
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte("Server error"))
}

func (c *BaseController) writeJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		c.serverError(w, "Failed to marshal the response", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// urlParam returns the decoded path parameter. chi leaves it escaped when the
// request path carries encoded slashes.
func urlParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw
	}
	if value, err := url.PathUnescape(raw); err == nil {
		return value
	}
	return raw
}
