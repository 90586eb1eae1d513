package entities

type UserAuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User is a row of the users table. Password holds whatever the active
// ICryptoProvider stored: the raw value in plain mode, a bcrypt hash otherwise.
type User struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Password string `db:"password"`
}

// Book is a row of the books table. Books are maintained outside the service.
type Book struct {
	ISBN   string  `db:"isbn" json:"isbn"`
	Title  string  `db:"title" json:"title"`
	Author string  `db:"author" json:"author"`
	Review *string `db:"review" json:"review"`
}

type Review struct {
	ISBN   string `json:"isbn"`
	Review string `json:"review"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}
