package models

// UserDB represents a user record in the database.
//
// Passwords are stored exactly as submitted and compared with string
// equality.
type UserDB struct {
	ID       int64  `json:"id" db:"id"`             // Primary key
	Username string `json:"username" db:"username"` // Unique username
	Password string `json:"-" db:"password"`        // Stored as given
	Role     Role   `json:"role" db:"role"`         // admin / bidder / seller
}

// Identity is the acting authenticated identity, resolved once at the
// request boundary and passed explicitly into every service call.
type Identity struct {
	UserID int64
	Role   Role
}
