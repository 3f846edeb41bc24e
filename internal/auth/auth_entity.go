package auth

import (
	"leave-tracker/internal/store"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a session token.
type Claims struct {
	UserID         string `json:"id"`
	Name           string `json:"name"`
	PaysheetNumber string `json:"paysheet_number"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// PublicUser is the user view handed to clients. It never carries the
// password hash.
type PublicUser struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	PaysheetNumber string `json:"paysheet_number"`
	Email          string `json:"email"`
}

func toPublicUser(u store.User) PublicUser {
	return PublicUser{
		ID:             u.ID.String(),
		Name:           u.Name,
		PaysheetNumber: u.PaysheetNumber,
		Email:          u.Email,
	}
}
