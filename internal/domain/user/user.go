package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("user not found")
	ErrEmailAlreadyUsed = errors.New("email already in use")
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Mobile       string    `json:"mobile"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	GKAnswers    []string  `json:"gkAnswers"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Binding tags mirror the advisory client-side checks; username, mobile and
// email_shape are registered by handlers.RegisterValidations.
type SignUpRequest struct {
	Username  string   `json:"username" binding:"required,username"`
	Mobile    string   `json:"mobile" binding:"required,mobile"`
	Email     string   `json:"email" binding:"required,email_shape"`
	Password  string   `json:"password" binding:"required"`
	GKAnswers []string `json:"gkAnswers"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// NormalizeEmail is the form emails are stored and looked up in. Addresses
// differing only in case or surrounding space are the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewFromSignUp builds the record that gets persisted. The caller supplies the
// already hashed password.
func NewFromSignUp(req SignUpRequest, passwordHash string) User {
	answers := req.GKAnswers
	if answers == nil {
		answers = []string{}
	}

	return User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Mobile:       req.Mobile,
		Email:        NormalizeEmail(req.Email),
		PasswordHash: passwordHash,
		GKAnswers:    answers,
		CreatedAt:    time.Now().UTC(),
	}
}
