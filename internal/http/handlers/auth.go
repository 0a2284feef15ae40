package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coastalbeacon/beacon/internal/accounts"
	"github.com/coastalbeacon/beacon/internal/domain/user"
	"github.com/coastalbeacon/beacon/internal/observability"
	"github.com/gin-gonic/gin"
)

const (
	msgMissingFields      = "Missing required fields"
	msgMissingCredentials = "Missing credentials"
)

type Accounts interface {
	Register(ctx context.Context, req user.SignUpRequest) (user.User, error)
	Authenticate(ctx context.Context, email, password string) (accounts.Session, error)
}

type AuthHandler struct {
	accounts Accounts
	prom     *observability.Prom
	log      *slog.Logger
}

func NewAuthHandler(svc Accounts, prom *observability.Prom, log *slog.Logger) *AuthHandler {
	RegisterValidations()

	if log == nil {
		log = slog.Default()
	}

	return &AuthHandler{
		accounts: svc,
		prom:     prom,
		log:      log,
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req user.SignUpRequest

	if !BindJSON(ctx, &req, msgMissingFields) {
		h.prom.ObserveAuth("signup", "invalid")
		return
	}

	// bcrypt plus two statements
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	_, err := h.accounts.Register(cctx, req)
	if err != nil {
		h.respondAccountsError(ctx, "signup", err)
		return
	}

	h.prom.ObserveAuth("signup", "ok")

	ctx.JSON(http.StatusCreated, MessageResponse{Message: "User registered successfully"})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req, msgMissingCredentials) {
		h.prom.ObserveAuth("login", "invalid")
		return
	}

	// short timeout for DB lookup
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	sess, err := h.accounts.Authenticate(cctx, req.Email, req.Password)
	if err != nil {
		h.respondAccountsError(ctx, "login", err)
		return
	}

	h.prom.ObserveAuth("login", "ok")

	ctx.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   sess.Token,
	})
}

// The observed API reports conflicts, unknown users and bad passwords as 400;
// clients branch on the message, so the status stays 400 for all of them.
func (h *AuthHandler) respondAccountsError(ctx *gin.Context, action string, err error) {
	var ve *accounts.ValidationError

	switch {
	case errors.As(err, &ve):
		h.prom.ObserveAuth(action, "invalid")
		if ve.Field == "" {
			msg := msgMissingFields
			if action == "login" {
				msg = msgMissingCredentials
			}
			RespondBadRequest(ctx, "missing_fields", msg, nil)
			return
		}
		RespondBadRequest(ctx, "invalid_request", "Invalid request body", gin.H{
			"fields": []FieldError{{Field: ve.Field, Rule: "format", Message: ve.Reason}},
		})

	case errors.Is(err, accounts.ErrConflict):
		h.prom.ObserveAuth(action, "conflict")
		RespondBadRequest(ctx, "user_exists", "User already exists", nil)

	case errors.Is(err, accounts.ErrNotFound):
		h.prom.ObserveAuth(action, "not_found")
		RespondBadRequest(ctx, "user_not_found", "User not found", nil)

	case errors.Is(err, accounts.ErrAuth):
		h.prom.ObserveAuth(action, "bad_password")
		RespondBadRequest(ctx, "invalid_credentials", "Invalid credentials", nil)

	case errors.Is(err, accounts.ErrStore):
		h.prom.ObserveAuth(action, "error")
		h.log.ErrorContext(ctx.Request.Context(), "store failure", "action", action, "err", err)
		RespondInternal(ctx, "DB error")

	default:
		h.prom.ObserveAuth(action, "error")
		h.log.ErrorContext(ctx.Request.Context(), "request failed", "action", action, "err", err)
		RespondInternal(ctx, "Server error")
	}
}
