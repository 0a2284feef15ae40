package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coastalbeacon/beacon/internal/domain/user"
	"github.com/coastalbeacon/beacon/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the slice of *pgxpool.Pool the repositories need.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UsersRepo struct {
	pool Querier
	prom *observability.Prom
}

func NewUsersRepo(pool Querier, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}

func (r *UsersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool

	err := r.observe("users.exists_by_email", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`,
			email,
		).Scan(&exists)
	})

	return exists, err
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) error {
	answers, err := json.Marshal(u.GKAnswers)
	if err != nil {
		return fmt.Errorf("encode gk answers: %w", err)
	}

	err = r.observe("users.create", func() error {
		_, e := r.pool.Exec(ctx,
			`INSERT INTO users (id, username, mobile, email, password_hash, gk_answers, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			u.ID, u.Username, u.Mobile, u.Email, u.PasswordHash, answers, u.CreatedAt,
		)
		return e
	})

	if err != nil {
		// users_email_key is the only unique index besides the uuid primary key
		if IsUniqueViolation(err) {
			return user.ErrEmailAlreadyUsed
		}
		return err
	}

	return nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var (
		u       user.User
		answers []byte
	)

	found := true

	err := r.observe("users.get_by_email", func() error {
		e := r.pool.QueryRow(
			ctx,
			`SELECT id, username, mobile, email, password_hash, gk_answers, created_at
         FROM users
         WHERE lower(email) = lower($1)`,
			email,
		).Scan(
			&u.ID,
			&u.Username,
			&u.Mobile,
			&u.Email,
			&u.PasswordHash,
			&answers,
			&u.CreatedAt,
		)

		// a miss is not a db failure
		if errors.Is(e, pgx.ErrNoRows) {
			found = false
			return nil
		}
		return e
	})

	if err != nil {
		return user.User{}, err
	}

	if !found {
		return user.User{}, user.ErrNotFound
	}

	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &u.GKAnswers); err != nil {
			return user.User{}, fmt.Errorf("decode gk answers: %w", err)
		}
	}
	if u.GKAnswers == nil {
		u.GKAnswers = []string{}
	}

	return u, nil
}
