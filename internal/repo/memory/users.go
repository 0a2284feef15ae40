package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/coastalbeacon/beacon/internal/domain/user"
)

// UsersRepo keeps users in a map keyed by normalized email. Create enforces
// email uniqueness the same way the users_email_key index does in Postgres.
type UsersRepo struct {
	mu    sync.RWMutex
	items map[string]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items: make(map[string]user.User),
	}
}

func (r *UsersRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	_, ok := r.items[user.NormalizeEmail(email)]
	r.mu.RUnlock()

	return ok, nil
}

func (r *UsersRepo) Create(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := user.NormalizeEmail(u.Email)
	if _, ok := r.items[key]; ok {
		return user.ErrEmailAlreadyUsed
	}

	u.GKAnswers = slices.Clone(u.GKAnswers)
	r.items[key] = u

	return nil
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	u, ok := r.items[user.NormalizeEmail(email)]
	r.mu.RUnlock()

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	u.GKAnswers = slices.Clone(u.GKAnswers)
	return u, nil
}

// Len reports how many users are stored.
func (r *UsersRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
