package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/coastalbeacon/beacon/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersRepo_CreateAndGet(t *testing.T) {
	repo := NewUsersRepo()
	ctx := context.Background()

	u := user.User{ID: "1", Email: "a@b.com", GKAnswers: []string{"Tokyo"}}
	require.NoError(t, repo.Create(ctx, u))

	exists, err := repo.ExistsByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	// callers must not be able to mutate stored answers
	got.GKAnswers[0] = "Seoul"
	again, _ := repo.GetByEmail(ctx, "a@b.com")
	assert.Equal(t, "Tokyo", again.GKAnswers[0])
}

func TestUsersRepo_EmailIgnoresCase(t *testing.T) {
	repo := NewUsersRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, user.User{ID: "1", Email: "a@b.com"}))
	assert.ErrorIs(t, repo.Create(ctx, user.User{ID: "2", Email: "A@B.COM"}), user.ErrEmailAlreadyUsed)

	exists, err := repo.ExistsByEmail(ctx, "A@b.com")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := repo.GetByEmail(ctx, "A@B.com")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)
	assert.Equal(t, 1, repo.Len())
}

func TestUsersRepo_MissingUser(t *testing.T) {
	repo := NewUsersRepo()

	exists, err := repo.ExistsByEmail(context.Background(), "nope@b.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.GetByEmail(context.Background(), "nope@b.com")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestUsersRepo_ConcurrentCreateSameEmail(t *testing.T) {
	repo := NewUsersRepo()

	const n = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(context.Background(), user.User{Email: "a@b.com"})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, user.ErrEmailAlreadyUsed)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 1, repo.Len())
}
