//go:build integration

package circuitbreaker_test

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/balance-service/internal/circuitbreaker"
	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/guttosm/balance-service/internal/repository"
	"github.com/guttosm/balance-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerWithMongoDB_Integration(t *testing.T) {
	ctx := context.Background()

	mongoContainer, err := testutil.SetupMongoDB(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, mongoContainer.Cleanup(ctx))
	}()

	t.Run("stays closed while mongo is healthy", func(t *testing.T) {
		db, err := repository.NewMongoDB(mongoContainer.URI, "cb_healthy")
		require.NoError(t, err)
		defer func() { _ = db.Close(ctx) }()

		cb := circuitbreaker.New(circuitbreaker.Config{FailureThreshold: 2, SuccessThreshold: 1, Timeout: time.Second, Name: "saved-lists"})
		repo := repository.NewSavedListsRepositoryWithCircuitBreaker(repository.NewSavedListsRepository(db), cb)

		require.NoError(t, repo.Create(ctx, &model.SavedList{OwnerID: "o", Name: "A"}))
		lists, err := repo.List(ctx, "o", 10)
		require.NoError(t, err)
		assert.Len(t, lists, 1)
		assert.Equal(t, circuitbreaker.StateClosed, cb.State())
	})

	t.Run("opens once the client is gone", func(t *testing.T) {
		db, err := repository.NewMongoDB(mongoContainer.URI, "cb_broken")
		require.NoError(t, err)
		require.NoError(t, db.Close(ctx))

		var opened bool
		cb := circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: 2,
			SuccessThreshold: 1,
			Timeout:          time.Minute,
			Name:             "saved-lists",
			OnStateChange: func(_ string, _, to circuitbreaker.State) {
				opened = opened || to == circuitbreaker.StateOpen
			},
		})
		repo := repository.NewSavedListsRepositoryWithCircuitBreaker(repository.NewSavedListsRepository(db), cb)

		for i := 0; i < 2; i++ {
			_, err := repo.List(ctx, "o", 10)
			require.Error(t, err)
		}
		assert.True(t, opened)

		_, err = repo.List(ctx, "o", 10)
		assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	})
}
