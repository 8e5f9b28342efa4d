//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewUserRepository(db)
	user := &model.User{Email: "  Jane@Example.com ", Password: "hash", Name: "Jane", Active: true}

	t.Run("create normalizes email", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, user))
		assert.Equal(t, "jane@example.com", user.Email)
		assert.False(t, user.ID.IsZero())
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &model.User{Email: "JANE@example.com", Password: "x"})
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("find by email is case-insensitive", func(t *testing.T) {
		got, err := repo.FindByEmail(ctx, "Jane@EXAMPLE.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "hash", got.Password)
	})

	t.Run("find by id", func(t *testing.T) {
		got, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Jane", got.Name)
	})

	t.Run("missing users", func(t *testing.T) {
		got, err := repo.FindByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = repo.FindByID(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
