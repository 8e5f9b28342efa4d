package repository

import (
	"context"

	"github.com/guttosm/balance-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedListsRepositoryInterface is the storage contract for saved lists.
// Lookups that find nothing return (nil, nil).
type SavedListsRepositoryInterface interface {
	Create(ctx context.Context, list *model.SavedList) error
	FindByID(ctx context.Context, id primitive.ObjectID, ownerID string) (*model.SavedList, error)
	List(ctx context.Context, ownerID string, limit int) ([]model.SavedList, error)
	Update(ctx context.Context, id primitive.ObjectID, ownerID, name string, items []model.SavedItem) (*model.SavedList, error)
	Delete(ctx context.Context, id primitive.ObjectID, ownerID string) (bool, error)
}

// LogsRepositoryInterface is the storage contract for log entries.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// UserRepositoryInterface is the storage contract for user accounts.
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
}

var (
	_ SavedListsRepositoryInterface = (*SavedListsRepository)(nil)
	_ SavedListsRepositoryInterface = (*SavedListsRepositoryWithCircuitBreaker)(nil)
	_ LogsRepositoryInterface       = (*LogsRepository)(nil)
	_ LogsRepositoryInterface       = (*LogsRepositoryWithCircuitBreaker)(nil)
	_ UserRepositoryInterface       = (*UserRepository)(nil)
)
