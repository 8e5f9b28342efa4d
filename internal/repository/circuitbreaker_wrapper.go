package repository

import (
	"context"
	"errors"

	"github.com/guttosm/balance-service/internal/circuitbreaker"
	"github.com/guttosm/balance-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// execute runs fn through cb and hands back its result.
func execute[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var fnErr error
		result, fnErr = fn()
		return fnErr
	})
	return result, err
}

// SavedListsRepositoryWithCircuitBreaker guards a saved lists repository.
// When the circuit is open every call fails fast with circuitbreaker.ErrCircuitOpen.
type SavedListsRepositoryWithCircuitBreaker struct {
	repo           SavedListsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewSavedListsRepositoryWithCircuitBreaker wraps repo with cb.
func NewSavedListsRepositoryWithCircuitBreaker(repo SavedListsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *SavedListsRepositoryWithCircuitBreaker {
	return &SavedListsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

func (r *SavedListsRepositoryWithCircuitBreaker) Create(ctx context.Context, list *model.SavedList) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, list)
	})
}

func (r *SavedListsRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id primitive.ObjectID, ownerID string) (*model.SavedList, error) {
	return execute(ctx, r.circuitBreaker, func() (*model.SavedList, error) {
		return r.repo.FindByID(ctx, id, ownerID)
	})
}

func (r *SavedListsRepositoryWithCircuitBreaker) List(ctx context.Context, ownerID string, limit int) ([]model.SavedList, error) {
	return execute(ctx, r.circuitBreaker, func() ([]model.SavedList, error) {
		return r.repo.List(ctx, ownerID, limit)
	})
}

func (r *SavedListsRepositoryWithCircuitBreaker) Update(ctx context.Context, id primitive.ObjectID, ownerID, name string, items []model.SavedItem) (*model.SavedList, error) {
	return execute(ctx, r.circuitBreaker, func() (*model.SavedList, error) {
		return r.repo.Update(ctx, id, ownerID, name, items)
	})
}

func (r *SavedListsRepositoryWithCircuitBreaker) Delete(ctx context.Context, id primitive.ObjectID, ownerID string) (bool, error) {
	return execute(ctx, r.circuitBreaker, func() (bool, error) {
		return r.repo.Delete(ctx, id, ownerID)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *SavedListsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker guards a logs repository. Writes are
// dropped silently while the circuit is open; log shipping is best effort.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with cb.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

func dropWhenOpen(err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.LogEntry) error {
	return dropWhenOpen(r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	}))
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	return dropWhenOpen(r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	}))
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	return execute(ctx, r.circuitBreaker, func() ([]model.LogEntry, error) {
		return r.repo.Query(ctx, opts)
	})
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return execute(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
