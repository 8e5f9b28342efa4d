package service

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/guttosm/balance-service/internal/metrics"
	"github.com/guttosm/balance-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrRepositoryNotConfigured is returned when no database backs saved lists.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrListNotFound is returned for unknown ids, malformed ids and lists of other owners.
	ErrListNotFound = errors.New("saved list not found")
)

// SavedListsService manages named item lists and runs the optimizer on them.
// ownerID scopes every call; an empty owner addresses anonymous lists.
type SavedListsService interface {
	Create(ctx context.Context, ownerID, name string, items []model.CatalogItem) (*model.SavedList, error)
	Get(ctx context.Context, ownerID, id string) (*model.SavedList, error)
	List(ctx context.Context, ownerID string, limit int) ([]model.SavedList, error)
	Update(ctx context.Context, ownerID, id, name string, items []model.CatalogItem) (*model.SavedList, error)
	Delete(ctx context.Context, ownerID, id string) error
	// Optimize loads the list and spends budget on its items. A non-empty
	// Rejection means the optimizer refused the input and the result is zero.
	Optimize(ctx context.Context, ownerID, id string, budgetMinorUnits int) (model.OptimizationResult, Rejection, error)
}

// SavedListsServiceImpl implements SavedListsService.
type SavedListsServiceImpl struct {
	repo      repository.SavedListsRepositoryInterface
	optimizer BalanceOptimizer
	now       func() time.Time
}

// NewSavedListsService creates a saved lists service. A nil repo yields a
// service whose calls all fail with ErrRepositoryNotConfigured.
func NewSavedListsService(repo repository.SavedListsRepositoryInterface, optimizer BalanceOptimizer) *SavedListsServiceImpl {
	return &SavedListsServiceImpl{
		repo:      repo,
		optimizer: optimizer,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func parseListID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrListNotFound
	}
	return oid, nil
}

func (s *SavedListsServiceImpl) Create(ctx context.Context, ownerID, name string, items []model.CatalogItem) (*model.SavedList, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	list := &model.SavedList{
		OwnerID: ownerID,
		Name:    name,
		Items:   model.SavedItemsFromCatalog(items, s.now()),
	}
	err := s.repo.Create(ctx, list)
	metrics.RecordSavedListOperation("create", err)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *SavedListsServiceImpl) Get(ctx context.Context, ownerID, id string) (*model.SavedList, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	oid, err := parseListID(id)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.FindByID(ctx, oid, ownerID)
	metrics.RecordSavedListOperation("get", err)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, ErrListNotFound
	}
	return list, nil
}

func (s *SavedListsServiceImpl) List(ctx context.Context, ownerID string, limit int) ([]model.SavedList, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	lists, err := s.repo.List(ctx, ownerID, limit)
	metrics.RecordSavedListOperation("list", err)
	return lists, err
}

// Update replaces name and items. Items keep their original creation time
// when their id was already in the list.
func (s *SavedListsServiceImpl) Update(ctx context.Context, ownerID, id, name string, items []model.CatalogItem) (*model.SavedList, error) {
	current, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	created := make(map[string]time.Time, len(current.Items))
	for _, it := range current.Items {
		created[it.ID] = it.CreatedAt
	}
	saved := model.SavedItemsFromCatalog(items, s.now())
	for i := range saved {
		if t, ok := created[saved[i].ID]; ok {
			saved[i].CreatedAt = t
		}
	}

	updated, err := s.repo.Update(ctx, current.ID, ownerID, name, saved)
	metrics.RecordSavedListOperation("update", err)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// deleted between the read and the write
		return nil, ErrListNotFound
	}
	return updated, nil
}

func (s *SavedListsServiceImpl) Delete(ctx context.Context, ownerID, id string) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}
	oid, err := parseListID(id)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, oid, ownerID)
	metrics.RecordSavedListOperation("delete", err)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrListNotFound
	}
	return nil
}

func (s *SavedListsServiceImpl) Optimize(ctx context.Context, ownerID, id string, budgetMinorUnits int) (model.OptimizationResult, Rejection, error) {
	list, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return model.OptimizationResult{}, RejectionNone, err
	}

	input := model.OptimizationInput{BudgetMinorUnits: budgetMinorUnits, Items: list.Catalog()}
	result, ok := s.optimizer.Optimize(input)
	if !ok {
		return model.OptimizationResult{}, s.optimizer.Validate(input), nil
	}
	return result, RejectionNone, nil
}
