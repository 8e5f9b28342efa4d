// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/guttosm/balance-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockSavedListsService struct {
	mock.Mock
}

func (m *MockSavedListsService) Create(ctx context.Context, ownerID, name string, items []model.CatalogItem) (*model.SavedList, error) {
	args := m.Called(ctx, ownerID, name, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SavedList), args.Error(1)
}

func (m *MockSavedListsService) Get(ctx context.Context, ownerID, id string) (*model.SavedList, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SavedList), args.Error(1)
}

func (m *MockSavedListsService) List(ctx context.Context, ownerID string, limit int) ([]model.SavedList, error) {
	args := m.Called(ctx, ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SavedList), args.Error(1)
}

func (m *MockSavedListsService) Update(ctx context.Context, ownerID, id, name string, items []model.CatalogItem) (*model.SavedList, error) {
	args := m.Called(ctx, ownerID, id, name, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SavedList), args.Error(1)
}

func (m *MockSavedListsService) Delete(ctx context.Context, ownerID, id string) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *MockSavedListsService) Optimize(ctx context.Context, ownerID, id string, budgetMinorUnits int) (model.OptimizationResult, service.Rejection, error) {
	args := m.Called(ctx, ownerID, id, budgetMinorUnits)
	return args.Get(0).(model.OptimizationResult), args.Get(1).(service.Rejection), args.Error(2)
}
