// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockSavedListsRepositoryInterface struct {
	mock.Mock
}

func (m *MockSavedListsRepositoryInterface) Create(ctx context.Context, list *model.SavedList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockSavedListsRepositoryInterface) FindByID(ctx context.Context, id primitive.ObjectID, ownerID string) (*model.SavedList, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SavedList), args.Error(1)
}

func (m *MockSavedListsRepositoryInterface) List(ctx context.Context, ownerID string, limit int) ([]model.SavedList, error) {
	args := m.Called(ctx, ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SavedList), args.Error(1)
}

func (m *MockSavedListsRepositoryInterface) Update(ctx context.Context, id primitive.ObjectID, ownerID, name string, items []model.SavedItem) (*model.SavedList, error) {
	args := m.Called(ctx, id, ownerID, name, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SavedList), args.Error(1)
}

func (m *MockSavedListsRepositoryInterface) Delete(ctx context.Context, id primitive.ObjectID, ownerID string) (bool, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Bool(0), args.Error(1)
}
