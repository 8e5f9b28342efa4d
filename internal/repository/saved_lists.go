package repository

import (
	"context"
	"time"

	"github.com/guttosm/balance-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultListLimit caps List when the caller passes no limit.
const DefaultListLimit = 100

// SavedListsRepository stores saved lists with their items embedded, so a
// list and its items are written and removed in one document operation.
type SavedListsRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewSavedListsRepository creates a new saved lists repository.
func NewSavedListsRepository(db *MongoDB) *SavedListsRepository {
	return &SavedListsRepository{
		collection: db.SavedLists,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ownerFilter scopes a query to one owner. An empty owner only matches
// anonymous lists.
func ownerFilter(id primitive.ObjectID, ownerID string) bson.M {
	return bson.M{"_id": id, "owner_id": ownerID}
}

// Create inserts a list, stamping its id and timestamps.
func (r *SavedListsRepository) Create(ctx context.Context, list *model.SavedList) error {
	now := r.now()
	if list.ID.IsZero() {
		list.ID = primitive.NewObjectID()
	}
	list.CreatedAt = now
	list.UpdatedAt = now
	if list.Items == nil {
		list.Items = []model.SavedItem{}
	}

	_, err := r.collection.InsertOne(ctx, list)
	return err
}

// FindByID returns the owner's list, or nil when it does not exist.
func (r *SavedListsRepository) FindByID(ctx context.Context, id primitive.ObjectID, ownerID string) (*model.SavedList, error) {
	var list model.SavedList
	err := r.collection.FindOne(ctx, ownerFilter(id, ownerID)).Decode(&list)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// List returns the owner's lists, newest first.
func (r *SavedListsRepository) List(ctx context.Context, ownerID string, limit int) ([]model.SavedList, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	lists := []model.SavedList{}
	if err := cursor.All(ctx, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// Update replaces the name and items of the owner's list and returns the
// stored document, or nil when it does not exist.
func (r *SavedListsRepository) Update(ctx context.Context, id primitive.ObjectID, ownerID, name string, items []model.SavedItem) (*model.SavedList, error) {
	if items == nil {
		items = []model.SavedItem{}
	}
	update := bson.M{
		"$set": bson.M{
			"name":       name,
			"items":      items,
			"updated_at": r.now(),
		},
	}

	var list model.SavedList
	err := r.collection.FindOneAndUpdate(
		ctx,
		ownerFilter(id, ownerID),
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&list)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// Delete removes the owner's list and reports whether it existed.
func (r *SavedListsRepository) Delete(ctx context.Context, id primitive.ObjectID, ownerID string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, ownerFilter(id, ownerID))
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
