package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/listkeep/listkeep-api/internal/domain"
	"github.com/listkeep/listkeep-api/internal/store"
)

// listDocument is the persisted shape of a domain.List.
type listDocument struct {
	ID         string    `bson:"_id"`
	UserID     string    `bson:"user_id"`
	Title      string    `bson:"title"`
	Visibility string    `bson:"visibility"`
	ShareToken string    `bson:"share_token"`
	Version    int       `bson:"version"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func toListDocument(list *domain.List) *listDocument {
	return &listDocument{
		ID:         list.ID.String(),
		UserID:     list.UserID.String(),
		Title:      list.Title,
		Visibility: string(list.Visibility),
		ShareToken: list.ShareToken,
		Version:    list.Version,
		CreatedAt:  list.CreatedAt,
		UpdatedAt:  list.UpdatedAt,
	}
}

func (d *listDocument) toDomain() (*domain.List, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed list ID %q: %v", store.ErrInvalidEntity, d.ID, err)
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed list owner ID %q: %v", store.ErrInvalidEntity, d.UserID, err)
	}
	return &domain.List{
		ID:         id,
		UserID:     userID,
		Title:      d.Title,
		Visibility: domain.Visibility(d.Visibility),
		ShareToken: d.ShareToken,
		Version:    d.Version,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}, nil
}

// MongoListStore implements the store.ListStore interface using a MongoDB
// collection as the storage backend.
type MongoListStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewMongoListStore creates a new MongoDB implementation of the ListStore
// interface. If logger is nil, a default logger will be used.
func NewMongoListStore(coll *mongo.Collection, logger *slog.Logger) *MongoListStore {
	if coll == nil {
		panic("collection cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MongoListStore{
		coll:   coll,
		logger: logger.With(slog.String("component", "list_store")),
	}
}

// Ensure MongoListStore implements store.ListStore
var _ store.ListStore = (*MongoListStore)(nil)

// Create implements store.ListStore.Create
func (s *MongoListStore) Create(ctx context.Context, list *domain.List) error {
	if err := list.Validate(); err != nil {
		s.logger.Warn("list validation failed during create",
			slog.String("error", err.Error()),
			slog.String("list_id", list.ID.String()))
		return err
	}

	if _, err := s.coll.InsertOne(ctx, toListDocument(list)); err != nil {
		s.logger.Error("failed to create list",
			slog.String("error", err.Error()),
			slog.String("list_id", list.ID.String()),
			slog.String("user_id", list.UserID.String()))
		return MapError(err, store.ErrListNotFound)
	}

	s.logger.Info("list created",
		slog.String("list_id", list.ID.String()),
		slog.String("user_id", list.UserID.String()))
	return nil
}

// GetByID implements store.ListStore.GetByID
func (s *MongoListStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	return s.findOne(ctx, bson.M{"_id": id.String()})
}

// GetByShareToken implements store.ListStore.GetByShareToken
func (s *MongoListStore) GetByShareToken(ctx context.Context, token string) (*domain.List, error) {
	return s.findOne(ctx, bson.M{"share_token": token})
}

func (s *MongoListStore) findOne(ctx context.Context, filter bson.M) (*domain.List, error) {
	var doc listDocument
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		mapped := MapError(err, store.ErrListNotFound)
		if !store.IsNotFoundError(mapped) {
			s.logger.Error("failed to retrieve list", slog.String("error", err.Error()))
		}
		return nil, mapped
	}
	return doc.toDomain()
}

// ListByUserID implements store.ListStore.ListByUserID
func (s *MongoListStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.List, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID.String()})
	if err != nil {
		s.logger.Error("failed to list lists for user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if cErr := cursor.Close(ctx); cErr != nil {
			s.logger.Warn("failed to close cursor", slog.String("error", cErr.Error()))
		}
	}()

	var docs []listDocument
	if err := cursor.All(ctx, &docs); err != nil {
		s.logger.Error("failed to decode lists",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	lists := make([]*domain.List, 0, len(docs))
	for i := range docs {
		list, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, nil
}

// Update implements store.ListStore.Update
func (s *MongoListStore) Update(ctx context.Context, list *domain.List) error {
	if err := list.Validate(); err != nil {
		s.logger.Warn("list validation failed during update",
			slog.String("error", err.Error()),
			slog.String("list_id", list.ID.String()))
		return err
	}

	list.UpdatedAt = time.Now().UTC()

	result, err := s.coll.ReplaceOne(ctx, bson.M{"_id": list.ID.String()}, toListDocument(list))
	if err != nil {
		s.logger.Error("failed to update list",
			slog.String("error", err.Error()),
			slog.String("list_id", list.ID.String()))
		return MapWriteError(err, store.ErrUpdateFailed)
	}

	if err := CheckMatchedCount(result, store.ErrListNotFound); err != nil {
		s.logger.Debug("list not found during update", slog.String("list_id", list.ID.String()))
		return err
	}

	s.logger.Info("list updated", slog.String("list_id", list.ID.String()))
	return nil
}

// Delete implements store.ListStore.Delete
func (s *MongoListStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		s.logger.Error("failed to delete list",
			slog.String("error", err.Error()),
			slog.String("list_id", id.String()))
		return MapWriteError(err, store.ErrDeleteFailed)
	}

	if err := CheckDeletedCount(result, store.ErrListNotFound); err != nil {
		s.logger.Debug("list not found during delete", slog.String("list_id", id.String()))
		return err
	}

	s.logger.Info("list deleted", slog.String("list_id", id.String()))
	return nil
}

// Exists implements store.ListStore.Exists
func (s *MongoListStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"_id": id.String()})
	if err != nil {
		s.logger.Error("failed to check list existence",
			slog.String("error", err.Error()),
			slog.String("list_id", id.String()))
		return false, err
	}
	return count > 0, nil
}
