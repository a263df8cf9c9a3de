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

// userDocument is the persisted shape of a domain.User. IDs are stored as
// strings so documents stay readable in the shell and portable across
// driver versions.
type userDocument struct {
	ID             string    `bson:"_id"`
	Username       string    `bson:"username"`
	Email          string    `bson:"email"`
	HashedPassword string    `bson:"hashed_password"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func toUserDocument(user *domain.User) *userDocument {
	return &userDocument{
		ID:             user.ID.String(),
		Username:       user.Username,
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func (d *userDocument) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed user ID %q: %v", store.ErrInvalidEntity, d.ID, err)
	}
	return &domain.User{
		ID:             id,
		Username:       d.Username,
		Email:          d.Email,
		HashedPassword: d.HashedPassword,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}, nil
}

// MongoUserStore implements the store.UserStore interface using a MongoDB
// collection as the storage backend.
type MongoUserStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewMongoUserStore creates a new MongoDB implementation of the UserStore
// interface. It accepts a collection handle that should be initialized and
// managed by the caller. If logger is nil, a default logger will be used.
func NewMongoUserStore(coll *mongo.Collection, logger *slog.Logger) *MongoUserStore {
	if coll == nil {
		panic("collection cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MongoUserStore{
		coll:   coll,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure MongoUserStore implements store.UserStore
var _ store.UserStore = (*MongoUserStore)(nil)

// Create implements store.UserStore.Create
// It validates and persists the user document. The unique indexes on
// username and email turn concurrent duplicates into ErrUsernameExists /
// ErrEmailExists even when a pre-check raced.
func (s *MongoUserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		s.logger.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	_, err := s.coll.InsertOne(ctx, toUserDocument(user))
	if err != nil {
		mapped := MapError(err, store.ErrUserNotFound)
		if store.IsDuplicateError(mapped) {
			s.logger.Debug("duplicate user on create",
				slog.String("user_id", user.ID.String()))
			return mapped
		}
		s.logger.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return mapped
	}

	s.logger.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *MongoUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"_id": id.String()})
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *MongoUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		mapped := MapError(err, store.ErrUserNotFound)
		if !store.IsNotFoundError(mapped) {
			s.logger.Error("failed to retrieve user", slog.String("error", err.Error()))
		}
		return nil, mapped
	}
	return doc.toDomain()
}

// Update implements store.UserStore.Update
// The full document is replaced; a zero matched count means the user is gone.
func (s *MongoUserStore) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		s.logger.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	user.UpdatedAt = time.Now().UTC()

	result, err := s.coll.ReplaceOne(ctx, bson.M{"_id": user.ID.String()}, toUserDocument(user))
	if err != nil {
		mapped := MapWriteError(err, store.ErrUpdateFailed)
		if store.IsDuplicateError(mapped) {
			return mapped
		}
		s.logger.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return mapped
	}

	if result.MatchedCount == 0 {
		s.logger.Debug("user not found during update", slog.String("user_id", user.ID.String()))
		return store.ErrUserNotFound
	}

	s.logger.Info("user updated", slog.String("user_id", user.ID.String()))
	return nil
}

// Delete implements store.UserStore.Delete
func (s *MongoUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		s.logger.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return MapWriteError(err, store.ErrDeleteFailed)
	}

	if err := CheckDeletedCount(result, store.ErrUserNotFound); err != nil {
		s.logger.Debug("user not found during delete", slog.String("user_id", id.String()))
		return err
	}

	s.logger.Info("user deleted", slog.String("user_id", id.String()))
	return nil
}

// Exists implements store.UserStore.Exists
func (s *MongoUserStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"_id": id.String()})
	if err != nil {
		s.logger.Error("failed to check user existence",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return false, err
	}
	return count > 0, nil
}

// Count implements store.UserStore.Count
func (s *MongoUserStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}
