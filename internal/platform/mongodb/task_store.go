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

// taskDocument is the persisted shape of a domain.Task.
type taskDocument struct {
	ID          string      `bson:"_id"`
	ListID      string      `bson:"list_id"`
	Title       string      `bson:"title"`
	Completed   bool        `bson:"completed"`
	Priority    bool        `bson:"priority"`
	Recurring   bool        `bson:"recurring"`
	Reminders   []time.Time `bson:"reminders,omitempty"`
	ListVersion int         `bson:"list_version"`
	CreatedAt   time.Time   `bson:"created_at"`
	UpdatedAt   time.Time   `bson:"updated_at"`
}

func toTaskDocument(task *domain.Task) *taskDocument {
	return &taskDocument{
		ID:          task.ID.String(),
		ListID:      task.ListID.String(),
		Title:       task.Title,
		Completed:   task.Completed,
		Priority:    task.Priority,
		Recurring:   task.Recurring,
		Reminders:   task.Reminders,
		ListVersion: task.ListVersion,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func (d *taskDocument) toDomain() (*domain.Task, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed task ID %q: %v", store.ErrInvalidEntity, d.ID, err)
	}
	listID, err := uuid.Parse(d.ListID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed task list ID %q: %v", store.ErrInvalidEntity, d.ListID, err)
	}
	return &domain.Task{
		ID:          id,
		ListID:      listID,
		Title:       d.Title,
		Completed:   d.Completed,
		Priority:    d.Priority,
		Recurring:   d.Recurring,
		Reminders:   d.Reminders,
		ListVersion: d.ListVersion,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

// MongoTaskStore implements the store.TaskStore interface using a MongoDB
// collection as the storage backend.
type MongoTaskStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewMongoTaskStore creates a new MongoDB implementation of the TaskStore
// interface. If logger is nil, a default logger will be used.
func NewMongoTaskStore(coll *mongo.Collection, logger *slog.Logger) *MongoTaskStore {
	if coll == nil {
		panic("collection cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MongoTaskStore{
		coll:   coll,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure MongoTaskStore implements store.TaskStore
var _ store.TaskStore = (*MongoTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *MongoTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		s.logger.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	if _, err := s.coll.InsertOne(ctx, toTaskDocument(task)); err != nil {
		s.logger.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("list_id", task.ListID.String()))
		return MapError(err, store.ErrTaskNotFound)
	}

	s.logger.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("list_id", task.ListID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *MongoTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var doc taskDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		mapped := MapError(err, store.ErrTaskNotFound)
		if !store.IsNotFoundError(mapped) {
			s.logger.Error("failed to retrieve task",
				slog.String("error", err.Error()),
				slog.String("task_id", id.String()))
		}
		return nil, mapped
	}
	return doc.toDomain()
}

// ListByListID implements store.TaskStore.ListByListID
func (s *MongoTaskStore) ListByListID(ctx context.Context, listID uuid.UUID, listVersion int) ([]*domain.Task, error) {
	filter := bson.M{"list_id": listID.String()}
	if listVersion >= 0 {
		filter["list_version"] = listVersion
	}

	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("list_id", listID.String()))
		return nil, err
	}
	defer func() {
		if cErr := cursor.Close(ctx); cErr != nil {
			s.logger.Warn("failed to close cursor", slog.String("error", cErr.Error()))
		}
	}()

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		s.logger.Error("failed to decode tasks",
			slog.String("error", err.Error()),
			slog.String("list_id", listID.String()))
		return nil, err
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for i := range docs {
		task, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Update implements store.TaskStore.Update
func (s *MongoTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		s.logger.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	task.UpdatedAt = time.Now().UTC()

	result, err := s.coll.ReplaceOne(ctx, bson.M{"_id": task.ID.String()}, toTaskDocument(task))
	if err != nil {
		s.logger.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapWriteError(err, store.ErrUpdateFailed)
	}

	if err := CheckMatchedCount(result, store.ErrTaskNotFound); err != nil {
		s.logger.Debug("task not found during update", slog.String("task_id", task.ID.String()))
		return err
	}

	s.logger.Info("task updated", slog.String("task_id", task.ID.String()))
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *MongoTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		s.logger.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapWriteError(err, store.ErrDeleteFailed)
	}

	if err := CheckDeletedCount(result, store.ErrTaskNotFound); err != nil {
		s.logger.Debug("task not found during delete", slog.String("task_id", id.String()))
		return err
	}

	s.logger.Info("task deleted", slog.String("task_id", id.String()))
	return nil
}

// DeleteByListID implements store.TaskStore.DeleteByListID
func (s *MongoTaskStore) DeleteByListID(ctx context.Context, listID uuid.UUID) (int64, error) {
	result, err := s.coll.DeleteMany(ctx, bson.M{"list_id": listID.String()})
	if err != nil {
		s.logger.Error("failed to delete tasks for list",
			slog.String("error", err.Error()),
			slog.String("list_id", listID.String()))
		return 0, MapWriteError(err, store.ErrDeleteFailed)
	}

	s.logger.Info("tasks deleted for list",
		slog.String("list_id", listID.String()),
		slog.Int64("deleted", result.DeletedCount))
	return result.DeletedCount, nil
}
