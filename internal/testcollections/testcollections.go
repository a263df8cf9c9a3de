// Package testcollections manufactures uniquely named, ephemeral MongoDB
// collections for integration tests. Every collection name carries the
// "test-" prefix plus a timestamp and random suffix, so concurrent test
// runs never collide and cleanup can target test collections without ever
// touching production data.
package testcollections

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/listkeep/listkeep-api/internal/ciutil"
	"github.com/listkeep/listkeep-api/internal/platform/mongodb"
	"github.com/listkeep/listkeep-api/internal/service"
	"github.com/listkeep/listkeep-api/internal/service/auth"
)

// Prefix marks every collection this package creates. Cleanup drops only
// collections carrying it.
const Prefix = "test-"

// dropTimeout bounds each collection drop during cleanup.
const dropTimeout = 10 * time.Second

// Name returns a fresh collection name of the form
// test-<base>-<unix nanoseconds>-<6 random digits>. Two calls in the same
// nanosecond still differ through the random suffix.
func Name(base string) string {
	suffix, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		// The random source failing is not worth handling gracefully in
		// test infrastructure.
		panic(fmt.Sprintf("testcollections: random suffix: %v", err))
	}
	return fmt.Sprintf("%s%s-%d-%06d", Prefix, base, time.Now().UTC().UnixNano(), suffix.Int64())
}

// New returns a handle to a freshly named test collection and registers a
// cleanup that drops it when the test finishes.
func New(t *testing.T, db *mongo.Database, base string) *mongo.Collection {
	t.Helper()

	coll := db.Collection(Name(base))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), dropTimeout)
		defer cancel()
		if err := coll.Drop(ctx); err != nil {
			t.Logf("failed to drop test collection %s: %v", coll.Name(), err)
		}
	})
	return coll
}

// NewUserService constructs a UserService wired to fresh test collections,
// with unique indexes in place, so the test never touches production data.
func NewUserService(t *testing.T, db *mongo.Database) service.UserService {
	t.Helper()

	users, lists, tasks := newStoreSet(t, db)
	hasher := auth.NewBcryptHasher()
	return service.NewUserService(users, lists, tasks, hasher, hasher, nil)
}

// NewListService constructs a ListService wired to fresh test collections.
func NewListService(t *testing.T, db *mongo.Database) service.ListService {
	t.Helper()

	users, lists, tasks := newStoreSet(t, db)
	return service.NewListService(lists, users, tasks, nil)
}

// NewTaskService constructs a TaskService (and its backing ListService)
// wired to fresh test collections.
func NewTaskService(t *testing.T, db *mongo.Database) (service.TaskService, service.ListService, service.UserService) {
	t.Helper()

	users, lists, tasks := newStoreSet(t, db)
	hasher := auth.NewBcryptHasher()
	userSvc := service.NewUserService(users, lists, tasks, hasher, hasher, nil)
	listSvc := service.NewListService(lists, users, tasks, nil)
	return service.NewTaskService(tasks, listSvc, nil), listSvc, userSvc
}

func newStoreSet(t *testing.T, db *mongo.Database) (*mongodb.MongoUserStore, *mongodb.MongoListStore, *mongodb.MongoTaskStore) {
	t.Helper()

	userColl := New(t, db, "users")
	ctx, cancel := context.WithTimeout(context.Background(), dropTimeout)
	defer cancel()
	if err := mongodb.EnsureUserIndexes(ctx, userColl); err != nil {
		t.Fatalf("failed to create user indexes on %s: %v", userColl.Name(), err)
	}

	return mongodb.NewMongoUserStore(userColl, nil),
		mongodb.NewMongoListStore(New(t, db, "lists"), nil),
		mongodb.NewMongoTaskStore(New(t, db, "tasks"), nil)
}

// ConnectForTest returns a handle to the integration-test database named by
// MONGODB_URI and MONGODB_TEST_DB (default "listkeep_test"). Tests that call
// it are skipped when MONGODB_URI is not set, so the suite stays runnable
// without a database. In CI a missing MONGODB_URI fails the test instead,
// because there it means the pipeline forgot to start the database.
func ConnectForTest(t *testing.T) *mongo.Database {
	t.Helper()

	uri := ciutil.TestMongoURI()
	if uri == "" {
		if ciutil.IsCI() {
			t.Fatalf("%s not set in CI, integration tests require a database", ciutil.EnvMongoURI)
		}
		t.Skipf("%s not set, skipping integration test", ciutil.EnvMongoURI)
	}

	dbName := ciutil.TestMongoDB()

	ctx, cancel := context.WithTimeout(context.Background(), dropTimeout)
	defer cancel()

	client, err := mongodb.Connect(ctx, uri, dbName, nil)
	if err != nil {
		t.Fatalf("failed to connect to mongodb: %v", err)
	}
	t.Cleanup(func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), dropTimeout)
		defer closeCancel()
		if err := client.Close(closeCtx); err != nil {
			t.Logf("failed to close mongodb client: %v", err)
		}
	})

	return client.Database()
}

// Cleanup drops every collection in the database whose name carries the
// test prefix. It is idempotent and leaves all other collections untouched.
// Intended for suite teardown, catching collections that individual test
// cleanups missed.
func Cleanup(ctx context.Context, db *mongo.Database) error {
	names, err := db.ListCollectionNames(ctx, map[string]any{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, name := range names {
		if !strings.HasPrefix(name, Prefix) {
			continue
		}
		if err := db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("failed to drop %s: %w", name, err)
		}
	}
	return nil
}
