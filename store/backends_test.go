package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// persisterContract checks the behaviour every backend must share.
func persisterContract(t *testing.T, p Persister) {
	t.Helper()
	ctx := context.Background()
	key := fmt.Sprintf("test-%d", time.Now().UnixNano())

	_, err := p.Load(ctx, key)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, p.Save(ctx, key, []byte(`{"users":[]}`)))
	require.NoError(t, p.Save(ctx, key, []byte(`{"users":[{"id":1}]}`)))

	got, err := p.Load(ctx, key)
	require.NoError(t, err)
	require.JSONEq(t, `{"users":[{"id":1}]}`, string(got))
}

func TestMemoryPersister_Contract(t *testing.T) {
	persisterContract(t, NewMemoryPersister())
}

func TestFilePersister_Contract(t *testing.T) {
	persisterContract(t, NewFilePersister(t.TempDir()))
}

func TestMongoPersister_Contract(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	p := NewMongoPersister(client, "hostel_fest_test", "store_documents")
	persisterContract(t, p)
}

func TestPostgresPersister_Contract(t *testing.T) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	p, err := NewPostgresPersister(db)
	require.NoError(t, err)
	persisterContract(t, p)
}
