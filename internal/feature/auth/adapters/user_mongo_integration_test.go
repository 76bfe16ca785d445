//go:build integration

package adapters

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"worldexplorer/internal/feature/auth/usecase"
)

var mongoURI string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tcmongo.Run(ctx, "mongo:7")
	if err != nil {
		panic(err)
	}
	mongoURI, err = container.ConnectionString(ctx)
	if err != nil {
		panic(err)
	}

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func setupMongoRepo(t *testing.T) *userMongo {
	t.Helper()

	client, err := mongo.Connect(options.Client().ApplyURI(mongoURI))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("worldexplorer_" + t.Name())
	t.Cleanup(func() { _ = db.Drop(context.Background()) })

	repo := NewUserMongo(db)
	require.NoError(t, repo.EnsureIndexes(context.Background()))
	return repo
}

func TestUserMongo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := setupMongoRepo(t)

	user := newTestUser("u-1", "a@x.com")
	require.NoError(t, repo.Create(ctx, user))

	byEmail, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", byEmail.ID)
	assert.Equal(t, user.PasswordHash, byEmail.PasswordHash, "login path must see the hash")

	byID, err := repo.FindByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)
	assert.Empty(t, byID.PasswordHash, "read path must not load the hash")

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)

	_, err = repo.FindByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}

func TestUserMongo_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := setupMongoRepo(t)

	require.NoError(t, repo.Create(ctx, newTestUser("u-1", "dup@x.com")))

	err := repo.Create(ctx, newTestUser("u-2", "dup@x.com"))

	assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
}

func TestUserMongo_EnsureIndexesIdempotent(t *testing.T) {
	repo := setupMongoRepo(t)

	assert.NoError(t, repo.EnsureIndexes(context.Background()))
}
