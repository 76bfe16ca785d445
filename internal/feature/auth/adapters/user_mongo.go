package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"worldexplorer/internal/feature/auth/domain/entity"
	"worldexplorer/internal/feature/auth/usecase"
)

// UsersCollection is the MongoDB collection holding user documents.
const UsersCollection = "users"

// userDocument is the BSON shape of a user in MongoDB.
type userDocument struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password,omitempty"`
	CreatedAt    time.Time `bson:"createdAt"`
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

func userDocumentFromEntity(u *entity.User) *userDocument {
	return &userDocument{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

// userMongo is a MongoDB implementation of the UserRepository interface.
type userMongo struct {
	coll *mongo.Collection
}

// Compile-time check to ensure userMongo implements UserRepository.
var _ usecase.UserRepository = (*userMongo)(nil)

// NewUserMongo creates a repository over the users collection of db.
func NewUserMongo(db *mongo.Database) *userMongo {
	return &userMongo{coll: db.Collection(UsersCollection)}
}

// EnsureIndexes creates the unique email index that backs email uniqueness.
// It is idempotent.
func (r *userMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

// Create inserts a new user document.
// A duplicate email surfaces as usecase.ErrEmailAlreadyExists.
func (r *userMongo) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errNilUser
	}
	if _, err := r.coll.InsertOne(ctx, userDocumentFromEntity(u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail returns the user including its password hash.
func (r *userMongo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByID returns the user without its password hash.
func (r *userMongo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"password": 0}))
}

func (r *userMongo) findOne(ctx context.Context, filter bson.M, opts ...options.Lister[options.FindOneOptions]) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}
