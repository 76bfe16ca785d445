package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"worldexplorer/internal/feature/auth/domain/entity"
	"worldexplorer/internal/platform/password"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *entity.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc    func(ctx context.Context, id string) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil // Default: success
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

// mockJWTGenerator is a mock implementation of JWTGenerator interface.
type mockJWTGenerator struct {
	GenerateTokenFunc func(userID string) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(userID string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID)
	}
	return "mock-jwt-token", nil
}

// countingHasher wraps the bcrypt hasher and counts Hash/Compare calls.
type countingHasher struct {
	inner        *password.BcryptHasher
	hashCalls    int
	compareCalls int
	lastHash     string
}

func newCountingHasher() *countingHasher {
	return &countingHasher{inner: password.NewBcryptHasher(bcrypt.MinCost)}
}

func (h *countingHasher) Hash(pw string) (string, error) {
	h.hashCalls++
	return h.inner.Hash(pw)
}

func (h *countingHasher) Compare(hash, pw string) error {
	h.compareCalls++
	h.lastHash = hash
	return h.inner.Compare(hash, pw)
}

func TestAuthUsecase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("successful registration", func(t *testing.T) {
		var created *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(_ context.Context, user *entity.User) error {
				created = user
				return nil
			},
		}
		hasher := newCountingHasher()
		jwtGen := &mockJWTGenerator{
			GenerateTokenFunc: func(userID string) (string, error) {
				return "token-for-" + userID, nil
			},
		}

		uc := NewAuthUsecase(repo, hasher, jwtGen)
		uc.newID = func() string { return "user-1" }
		uc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

		token, err := uc.Register(ctx, "  A  ", "a@x.com", "secret1")

		require.NoError(t, err)
		assert.Equal(t, "token-for-user-1", token)
		require.NotNil(t, created)
		assert.Equal(t, "user-1", created.ID)
		assert.Equal(t, "A", created.Name)
		assert.Equal(t, "a@x.com", created.Email)
		assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), created.CreatedAt)
		assert.NotEqual(t, "secret1", created.PasswordHash, "password is not hashed")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret1")))
		assert.Equal(t, 1, hasher.hashCalls, "password must be hashed exactly once")
	})

	t.Run("72-byte password is accepted", func(t *testing.T) {
		hasher := newCountingHasher()
		uc := NewAuthUsecase(&mockUserRepository{}, hasher, &mockJWTGenerator{})

		token, err := uc.Register(ctx, "A", "a@x.com", strings.Repeat("p", 72))

		require.NoError(t, err)
		assert.Equal(t, "mock-jwt-token", token)
		assert.Equal(t, 1, hasher.hashCalls)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name     string
			user     [3]string
			field    string
			expected string
		}{
			{"missing name", [3]string{"", "a@x.com", "secret1"}, "name", "Please add a name"},
			{"blank name", [3]string{"   ", "a@x.com", "secret1"}, "name", "Please add a name"},
			{"missing email", [3]string{"A", "", "secret1"}, "email", "Please add an email"},
			{"malformed email", [3]string{"A", "not-an-email", "secret1"}, "email", "Please add a valid email"},
			{"long tld", [3]string{"A", "a@x.comcom", "secret1"}, "email", "Please add a valid email"},
			{"missing password", [3]string{"A", "a@x.com", ""}, "password", "Please add a password"},
			{"short password", [3]string{"A", "a@x.com", "12345"}, "password", "Password must be at least 6 characters"},
			{"short multi-byte password", [3]string{"A", "a@x.com", "ééé"}, "password", "Password must be at least 6 characters"},
			{"password over bcrypt limit", [3]string{"A", "a@x.com", strings.Repeat("p", 73)}, "password", "Password must be at most 72 bytes"},
			{"multi-byte password over bcrypt limit", [3]string{"A", "a@x.com", strings.Repeat("é", 37)}, "password", "Password must be at most 72 bytes"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := &mockUserRepository{
					FindByEmailFunc: func(context.Context, string) (*entity.User, error) {
						t.Fatal("repository must not be called on invalid input")
						return nil, nil
					},
				}
				uc := NewAuthUsecase(repo, newCountingHasher(), &mockJWTGenerator{})

				_, err := uc.Register(ctx, tt.user[0], tt.user[1], tt.user[2])

				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.field, ve.Field)
				assert.Equal(t, tt.expected, ve.Message)
			})
		}
	})

	t.Run("duplicate email found by lookup", func(t *testing.T) {
		hasher := newCountingHasher()
		repo := &mockUserRepository{
			FindByEmailFunc: func(context.Context, string) (*entity.User, error) {
				return &entity.User{ID: "existing", Email: "a@x.com"}, nil
			},
			CreateFunc: func(context.Context, *entity.User) error {
				t.Fatal("Create must not be called for a taken email")
				return nil
			},
		}
		uc := NewAuthUsecase(repo, hasher, &mockJWTGenerator{})

		_, err := uc.Register(ctx, "A", "a@x.com", "secret1")

		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
		assert.Zero(t, hasher.hashCalls)
	})

	t.Run("duplicate email reported by storage", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(context.Context, *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}
		uc := NewAuthUsecase(repo, newCountingHasher(), &mockJWTGenerator{})

		_, err := uc.Register(ctx, "A", "a@x.com", "secret1")

		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("lookup failure", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		repo := &mockUserRepository{
			FindByEmailFunc: func(context.Context, string) (*entity.User, error) {
				return nil, dbErr
			},
		}
		uc := NewAuthUsecase(repo, newCountingHasher(), &mockJWTGenerator{})

		_, err := uc.Register(ctx, "A", "a@x.com", "secret1")

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("repository create failure", func(t *testing.T) {
		dbErr := errors.New("database error")
		repo := &mockUserRepository{
			CreateFunc: func(context.Context, *entity.User) error {
				return dbErr
			},
		}
		uc := NewAuthUsecase(repo, newCountingHasher(), &mockJWTGenerator{})

		_, err := uc.Register(ctx, "A", "a@x.com", "secret1")

		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("JWT generation failure", func(t *testing.T) {
		jwtErr := errors.New("signing failed")
		uc := NewAuthUsecase(&mockUserRepository{}, newCountingHasher(), &mockJWTGenerator{
			GenerateTokenFunc: func(string) (string, error) { return "", jwtErr },
		})

		_, err := uc.Register(ctx, "A", "a@x.com", "secret1")

		assert.ErrorIs(t, err, jwtErr)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	testUser := &entity.User{
		ID:           "user-1",
		Name:         "A",
		Email:        "a@x.com",
		PasswordHash: string(hashedPassword),
	}
	repo := &mockUserRepository{
		FindByEmailFunc: func(_ context.Context, email string) (*entity.User, error) {
			if email == testUser.Email {
				return testUser, nil
			}
			return nil, ErrUserNotFound
		},
	}

	t.Run("successful login", func(t *testing.T) {
		jwtGen := &mockJWTGenerator{
			GenerateTokenFunc: func(userID string) (string, error) {
				assert.Equal(t, testUser.ID, userID)
				return "mock-jwt-token", nil
			},
		}
		uc := NewAuthUsecase(repo, newCountingHasher(), jwtGen)

		token, err := uc.Login(ctx, "a@x.com", "secret1")

		require.NoError(t, err)
		assert.Equal(t, "mock-jwt-token", token)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		wrongPwHasher := newCountingHasher()
		uc := NewAuthUsecase(repo, wrongPwHasher, &mockJWTGenerator{})
		_, wrongPwErr := uc.Login(ctx, "a@x.com", "wrong")

		unknownHasher := newCountingHasher()
		uc = NewAuthUsecase(repo, unknownHasher, &mockJWTGenerator{})
		_, unknownErr := uc.Login(ctx, "nobody@x.com", "secret1")

		assert.ErrorIs(t, wrongPwErr, ErrInvalidCredentials)
		assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
		assert.Equal(t, wrongPwErr.Error(), unknownErr.Error())

		// Both paths run one bcrypt comparison.
		assert.Equal(t, 1, wrongPwHasher.compareCalls)
		assert.Equal(t, 1, unknownHasher.compareCalls)
		assert.Equal(t, dummyPasswordHash, unknownHasher.lastHash)
	})

	t.Run("missing fields", func(t *testing.T) {
		uc := NewAuthUsecase(repo, newCountingHasher(), &mockJWTGenerator{})

		for _, in := range [][2]string{{"", "secret1"}, {"a@x.com", ""}, {"", ""}} {
			_, err := uc.Login(ctx, in[0], in[1])

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "Please provide email and password", ve.Message)
		}
	})

	t.Run("storage failure is not reported as bad credentials", func(t *testing.T) {
		dbErr := errors.New("timeout")
		failing := &mockUserRepository{
			FindByEmailFunc: func(context.Context, string) (*entity.User, error) { return nil, dbErr },
		}
		uc := NewAuthUsecase(failing, newCountingHasher(), &mockJWTGenerator{})

		_, err := uc.Login(ctx, "a@x.com", "secret1")

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("JWT generation failure", func(t *testing.T) {
		jwtErr := errors.New("signing failed")
		uc := NewAuthUsecase(repo, newCountingHasher(), &mockJWTGenerator{
			GenerateTokenFunc: func(string) (string, error) { return "", jwtErr },
		})

		_, err := uc.Login(ctx, "a@x.com", "secret1")

		assert.ErrorIs(t, err, jwtErr)
	})
}

func TestAuthUsecase_CurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByIDFunc: func(_ context.Context, id string) (*entity.User, error) {
				return &entity.User{ID: id, Name: "A", Email: "a@x.com"}, nil
			},
		}
		uc := NewAuthUsecase(repo, newCountingHasher(), &mockJWTGenerator{})

		user, err := uc.CurrentUser(ctx, "user-1")

		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
	})

	t.Run("not found", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, newCountingHasher(), &mockJWTGenerator{})

		user, err := uc.CurrentUser(ctx, "gone")

		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Nil(t, user)
	})

	t.Run("storage failure", func(t *testing.T) {
		dbErr := errors.New("boom")
		repo := &mockUserRepository{
			FindByIDFunc: func(context.Context, string) (*entity.User, error) { return nil, dbErr },
		}
		uc := NewAuthUsecase(repo, newCountingHasher(), &mockJWTGenerator{})

		_, err := uc.CurrentUser(ctx, "user-1")

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrUserNotFound)
	})
}
