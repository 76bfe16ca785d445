// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"worldexplorer/internal/feature/auth/domain/entity"
)

// dummyPasswordHash is compared against when the email is unknown so that
// Login spends the same bcrypt time whether or not the account exists.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーをパスワードハッシュ付きで取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// PasswordHasher hashes plaintext passwords and verifies them against stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil only when password matches hash.
	Compare(hash, password string) error
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーIDの署名済みJWTトークンを生成します。
	GenerateToken(userID string) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	hasher       PasswordHasher
	jwtGenerator JWTGenerator
	now          func() time.Time
	newID        func() string
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		hasher:       hasher,
		jwtGenerator: jwtGenerator,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// Register validates the input, hashes the password once, persists the new
// user and returns a signed token for it.
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (string, error) {
	if err := validateRegistration(name, email, password); err != nil {
		return "", err
	}

	// The unique index is the real guard; this lookup gives the common case a clean error.
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return "", ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:           u.newID(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    u.now().UTC(),
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return "", ErrEmailAlreadyExists
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	if err := validateLogin(email, password); err != nil {
		return "", err
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	passwordHash := dummyPasswordHash
	if user != nil {
		passwordHash = user.PasswordHash
	}
	compareErr := u.hasher.Compare(passwordHash, password)

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if user == nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// CurrentUser re-reads the user behind an authenticated request.
// It returns ErrUserNotFound when the account no longer exists.
func (u *authUsecase) CurrentUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user %s: %w", id, err)
	}
	return user, nil
}
