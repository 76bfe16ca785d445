// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"worldexplorer/internal/api"
	"worldexplorer/internal/feature/auth/domain/entity"
	"worldexplorer/internal/feature/auth/usecase"
	jwtmw "worldexplorer/internal/platform/jwt"
)

// Response messages. Unauthorized and internal messages stay generic on purpose.
const (
	msgInvalidBody       = "Invalid request body"
	msgEmailRegistered   = "Email already registered"
	msgInvalidCredential = "Invalid credentials"
	msgRegisterFailed    = "Server error during registration"
	msgLoginFailed       = "Server error during login"
	msgGetUserFailed     = "Server error getting user data"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、JWTトークンを返します。
	Register(ctx context.Context, name, email, password string) (string, error)
	// Login はユーザーを認証し、成功時にJWTトークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
	// CurrentUser はIDでユーザーを再取得します。
	CurrentUser(ctx context.Context, id string) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /users/register.
// - 入力不備は400、メール重複も400（"Email already registered"）
// - 成功時はトークン付きで201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		slog.Warn("register request malformed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msgInvalidBody})
		return
	}

	token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var ve *usecase.ValidationError
		switch {
		case errors.As(err, &ve):
			slog.Warn("register validation failed", "field", ve.Field, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: ve.Message})
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			slog.Warn("register with taken email", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msgEmailRegistered})
		default:
			slog.Error("register failed", "error", err, "email", req.Email)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: msgRegisterFailed})
		}
		return
	}

	slog.Info("user registered", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.TokenResponse{Success: true, Token: token})
}

// Login handles POST /users/login.
// - 認証失敗時はメールの存在有無にかかわらず同じ401を返却
// - 認証成功時はJWTトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		slog.Warn("login request malformed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msgInvalidBody})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var ve *usecase.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: ve.Message})
		case errors.Is(err, usecase.ErrInvalidCredentials):
			// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: msgInvalidCredential})
		default:
			slog.Error("login error", "error", err, "email", req.Email)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: msgLoginFailed})
		}
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Success: true, Token: token})
}

// Me handles GET /users/me. It must run behind jwtmw.AuthRequired.
func (h *AuthHandler) Me(c *gin.Context) {
	current, ok := jwtmw.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: jwtmw.UnauthorizedMessage})
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), current.ID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: jwtmw.UnauthorizedMessage})
			return
		}
		slog.Error("get current user failed", "error", err, "user_id", current.ID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: msgGetUserFailed})
		return
	}

	c.JSON(http.StatusOK, api.UserResponse{Success: true, Data: toAPIUser(user)})
}

// bindJSON decodes the body into req. An empty body leaves req zero-valued
// so the usecase reports which field is missing.
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func toAPIUser(u *entity.User) api.User {
	return api.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
