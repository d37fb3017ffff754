package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	Register(dto RegisterDTO) (*CurrentUser, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetCurrentUser(userID int64) (*CurrentUser, error)
}

type RepositoryAPI interface {
	GetByUsername(username string) (*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
	Create(u *userDatamodel.User) error
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID int64, role userDatamodel.Role) (string, error)
	GenerateRefreshToken(userID int64, role userDatamodel.Role) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// CurrentUser is the authenticated actor attached to every request context.
type CurrentUser struct {
	ID         int64              `json:"id"`
	Username   string             `json:"username"`
	Email      string             `json:"email"`
	Role       userDatamodel.Role `json:"role"`
	Department *string            `json:"department,omitempty"`
}

func (u *CurrentUser) IsAdmin() bool {
	return u.Role == userDatamodel.RoleAdmin
}

func (u *CurrentUser) IsIT() bool {
	return u.Role == userDatamodel.RoleIT
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	UserID int64              `json:"user_id"`
	Role   userDatamodel.Role `json:"role"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateUser      = errors.New("username or email already taken")
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

type ctxKey string

const contextUserKey ctxKey = "currentUser"

func UserToContext(ctx context.Context, u *CurrentUser) context.Context {
	return context.WithValue(ctx, contextUserKey, u)
}

func UserFromContext(ctx context.Context) (*CurrentUser, bool) {
	u, ok := ctx.Value(contextUserKey).(*CurrentUser)
	return u, ok
}
