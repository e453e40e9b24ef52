package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"ice.edu/helpinghand/internal/entity"
	"ice.edu/helpinghand/internal/modules/user/dto"
	repository "ice.edu/helpinghand/internal/modules/user/repository"
	"ice.edu/helpinghand/pkg/apperror"
	"ice.edu/helpinghand/pkg/ratelimiter"
)

// Seeder is the bootstrap hook invoked on every login attempt so a fresh
// deployment always has a default admin to sign in with.
type Seeder interface {
	EnsureDefaults(ctx context.Context) (bool, error)
}

type UserService interface {
	Login(ctx context.Context, input dto.LoginRequest) (*dto.UserResponse, string, error)
	ResolveSession(ctx context.Context, token string) *dto.UserResponse
	CreateUser(ctx context.Context, input dto.CreateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]*dto.UserResponse, error)
	DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error
	Seed(ctx context.Context) (bool, error)
}

type userService struct {
	repo        repository.UserRepository
	seeder      Seeder
	redisClient *redis.Client
	secret      string
	tokenTTL    time.Duration
	loginWindow time.Duration
}

func NewUserService(repo repository.UserRepository, seeder Seeder, redisClient *redis.Client, secret string, tokenTTL, loginWindow time.Duration) UserService {
	return &userService{
		repo:        repo,
		seeder:      seeder,
		redisClient: redisClient,
		secret:      secret,
		tokenTTL:    tokenTTL,
		loginWindow: loginWindow,
	}
}

func (s *userService) Login(ctx context.Context, input dto.LoginRequest) (*dto.UserResponse, string, error) {
	email := strings.ToLower(input.Email)

	allowed, err := ratelimiter.CheckAndSet(ctx, s.redisClient, email, "login", s.loginWindow)
	if err != nil {
		return nil, "", err
	}
	if !allowed {
		ttl, _ := ratelimiter.TTL(ctx, s.redisClient, email, "login")
		return nil, "", &ratelimiter.RateLimitError{
			Message:    "too many login attempts, try again shortly",
			RetryAfter: ttl,
		}
	}

	// Auto-seed the default admin on a fresh database.
	if _, err := s.seeder.EnsureDefaults(ctx); err != nil {
		return nil, "", err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperror.New(http.StatusUnauthorized, "invalid email or password", apperror.ErrUnauthenticated)
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, "", apperror.New(http.StatusUnauthorized, "invalid email or password", apperror.ErrUnauthenticated)
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	_ = ratelimiter.Clear(ctx, s.redisClient, email, "login")

	return dto.NewUserResponse(user), token, nil
}

// ResolveSession maps a session token to the owning user. Any failure
// (missing token, bad signature, expired, unknown user) resolves to
// anonymous, i.e. nil.
func (s *userService) ResolveSession(ctx context.Context, token string) *dto.UserResponse {
	if token == "" {
		return nil
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil
	}

	return dto.NewUserResponse(user)
}

func (s *userService) CreateUser(ctx context.Context, input dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperror.New(http.StatusBadRequest, "email already in use", apperror.ErrBadRequest)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:    input.Email,
		Password: string(hashed),
		Name:     input.Name,
		Role:     input.Role,
		Avatar:   input.Avatar,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.NewUserResponse(u))
	}
	return responses, nil
}

func (s *userService) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return apperror.New(http.StatusBadRequest, "cannot delete your own account", apperror.ErrBadRequest)
	}

	if _, err := s.repo.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	return s.repo.Delete(ctx, targetID)
}

func (s *userService) Seed(ctx context.Context) (bool, error) {
	return s.seeder.EnsureDefaults(ctx)
}

func (s *userService) signToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}
