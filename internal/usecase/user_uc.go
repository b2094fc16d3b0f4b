package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/divyanshus2404/Unimarket/internal/domain"
	"github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned on a failed login. It deliberately
	// does not distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Claims is the JWT payload issued on login and checked by the HTTP
// middleware.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// UserUsecase implements registration, login and profile management.
type UserUsecase struct {
	repo      domain.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    *logger.Logger
}

// NewUserUsecase creates a new UserUsecase.
func NewUserUsecase(repo domain.UserRepository, jwtSecret string, tokenTTL time.Duration, log *logger.Logger) *UserUsecase {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &UserUsecase{
		repo:      repo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    log.Named("UserUsecase"),
	}
}

// RegisterInput holds the sign-up fields.
type RegisterInput struct {
	Email          string
	FullName       string
	Password       string
	UniversityID   string
	UniversityName string
}

// Register creates an account with a bcrypt-hashed password.
func (uc *UserUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	uc.logger.Info("Registering user", zap.String("email", input.Email))

	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(input.Email, input.FullName, string(hash), input.UniversityID, input.UniversityName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := uc.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, err
		}
		uc.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("%w: failed to create user: %v", domain.ErrRepository, err)
	}

	uc.logger.Info("User registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login checks credentials and returns a signed JWT plus the account.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	if !user.IsActive {
		return "", nil, domain.ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := &Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(uc.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	uc.logger.Info("User logged in", zap.String("user_id", user.ID))
	return token, user, nil
}

// GetProfile returns an active account by id.
func (uc *UserUsecase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

// UpdateProfile changes the editable profile fields.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, userID, fullName, universityID, universityName, profileImage string) (*domain.User, error) {
	user, err := uc.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if fullName != "" {
		user.FullName = fullName
	}
	if universityID != "" {
		user.UniversityID = universityID
	}
	if universityName != "" {
		user.UniversityName = universityName
	}
	if profileImage != "" {
		user.ProfileImage = profileImage
	}
	user.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, user); err != nil {
		uc.logger.Error("Failed to update profile", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	return user, nil
}
