package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/divyanshus2404/Unimarket/internal/domain"
	"github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func newUserUsecaseForTest(t *testing.T) (*UserUsecase, *MockUserRepository) {
	t.Helper()
	repo := new(MockUserRepository)
	uc := NewUserUsecase(repo, testJWTSecret, time.Hour, logger.NewNop())
	return uc, repo
}

func TestUserUsecase_Register_Success(t *testing.T) {
	uc, repo := newUserUsecaseForTest(t)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "student@uni.edu" && u.IsActive &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2hunter2")) == nil
	})).Return(nil).Once()

	user, err := uc.Register(context.Background(), RegisterInput{
		Email:        "student@uni.edu",
		FullName:     "Test Student",
		Password:     "hunter2hunter2",
		UniversityID: "uni-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "student@uni.edu", user.Email)
	repo.AssertExpectations(t)
}

func TestUserUsecase_Register_ShortPassword(t *testing.T) {
	uc, repo := newUserUsecaseForTest(t)

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "student@uni.edu",
		FullName: "Test Student",
		Password: "short",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserUsecase_Register_DuplicateEmail(t *testing.T) {
	uc, repo := newUserUsecaseForTest(t)

	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrAlreadyExists).Once()

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "student@uni.edu",
		FullName: "Test Student",
		Password: "hunter2hunter2",
	})

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestUserUsecase_Login_Success(t *testing.T) {
	uc, repo := newUserUsecaseForTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	assert.NoError(t, err)
	user := &domain.User{ID: "user-1", Email: "student@uni.edu", PasswordHash: string(hash), IsActive: true}

	repo.On("FindByEmail", mock.Anything, "student@uni.edu").Return(user, nil).Once()

	token, got, err := uc.Login(context.Background(), "student@uni.edu", "hunter2hunter2")

	assert.NoError(t, err)
	assert.Equal(t, "user-1", got.ID)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "user-1", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestUserUsecase_Login_WrongPassword(t *testing.T) {
	uc, repo := newUserUsecaseForTest(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	user := &domain.User{ID: "user-1", Email: "student@uni.edu", PasswordHash: string(hash), IsActive: true}
	repo.On("FindByEmail", mock.Anything, "student@uni.edu").Return(user, nil).Once()

	_, _, err := uc.Login(context.Background(), "student@uni.edu", "wrong-password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserUsecase_Login_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	uc, repo := newUserUsecaseForTest(t)

	repo.On("FindByEmail", mock.Anything, "nobody@uni.edu").Return(nil, domain.ErrNotFound).Once()

	_, _, err := uc.Login(context.Background(), "nobody@uni.edu", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserUsecase_Login_DeactivatedAccount(t *testing.T) {
	uc, repo := newUserUsecaseForTest(t)

	user := &domain.User{ID: "user-1", Email: "student@uni.edu", PasswordHash: "x", IsActive: false}
	repo.On("FindByEmail", mock.Anything, "student@uni.edu").Return(user, nil).Once()

	_, _, err := uc.Login(context.Background(), "student@uni.edu", "hunter2hunter2")

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserUsecase_UpdateProfile_OnlyNonEmptyFields(t *testing.T) {
	uc, repo := newUserUsecaseForTest(t)

	user := &domain.User{ID: "user-1", Email: "student@uni.edu", FullName: "Old Name", UniversityID: "uni-1", IsActive: true}
	repo.On("FindByID", mock.Anything, "user-1").Return(user, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.FullName == "New Name" && u.UniversityID == "uni-1"
	})).Return(nil).Once()

	updated, err := uc.UpdateProfile(context.Background(), "user-1", "New Name", "", "", "")

	assert.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)
	assert.Equal(t, "uni-1", updated.UniversityID)
	repo.AssertExpectations(t)
}
