package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/services"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAuthService_RegisterUser_HashesPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "secret")

	userRepo.On("GetByUsername", "alice").Return(nil, repositories.ErrUserNotFound).Once()
	userRepo.On("GetByEmail", "alice@example.com").Return(nil, repositories.ErrUserNotFound).Once()
	userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "password123"}
	err := service.RegisterUser(user)

	assert.NoError(t, err)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	userRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_DuplicateUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "secret")

	userRepo.On("GetByUsername", "alice").Return(&models.User{Username: "alice"}, nil).Once()

	err := service.RegisterUser(&models.User{Username: "alice", Email: "alice@example.com", Password: "password123"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_LoginAndValidateToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	stored := &models.User{ID: "user-1", Username: "alice", Password: string(hashed)}

	userRepo.On("GetByUsername", "alice").Return(stored, nil).Once()

	token, err := service.LoginUser("alice", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "alice", claims["username"])
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	userRepo.On("GetByUsername", "alice").Return(&models.User{Username: "alice", Password: string(hashed)}, nil).Once()

	_, err = service.LoginUser("alice", "wrong")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, "secret")

	_, err := service.ValidateToken("not-a-token")

	assert.Error(t, err)
}
