package auth

import (
	"context"
	"testing"

	"motofix/internal/domain"
	"motofix/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockProfileCreator struct {
	mock.Mock
}

func (m *MockProfileCreator) CreateProfile(ctx context.Context, p *domain.MechanicProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func TestRegister_MechanicGetsProfile(t *testing.T) {
	users := new(MockUserRepository)
	profiles := new(MockProfileCreator)
	tokens := new(MockTokenIssuer)
	svc := NewService(users, profiles, tokens)

	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	var created *domain.MechanicProfile
	profiles.On("CreateProfile", mock.Anything, mock.AnythingOfType("*domain.MechanicProfile")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.MechanicProfile) }).
		Return(nil)
	tokens.On("GenerateToken", int64(1), "mechanic").Return("tok", nil)

	u, token, err := svc.Register(context.Background(), RegisterRequest{
		Email:          "Mech@Example.com",
		Password:       "password123",
		Name:           "Mech",
		Role:           "mechanic",
		Specialization: "engine",
	})

	assert.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, "mech@example.com", u.Email)
	assert.Equal(t, domain.SpecEngine, created.Specialization)
	// new mechanics opt in to dispatch explicitly
	assert.False(t, created.IsAvailable)
}

func TestRegister_CustomerSkipsProfile(t *testing.T) {
	users := new(MockUserRepository)
	profiles := new(MockProfileCreator)
	tokens := new(MockTokenIssuer)
	svc := NewService(users, profiles, tokens)

	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	tokens.On("GenerateToken", int64(1), "customer").Return("tok", nil)

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "c@example.com",
		Password: "password123",
		Name:     "C",
		Role:     "customer",
	})

	assert.NoError(t, err)
	profiles.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything)
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	svc := NewService(new(MockUserRepository), new(MockProfileCreator), new(MockTokenIssuer))

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Email: "a@example.com", Password: "password123", Name: "A", Role: "admin",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockProfileCreator), new(MockTokenIssuer))

	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return(repository.ErrDuplicate)

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Email: "c@example.com", Password: "password123", Name: "C", Role: "customer",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &domain.User{ID: 1, Email: "c@example.com", PasswordHash: string(hash), Role: domain.RoleCustomer}

	t.Run("success", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenIssuer)
		svc := NewService(users, new(MockProfileCreator), tokens)

		users.On("GetByEmail", mock.Anything, "c@example.com").Return(user, nil)
		tokens.On("GenerateToken", int64(1), "customer").Return("tok", nil)

		_, token, err := svc.Login(context.Background(), LoginRequest{Email: "c@example.com", Password: "password123"})
		assert.NoError(t, err)
		assert.Equal(t, "tok", token)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewService(users, new(MockProfileCreator), new(MockTokenIssuer))

		users.On("GetByEmail", mock.Anything, "c@example.com").Return(user, nil)

		_, _, err := svc.Login(context.Background(), LoginRequest{Email: "c@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewService(users, new(MockProfileCreator), new(MockTokenIssuer))

		users.On("GetByEmail", mock.Anything, "x@example.com").Return(nil, repository.ErrNotFound)

		_, _, err := svc.Login(context.Background(), LoginRequest{Email: "x@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
