package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-gin-mongo-shop/internal/core/auth"
	"go-gin-mongo-shop/internal/domain"
	"go-gin-mongo-shop/internal/repo"
	"go-gin-mongo-shop/pkg/utils"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetCart(ctx context.Context, userID, cartID string) error {
	return m.Called(ctx, userID, cartID).Error(0)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) Issue(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func newJWTer() *auth.JWTer {
	return &auth.JWTer{Secret: []byte("test-secret"), TTL: time.Hour}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores hashed password and verifiable token", func(t *testing.T) {
		store := repo.NewMemoryStore()
		jwter := newJWTer()
		svc := NewAuthService(store.Users, jwter)

		u, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Name: "Ann", Password: "pw1"})
		require.NoError(t, err)
		assert.Len(t, u.ID, 32)
		assert.Equal(t, domain.RoleUser, u.Role)
		assert.NotEqual(t, "pw1", u.PasswordHash)
		assert.True(t, utils.CheckPassword("pw1", u.PasswordHash))

		claims, err := jwter.Parse(u.Token)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", claims.Email)

		stored, err := store.Users.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, u.Token, stored.Token)
	})

	t.Run("second registration with same email is rejected", func(t *testing.T) {
		store := repo.NewMemoryStore()
		svc := NewAuthService(store.Users, newJWTer())

		_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Name: "Ann", Password: "pw1"})
		require.NoError(t, err)
		_, err = svc.Register(ctx, RegisterInput{Email: "a@x.com", Name: "Other", Password: "pw2"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("duplicate on insert maps to email taken", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, nil).Once()
		users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(domain.ErrDuplicateEmail).Once()
		svc := NewAuthService(users, newJWTer())

		_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Name: "Ann", Password: "pw1"})
		assert.ErrorIs(t, err, ErrEmailTaken)
		users.AssertExpectations(t)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		boom := errors.New("connection reset")
		users := new(MockUserRepository)
		users.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, boom).Once()
		svc := NewAuthService(users, newJWTer())

		_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Name: "Ann", Password: "pw1"})
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrEmailTaken)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("blank fields after trimming are rejected", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, newJWTer())
		for _, in := range []RegisterInput{
			{Email: "   ", Name: "Ann", Password: "pw1"},
			{Email: "a@x.com", Name: "\t ", Password: "pw1"},
			{Email: "a@x.com", Name: "Ann", Password: "  "},
		} {
			_, err := svc.Register(ctx, in)
			assert.ErrorIs(t, err, ErrMissingFields, "%+v", in)
		}
		users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("password over the hash limit", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, newJWTer())
		_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Name: "Ann", Password: strings.Repeat("x", utils.MaxPasswordBytes+1)})
		assert.ErrorIs(t, err, ErrPasswordTooLong)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("issuer failure creates nothing", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, nil).Once()
		tokens := new(MockTokenIssuer)
		tokens.On("Issue", "a@x.com").Return("", errors.New("no secret")).Once()
		svc := NewAuthService(users, tokens)

		_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Name: "Ann", Password: "pw1"})
		assert.Error(t, err)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		tokens.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	store := repo.NewMemoryStore()
	svc := NewAuthService(store.Users, newJWTer())

	registered, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Name: "Ann", Password: "pw1"})
	require.NoError(t, err)

	t.Run("returns the token minted at registration", func(t *testing.T) {
		u, err := svc.Login(ctx, "a@x.com", "pw1")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
		assert.Equal(t, registered.Token, u.Token)

		again, err := svc.Login(ctx, "a@x.com", "pw1")
		require.NoError(t, err)
		assert.Equal(t, u.Token, again.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@x.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email looks the same as wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@x.com", "pw1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("blank email or password", func(t *testing.T) {
		_, err := svc.Login(ctx, "   ", "pw1")
		assert.ErrorIs(t, err, ErrMissingFields)
		_, err = svc.Login(ctx, "a@x.com", " ")
		assert.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestIdentify(t *testing.T) {
	ctx := context.Background()
	store := repo.NewMemoryStore()
	svc := NewAuthService(store.Users, newJWTer())

	_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Name: "Ann", Password: "pw1"})
	require.NoError(t, err)

	u, err := svc.Identify(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)

	_, err = svc.Identify(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
