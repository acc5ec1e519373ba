package service

import (
	"GiftHunt/internal/model"
	"GiftHunt/internal/repo"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateFullName(ctx context.Context, id int64, fullName *string) error {
	return m.Called(ctx, id, fullName).Error(0)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m)

	t.Run("ok when email free", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "john@x.com").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
		created := &model.User{ID: 10, Email: "john@x.com"}
		m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "john@x.com" && u.Password != "" && u.Password != "p@ss" &&
				u.FullName != nil && *u.FullName == "John"
		})).Return(created, nil).Once()

		user, err := svc.Register(ctx, "  John@X.com ", "p@ss", " John ")
		assert.NoError(t, err)
		assert.Equal(t, int64(10), user.ID)
		m.AssertExpectations(t)
	})

	t.Run("conflict when email taken", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "john@x.com").Return(&model.User{ID: 1, Email: "john@x.com"}, nil).Once()

		user, err := svc.Register(ctx, "john@x.com", "p@ss", "")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrLoginTaken)
		m.AssertExpectations(t)
	})

	t.Run("conflict on concurrent insert", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "john@x.com").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
		m.On("CreateUser", mock.Anything, mock.Anything).Return((*model.User)(nil), repo.ErrDuplicate).Once()

		_, err := svc.Register(ctx, "john@x.com", "p@ss", "")
		assert.ErrorIs(t, err, ErrLoginTaken)
		m.AssertExpectations(t)
	})

	t.Run("invalid input", func(t *testing.T) {
		m.ExpectedCalls = nil
		_, err := svc.Register(ctx, "not-an-email", "p@ss", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = svc.Register(ctx, "john@x.com", "", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
		m.AssertExpectations(t)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m)

	// готовим хеш для пароля "secret"
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)

	t.Run("ok with valid credentials", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "alice@x.com").Return(&model.User{ID: 2, Email: "alice@x.com", Password: string(hash)}, nil).Once()

		user, err := svc.Login(ctx, "Alice@x.com", "secret")
		assert.NoError(t, err)
		assert.Equal(t, int64(2), user.ID)
		m.AssertExpectations(t)
	})

	t.Run("invalid password", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "alice@x.com").Return(&model.User{ID: 2, Email: "alice@x.com", Password: string(hash)}, nil).Once()

		user, err := svc.Login(ctx, "alice@x.com", "wrong")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.ErrorIs(t, err, ErrUnauthorized)
		m.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "bob@x.com").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()

		_, err := svc.Login(ctx, "bob@x.com", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		m.AssertExpectations(t)
	})
}

func TestUserService_Profile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	id := e.register(t, "ann@x.com")

	p, err := e.users.Profile(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "ann@x.com", p.Email)
	assert.Nil(t, p.FullName)

	p, err = e.users.UpdateProfile(ctx, id, "  Ann  ")
	assert.NoError(t, err)
	if assert.NotNil(t, p.FullName) {
		assert.Equal(t, "Ann", *p.FullName)
	}

	// пустое имя очищает поле
	p, err = e.users.UpdateProfile(ctx, id, "")
	assert.NoError(t, err)
	assert.Nil(t, p.FullName)

	_, err = e.users.Profile(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
