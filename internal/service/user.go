package service

import (
	"GiftHunt/internal/model"
	"GiftHunt/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const maxNameLen = 100

// UserService — регистрация, вход и профиль пользователя.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// Profile — публичное представление пользователя.
type Profile struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

func profileOf(u *model.User) *Profile {
	return &Profile{ID: u.ID, Email: u.Email, FullName: u.FullName, CreatedAt: u.CreatedAt}
}

// Register создаёт пользователя. Для занятого email вернёт ErrLoginTaken.
func (s *UserService) Register(ctx context.Context, email, password, fullName string) (*model.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, invalidInput("password is required")
	}
	name, err := cleanName(fullName)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetUserByLogin(ctx, email)
	if err != nil && !repo.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrLoginTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Email: email, Password: string(hash), FullName: name}
	created, err := s.repo.CreateUser(ctx, user)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrLoginTaken
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login проверяет пароль. Неизвестный email и неверный пароль неразличимы.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.GetUserByLogin(ctx, email)
	if err != nil && !repo.IsNotFound(err) {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Profile возвращает профиль текущего пользователя.
func (s *UserService) Profile(ctx context.Context, userID int64) (*Profile, error) {
	u, err := s.repo.GetUserByID(ctx, userID)
	if repo.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return profileOf(u), nil
}

// UpdateProfile меняет отображаемое имя. Пустая строка очищает имя.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, fullName string) (*Profile, error) {
	name, err := cleanName(fullName)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateFullName(ctx, userID, name); err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Profile(ctx, userID)
}

func cleanName(raw string) (*string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return nil, invalidInput("name is too long")
	}
	return &name, nil
}
