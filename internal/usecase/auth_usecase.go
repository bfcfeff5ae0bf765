package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/infrastructure/logging"
	"laboratorio_dental/internal/usecase/interfaces"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidPassword    = errors.New("password must have at least 8 characters")
	ErrInvalidRole        = errors.New("invalid role")
)

const minPasswordLength = 8

type CreateUserInput struct {
	Username string
	Password string
	Name     string
	Role     entities.Role
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      entities.User
}

type IAuthUseCase interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
	CreateUser(ctx context.Context, in CreateUserInput) (entities.User, error)
	EnsureAdmin(ctx context.Context, username, password, name string) (bool, error)
}

type AuthUseCase struct {
	users    interfaces.IUserRepository
	tokens   interfaces.ITokenIssuer
	hashCost int
	now      func() time.Time
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(users interfaces.IUserRepository, tokens interfaces.ITokenIssuer) *AuthUseCase {
	return &AuthUseCase{users: users, tokens: tokens, hashCost: bcrypt.DefaultCost, now: time.Now}
}

func (u *AuthUseCase) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	user, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, err
	}
	if user.Username == "" {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logging.FromContext(ctx).Info("login rejected", slog.String("username", username))
		return LoginResult{}, ErrInvalidCredentials
	}

	token, expiresAt, err := u.tokens.Issue(user)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (u *AuthUseCase) CreateUser(ctx context.Context, in CreateUserInput) (entities.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" || strings.ContainsAny(username, " \t") {
		return entities.User{}, ErrInvalidUsername
	}
	if len(in.Password) < minPasswordLength {
		return entities.User{}, ErrInvalidPassword
	}
	if !in.Role.Valid() {
		return entities.User{}, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.hashCost)
	if err != nil {
		return entities.User{}, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = username
	}
	created, err := u.users.Create(ctx, entities.User{
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    u.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrUsernameTaken) {
			return entities.User{}, ErrUsernameTaken
		}
		return entities.User{}, err
	}
	return created, nil
}

// EnsureAdmin creates the bootstrap admin when it does not exist yet.
// An empty password disables the bootstrap.
func (u *AuthUseCase) EnsureAdmin(ctx context.Context, username, password, name string) (bool, error) {
	if password == "" {
		return false, nil
	}
	existing, err := u.users.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return false, err
	}
	if existing.Username != "" {
		return false, nil
	}

	_, err = u.CreateUser(ctx, CreateUserInput{Username: username, Password: password, Name: name, Role: entities.RoleAdmin})
	if errors.Is(err, ErrUsernameTaken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	logging.FromContext(ctx).Info("admin user bootstrapped", slog.String("username", username))
	return true, nil
}
