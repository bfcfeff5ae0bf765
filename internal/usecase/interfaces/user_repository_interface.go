package interfaces

//go:generate mockgen -source=user_repository_interface.go -destination=mocks/user_repository_interface_mock.go -package=mock_interfaces

import (
	"context"
	"errors"

	"laboratorio_dental/internal/domain/entities"
)

var ErrUsernameTaken = errors.New("username already taken")

type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByUsername(ctx context.Context, username string) (entities.User, error)
}
