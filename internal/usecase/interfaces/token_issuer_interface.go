package interfaces

//go:generate mockgen -source=token_issuer_interface.go -destination=mocks/token_issuer_interface_mock.go -package=mock_interfaces

import (
	"time"

	"laboratorio_dental/internal/domain/entities"
)

// ITokenIssuer signs access tokens for authenticated users.
type ITokenIssuer interface {
	Issue(u entities.User) (token string, expiresAt time.Time, err error)
}
