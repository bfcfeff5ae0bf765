package request

import (
	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/usecase"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
	Role     string `json:"role" binding:"required,oneof=admin operador"`
}

func (r CreateUserRequest) ToInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Username: r.Username,
		Password: r.Password,
		Name:     r.Name,
		Role:     entities.Role(r.Role),
	}
}
