package dto

import (
	"github.com/matheusprado/erp-suplementos/internal/domain/usuario"
)

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

// LoginResponse representa a resposta do login
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}

// RefreshTokenRequest representa a requisição de renovação de token
type RefreshTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// UsuarioRequest representa a requisição de cadastro de usuário
type UsuarioRequest struct {
	Nome   string `json:"nome" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Senha  string `json:"senha" binding:"required,min=6"`
	Perfil string `json:"perfil" binding:"required,oneof=ADMIN OPERADOR"`
}

// UsuarioResponse representa a resposta de usuário, sem o hash de senha
type UsuarioResponse struct {
	ID     string `json:"id"`
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	Perfil string `json:"perfil"`
	Ativo  bool   `json:"ativo"`
}

// ToUsuarioResponse converte o usuário de domínio para a resposta
func ToUsuarioResponse(u *usuario.Usuario) UsuarioResponse {
	return UsuarioResponse{
		ID:     u.ID,
		Nome:   u.Nome,
		Email:  u.Email,
		Perfil: string(u.Perfil),
		Ativo:  u.Ativo,
	}
}
