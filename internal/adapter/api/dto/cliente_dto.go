package dto

import (
	"github.com/matheusprado/erp-suplementos/internal/domain/cliente"
)

// ClienteRequest representa a requisição de criação de cliente
type ClienteRequest struct {
	Nome       string `json:"nome" binding:"required"`
	CPF        string `json:"cpf"`
	Telefone   string `json:"telefone"`
	Email      string `json:"email"`
	Endereco   string `json:"endereco"`
	Observacao string `json:"observacao"`
}

// ClientePatchRequest representa a requisição de edição parcial de cliente
type ClientePatchRequest struct {
	Nome       *string `json:"nome"`
	CPF        *string `json:"cpf"`
	Telefone   *string `json:"telefone"`
	Email      *string `json:"email"`
	Endereco   *string `json:"endereco"`
	Observacao *string `json:"observacao"`
}

// ToPatch converte a requisição para o patch de domínio
func (r ClientePatchRequest) ToPatch() cliente.Patch {
	return cliente.Patch{
		Nome:       r.Nome,
		CPF:        r.CPF,
		Telefone:   r.Telefone,
		Email:      r.Email,
		Endereco:   r.Endereco,
		Observacao: r.Observacao,
	}
}

// AjusteCreditoRequest representa um movimento manual no razão de crédito
type AjusteCreditoRequest struct {
	Tipo      string  `json:"tipo" binding:"required,oneof=ENTRADA SAIDA"`
	Valor     float64 `json:"valor" binding:"required,gt=0"`
	Descricao string  `json:"descricao"`
}

// ClienteListResponse representa a resposta de lista de clientes
type ClienteListResponse struct {
	Items []*cliente.Cliente `json:"items"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
}
