package dto

import (
	"github.com/matheusprado/erp-suplementos/internal/domain/fornecedor"
)

// FornecedorRequest representa a requisição de criação de fornecedor
type FornecedorRequest struct {
	Nome     string `json:"nome" binding:"required"`
	CNPJ     string `json:"cnpj"`
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
}

// FornecedorPatchRequest representa a requisição de edição parcial
type FornecedorPatchRequest struct {
	Nome     *string `json:"nome"`
	CNPJ     *string `json:"cnpj"`
	Telefone *string `json:"telefone"`
	Email    *string `json:"email"`
}

// ToPatch converte a requisição para o patch de domínio
func (r FornecedorPatchRequest) ToPatch() fornecedor.Patch {
	return fornecedor.Patch{
		Nome:     r.Nome,
		CNPJ:     r.CNPJ,
		Telefone: r.Telefone,
		Email:    r.Email,
	}
}

// FornecedorListResponse representa a resposta de lista de fornecedores
type FornecedorListResponse struct {
	Items []*fornecedor.Fornecedor `json:"items"`
	Page  int                      `json:"page"`
	Size  int                      `json:"size"`
}
