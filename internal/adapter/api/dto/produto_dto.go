package dto

import (
	"github.com/matheusprado/erp-suplementos/internal/domain/produto"
	usecase "github.com/matheusprado/erp-suplementos/internal/usecase/produto"
)

// ComponenteKitRequest representa um componente na criação de um kit
type ComponenteKitRequest struct {
	ProdutoID       string  `json:"produto_id" binding:"required"`
	Quantidade      int     `json:"quantidade" binding:"required,min=1"`
	PrecoComponente float64 `json:"preco_componente"`
}

// ProdutoRequest representa a requisição de criação de produto
type ProdutoRequest struct {
	Nome          string                 `json:"nome" binding:"required"`
	CategoriaID   *string                `json:"categoria_id"`
	FabricanteID  *string                `json:"fabricante_id"`
	PrecoVenda    float64                `json:"preco_venda"`
	EhKit         bool                   `json:"eh_kit"`
	EstoqueMinimo int                    `json:"estoque_minimo"`
	Componentes   []ComponenteKitRequest `json:"componentes"`
}

// ToCriarProdutoInput converte a requisição para a entrada do caso de uso
func (r ProdutoRequest) ToCriarProdutoInput() usecase.CriarProdutoInput {
	input := usecase.CriarProdutoInput{
		Nome:          r.Nome,
		CategoriaID:   r.CategoriaID,
		FabricanteID:  r.FabricanteID,
		PrecoVenda:    r.PrecoVenda,
		EhKit:         r.EhKit,
		EstoqueMinimo: r.EstoqueMinimo,
	}
	for _, c := range r.Componentes {
		input.Componentes = append(input.Componentes, usecase.ComponenteInput{
			ProdutoID:       c.ProdutoID,
			Quantidade:      c.Quantidade,
			PrecoComponente: c.PrecoComponente,
		})
	}
	return input
}

// ProdutoPatchRequest representa a requisição de edição parcial de produto
type ProdutoPatchRequest struct {
	Nome          *string  `json:"nome"`
	CategoriaID   *string  `json:"categoria_id"`
	FabricanteID  *string  `json:"fabricante_id"`
	PrecoVenda    *float64 `json:"preco_venda"`
	EstoqueMinimo *int     `json:"estoque_minimo"`
}

// ToPatch converte a requisição para o patch de domínio
func (r ProdutoPatchRequest) ToPatch() produto.Patch {
	return produto.Patch{
		Nome:          r.Nome,
		CategoriaID:   r.CategoriaID,
		FabricanteID:  r.FabricanteID,
		PrecoVenda:    r.PrecoVenda,
		EstoqueMinimo: r.EstoqueMinimo,
	}
}

// ProdutoListResponse representa a resposta de lista de produtos
type ProdutoListResponse struct {
	Items []*usecase.ProdutoDetalhe `json:"items"`
	Page  int                       `json:"page"`
	Size  int                       `json:"size"`
}
