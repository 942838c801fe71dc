package dto

import (
	"time"

	"github.com/matheusprado/erp-suplementos/internal/domain/compra"
)

// ItemCompraRequest representa um item da compra
type ItemCompraRequest struct {
	ProdutoID     string     `json:"produto_id" binding:"required"`
	Quantidade    int        `json:"quantidade" binding:"required,min=1"`
	CustoUnitario float64    `json:"custo_unitario"`
	Validade      *time.Time `json:"validade"`
}

// CondicaoPagamentoRequest representa o parcelamento dos pagáveis da compra
type CondicaoPagamentoRequest struct {
	Parcelas  int  `json:"parcelas"`
	Intervalo int  `json:"intervalo"`
	EmMeses   bool `json:"em_meses"`
}

// ToCondicao converte a requisição para a condição de domínio, com valores
// padrão de parcela única em 30 dias
func (r CondicaoPagamentoRequest) ToCondicao() compra.CondicaoPagamento {
	condicao := compra.CondicaoPagamento{
		Parcelas:  r.Parcelas,
		Intervalo: r.Intervalo,
		EmMeses:   r.EmMeses,
	}
	if condicao.Parcelas <= 0 {
		condicao.Parcelas = 1
	}
	if condicao.Intervalo <= 0 {
		condicao.Intervalo = 30
	}
	return condicao
}

// CompraRequest representa a requisição de registro ou edição de compra
type CompraRequest struct {
	FornecedorID string                   `json:"fornecedor_id" binding:"required"`
	NotaFiscal   string                   `json:"nota_fiscal"`
	Data         time.Time                `json:"data"`
	Observacoes  string                   `json:"observacoes"`
	Itens        []ItemCompraRequest      `json:"itens" binding:"required,min=1"`
	Condicao     CondicaoPagamentoRequest `json:"condicao_pagamento"`
}

// CompraListResponse representa a resposta de lista de compras
type CompraListResponse struct {
	Items []*compra.Compra `json:"items"`
	Page  int              `json:"page"`
	Size  int              `json:"size"`
}
