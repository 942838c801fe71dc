package dto

import (
	"time"

	"github.com/matheusprado/erp-suplementos/internal/domain/financeiro"
)

// LancamentoRequest representa a requisição de criação de lançamento
type LancamentoRequest struct {
	Tipo        string     `json:"tipo" binding:"required,oneof=RECEITA DESPESA"`
	Descricao   string     `json:"descricao" binding:"required"`
	Valor       float64    `json:"valor" binding:"required,gt=0"`
	Vencimento  *time.Time `json:"vencimento"`
	ClienteID   *string    `json:"cliente_id"`
	Recorrencia string     `json:"recorrencia"`
}

// PagamentoLancamentoRequest representa a requisição de pagamento de um
// lançamento; valor zerado quita o saldo restante
type PagamentoLancamentoRequest struct {
	Valor          float64 `json:"valor"`
	FormaPagamento string  `json:"forma_pagamento" binding:"required"`
}

// PagarTodasRequest representa a quitação em lote das pendências do cliente
type PagarTodasRequest struct {
	Valor          float64 `json:"valor" binding:"required,gt=0"`
	FormaPagamento string  `json:"forma_pagamento" binding:"required"`
}

// LancamentoListResponse representa a resposta de lista de lançamentos
type LancamentoListResponse struct {
	Items []*financeiro.Lancamento `json:"items"`
	Page  int                      `json:"page"`
	Size  int                      `json:"size"`
}
