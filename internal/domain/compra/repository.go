package compra

import (
	"context"
)

// CondicaoPagamento descreve como os pagáveis da compra são parcelados
type CondicaoPagamento struct {
	Parcelas  int
	Intervalo int
	EmMeses   bool
}

// Repository define a interface para operações de repositório de compras.
// Criar, Atualizar e Excluir movimentam lotes e pagáveis na mesma transação
// do cabeçalho.
type Repository interface {
	// Criar persiste a compra, gera um lote por item e as parcelas a pagar
	Criar(ctx context.Context, c *Compra, condicao CondicaoPagamento) error

	// BuscarPorID busca uma compra pelo ID com seus itens
	BuscarPorID(ctx context.Context, id string) (*Compra, error)

	// Listar lista as compras com paginação
	Listar(ctx context.Context, fornecedorID string, limit, offset int) ([]*Compra, error)

	// Atualizar reescreve os lotes e regenera os pagáveis da compra editada
	Atualizar(ctx context.Context, c *Compra, condicao CondicaoPagamento) error

	// Excluir reverte a compra: remove lotes, cancela pagáveis pendentes e
	// apaga o cabeçalho; falha se parte do lote já foi vendida
	Excluir(ctx context.Context, id string) error
}
