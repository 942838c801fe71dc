package venda

import (
	"context"
	"time"
)

// Filtro restringe a listagem de vendas
type Filtro struct {
	DataInicio  *time.Time
	DataFim     *time.Time
	Status      Status
	ClienteNome string
	VendaID     string
}

// Repository define a interface para operações de repositório de vendas.
// Salvar e Cancelar executam todos os efeitos colaterais da venda (estoque,
// fidelidade, crédito, caixa, pendências) em uma única transação.
type Repository interface {
	// Salvar persiste a venda com todos os seus efeitos; qualquer falha
	// desfaz a transação inteira
	Salvar(ctx context.Context, v *Venda) error

	// BuscarPorID busca uma venda pelo ID com itens e pagamentos
	BuscarPorID(ctx context.Context, id string) (*Venda, error)

	// Listar lista as vendas aplicando o filtro
	Listar(ctx context.Context, filtro Filtro, limit, offset int) ([]*Venda, error)

	// Cancelar reverte uma venda concluída: devolve estoque, estorna pontos
	// e remove a pendência de fiado, em uma única transação
	Cancelar(ctx context.Context, id string) error
}
