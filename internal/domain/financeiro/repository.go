package financeiro

import (
	"context"
	"time"
)

// Filtro restringe a listagem de lançamentos
type Filtro struct {
	Tipo       Tipo
	Status     Status
	ClienteID  string
	DataInicio *time.Time
	DataFim    *time.Time
}

// Repository define a interface para operações de repositório financeiro
type Repository interface {
	// Criar cria um novo lançamento
	Criar(ctx context.Context, l *Lancamento) error

	// BuscarPorID busca um lançamento pelo ID
	BuscarPorID(ctx context.Context, id string) (*Lancamento, error)

	// Listar lista os lançamentos aplicando o filtro
	Listar(ctx context.Context, filtro Filtro, limit, offset int) ([]*Lancamento, error)

	// PendentesPorCliente retorna as receitas pendentes de um cliente
	PendentesPorCliente(ctx context.Context, clienteID string) ([]Lancamento, error)

	// RegistrarPagamento aplica um pagamento a um lançamento e grava o
	// histórico; quando um lançamento recorrente é quitado, a próxima
	// instância é criada na mesma transação
	RegistrarPagamento(ctx context.Context, lancamentoID string, valor float64, formaPagamento string) (*Lancamento, error)

	// AplicarAlocacoes aplica em uma única transação as fatias de um
	// pagamento distribuído por FIFO; o crédito gerado, quando houver, é
	// lançado no razão de crédito do cliente
	AplicarAlocacoes(ctx context.Context, clienteID string, resultado ResultadoAlocacao, formaPagamento string) error

	// Historico retorna os pagamentos registrados de um lançamento
	Historico(ctx context.Context, lancamentoID string) ([]HistoricoPagamento, error)
}
