package cliente

import (
	"context"
)

// Repository define a interface para operações de repositório de clientes,
// razão de crédito e fidelidade
type Repository interface {
	// Criar cria um novo cliente
	Criar(ctx context.Context, c *Cliente) error

	// BuscarPorID busca um cliente pelo ID
	BuscarPorID(ctx context.Context, id string) (*Cliente, error)

	// Listar lista os clientes com paginação, filtrando por nome quando informado
	Listar(ctx context.Context, nome string, limit, offset int) ([]*Cliente, error)

	// Atualizar atualiza os dados de um cliente existente
	Atualizar(ctx context.Context, c *Cliente) error

	// Excluir remove um cliente; em caso de vínculos o cliente é desativado
	Excluir(ctx context.Context, id string) error

	// Existe verifica se um cliente existe
	Existe(ctx context.Context, id string) (bool, error)

	// MovimentosCredito retorna o razão de crédito do cliente
	MovimentosCredito(ctx context.Context, clienteID string) ([]MovimentoCredito, error)

	// SaldoCredito retorna o saldo atual de crédito do cliente
	SaldoCredito(ctx context.Context, clienteID string) (float64, error)

	// RegistrarMovimentoCredito acrescenta uma linha ao razão de crédito
	RegistrarMovimentoCredito(ctx context.Context, m *MovimentoCredito) error

	// BuscarFidelizacao retorna o perfil de fidelidade do cliente, criando um
	// perfil zerado quando ainda não existir
	BuscarFidelizacao(ctx context.Context, clienteID string) (*Fidelizacao, error)
}
