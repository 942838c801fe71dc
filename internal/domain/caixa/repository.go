package caixa

import (
	"context"
)

// Repository define a interface para operações de repositório de caixa.
// A unicidade da sessão aberta é garantida por índice parcial no banco, não
// por estado em memória.
type Repository interface {
	// Abrir persiste uma nova sessão; falha se já houver sessão aberta
	Abrir(ctx context.Context, s *Sessao) error

	// SessaoAberta retorna a sessão aberta atual, ou nil se não houver
	SessaoAberta(ctx context.Context) (*Sessao, error)

	// BuscarPorID busca uma sessão pelo ID
	BuscarPorID(ctx context.Context, id string) (*Sessao, error)

	// RegistrarMovimentacao acrescenta um movimento ao razão da sessão
	RegistrarMovimentacao(ctx context.Context, m *Movimentacao) error

	// Movimentacoes retorna o razão de uma sessão na ordem de registro
	Movimentacoes(ctx context.Context, sessaoID string) ([]Movimentacao, error)

	// Fechar persiste o fechamento da sessão com os saldos apurados
	Fechar(ctx context.Context, s *Sessao) error
}
