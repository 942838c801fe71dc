package caixa

import (
	"context"
	"fmt"

	caixadomain "github.com/matheusprado/erp-suplementos/internal/domain/caixa"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// StatusCaixaOutput resume a situação atual do caixa
type StatusCaixaOutput struct {
	Aberto         bool                       `json:"aberto"`
	Sessao         *caixadomain.Sessao        `json:"sessao,omitempty"`
	SaldoCalculado float64                    `json:"saldo_calculado"`
	Movimentacoes  []caixadomain.Movimentacao `json:"movimentacoes,omitempty"`
}

// GerirCaixaUseCase concentra o ciclo de vida da sessão de caixa:
// abrir, movimentar, consultar e fechar
type GerirCaixaUseCase struct {
	caixa  caixadomain.Repository
	logger logger.Logger
}

// NovoGerirCaixaUseCase cria uma nova instância do caso de uso
func NovoGerirCaixaUseCase(caixa caixadomain.Repository, logger logger.Logger) *GerirCaixaUseCase {
	return &GerirCaixaUseCase{caixa: caixa, logger: logger}
}

// Abrir abre uma nova sessão de caixa; só pode haver uma aberta por vez
func (uc *GerirCaixaUseCase) Abrir(ctx context.Context, usuarioID string, saldoInicial float64) (*caixadomain.Sessao, error) {
	aberta, err := uc.caixa.SessaoAberta(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar sessão aberta: %w", err)
	}
	if aberta != nil {
		return nil, caixadomain.ErrSessaoJaAberta
	}

	s, err := caixadomain.NovaSessao(usuarioID, saldoInicial)
	if err != nil {
		return nil, err
	}

	if err := uc.caixa.Abrir(ctx, s); err != nil {
		uc.logger.Error("erro ao abrir caixa", "error", err)
		return nil, err
	}

	uc.logger.Info("caixa aberto", "sessao_id", s.ID, "saldo_inicial", s.SaldoInicial)
	return s, nil
}

// Movimentar registra um movimento avulso (sangria, suprimento, entrada ou
// saída) na sessão aberta
func (uc *GerirCaixaUseCase) Movimentar(ctx context.Context, tipo caixadomain.TipoMovimentacao, formaPagamento string, valor float64, descricao string) (*caixadomain.Movimentacao, error) {
	sessao, err := uc.caixa.SessaoAberta(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar sessão aberta: %w", err)
	}
	if sessao == nil {
		return nil, caixadomain.ErrSessaoNaoAberta
	}

	if formaPagamento == "" {
		formaPagamento = caixadomain.FormaDinheiro
	}

	m, err := caixadomain.NovaMovimentacao(sessao.ID, tipo, formaPagamento, valor, descricao)
	if err != nil {
		return nil, err
	}

	if err := uc.caixa.RegistrarMovimentacao(ctx, m); err != nil {
		uc.logger.Error("erro ao registrar movimentação de caixa", "sessao_id", sessao.ID, "error", err)
		return nil, err
	}

	return m, nil
}

// Status devolve a sessão aberta (se houver) com o saldo recalculado a partir
// do razão de movimentos
func (uc *GerirCaixaUseCase) Status(ctx context.Context) (*StatusCaixaOutput, error) {
	sessao, err := uc.caixa.SessaoAberta(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar sessão aberta: %w", err)
	}
	if sessao == nil {
		return &StatusCaixaOutput{Aberto: false}, nil
	}

	movimentos, err := uc.caixa.Movimentacoes(ctx, sessao.ID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar movimentações: %w", err)
	}

	return &StatusCaixaOutput{
		Aberto:         true,
		Sessao:         sessao,
		SaldoCalculado: caixadomain.SaldoCalculadoDe(sessao.SaldoInicial, movimentos),
		Movimentacoes:  movimentos,
	}, nil
}

// Fechar encerra a sessão aberta comparando o saldo declarado pelo operador
// com o saldo calculado
func (uc *GerirCaixaUseCase) Fechar(ctx context.Context, saldoDeclarado float64) (*caixadomain.Sessao, error) {
	sessao, err := uc.caixa.SessaoAberta(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar sessão aberta: %w", err)
	}
	if sessao == nil {
		return nil, caixadomain.ErrSessaoNaoAberta
	}

	movimentos, err := uc.caixa.Movimentacoes(ctx, sessao.ID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar movimentações: %w", err)
	}

	if err := sessao.Fechar(saldoDeclarado, movimentos); err != nil {
		return nil, err
	}

	if err := uc.caixa.Fechar(ctx, sessao); err != nil {
		uc.logger.Error("erro ao fechar caixa", "sessao_id", sessao.ID, "error", err)
		return nil, err
	}

	uc.logger.Info("caixa fechado",
		"sessao_id", sessao.ID,
		"saldo_calculado", *sessao.SaldoCalculado,
		"saldo_declarado", *sessao.SaldoDeclarado,
		"divergencia", *sessao.Divergencia)

	return sessao, nil
}
