package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusprado/erp-suplementos/internal/domain/caixa"
)

// codigo de violação de unicidade no PostgreSQL
const pgUniqueViolation = "23505"

// Erros específicos do repositório de caixa
var (
	ErrSessaoNaoEncontrada = errors.New("sessão de caixa não encontrada")
)

// CaixaRepository implementa a interface caixa.Repository
type CaixaRepository struct {
	db *pgxpool.Pool
}

// NewCaixaRepository cria uma nova instância de CaixaRepository
func NewCaixaRepository(db *pgxpool.Pool) caixa.Repository {
	return &CaixaRepository{db: db}
}

// Abrir implementa caixa.Repository.Abrir. O índice parcial sobre o status
// ABERTO garante a unicidade da sessão mesmo sob aberturas concorrentes.
func (r *CaixaRepository) Abrir(ctx context.Context, s *caixa.Sessao) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO caixas_sessao (
			id, usuario_id, status, saldo_inicial, saldo_declarado,
			saldo_calculado, divergencia, aberto_em, fechado_em
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.UsuarioID, s.Status, s.SaldoInicial, s.SaldoDeclarado,
		s.SaldoCalculado, s.Divergencia, s.AbertoEm, s.FechadoEm)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return caixa.ErrSessaoJaAberta
		}
		return fmt.Errorf("erro ao abrir sessão de caixa: %w", err)
	}
	return nil
}

// SessaoAberta implementa caixa.Repository.SessaoAberta
func (r *CaixaRepository) SessaoAberta(ctx context.Context) (*caixa.Sessao, error) {
	s, err := r.buscar(ctx, "status = $1", caixa.StatusAberto)
	if err != nil {
		if errors.Is(err, ErrSessaoNaoEncontrada) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// BuscarPorID implementa caixa.Repository.BuscarPorID
func (r *CaixaRepository) BuscarPorID(ctx context.Context, id string) (*caixa.Sessao, error) {
	return r.buscar(ctx, "id = $1", id)
}

func (r *CaixaRepository) buscar(ctx context.Context, condicao string, arg interface{}) (*caixa.Sessao, error) {
	var s caixa.Sessao
	err := r.db.QueryRow(ctx,
		`SELECT id, usuario_id, status, saldo_inicial, saldo_declarado,
			saldo_calculado, divergencia, aberto_em, fechado_em
		FROM caixas_sessao WHERE `+condicao,
		arg).Scan(
		&s.ID, &s.UsuarioID, &s.Status, &s.SaldoInicial, &s.SaldoDeclarado,
		&s.SaldoCalculado, &s.Divergencia, &s.AbertoEm, &s.FechadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessaoNaoEncontrada
		}
		return nil, fmt.Errorf("erro ao buscar sessão de caixa: %w", err)
	}
	return &s, nil
}

// RegistrarMovimentacao implementa caixa.Repository.RegistrarMovimentacao
func (r *CaixaRepository) RegistrarMovimentacao(ctx context.Context, m *caixa.Movimentacao) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO caixas_movimentacao (id, sessao_id, tipo, forma_pagamento, valor, descricao, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.SessaoID, m.Tipo, m.FormaPagamento, m.Valor, m.Descricao, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao registrar movimentação de caixa: %w", err)
	}
	return nil
}

// Movimentacoes implementa caixa.Repository.Movimentacoes
func (r *CaixaRepository) Movimentacoes(ctx context.Context, sessaoID string) ([]caixa.Movimentacao, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, sessao_id, tipo, forma_pagamento, valor, descricao, created_at
		FROM caixas_movimentacao WHERE sessao_id = $1
		ORDER BY created_at ASC`,
		sessaoID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar movimentações: %w", err)
	}
	defer rows.Close()

	var movimentos []caixa.Movimentacao
	for rows.Next() {
		var m caixa.Movimentacao
		if err := rows.Scan(&m.ID, &m.SessaoID, &m.Tipo, &m.FormaPagamento, &m.Valor, &m.Descricao, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler movimentação: %w", err)
		}
		movimentos = append(movimentos, m)
	}
	return movimentos, rows.Err()
}

// Fechar implementa caixa.Repository.Fechar
func (r *CaixaRepository) Fechar(ctx context.Context, s *caixa.Sessao) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE caixas_sessao SET
			status = $1, saldo_declarado = $2, saldo_calculado = $3,
			divergencia = $4, fechado_em = $5
		WHERE id = $6 AND status = $7`,
		s.Status, s.SaldoDeclarado, s.SaldoCalculado,
		s.Divergencia, s.FechadoEm, s.ID, caixa.StatusAberto)
	if err != nil {
		return fmt.Errorf("erro ao fechar sessão de caixa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return caixa.ErrSessaoFechada
	}
	return nil
}
