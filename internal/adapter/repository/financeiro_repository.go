package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusprado/erp-suplementos/internal/domain/cliente"
	"github.com/matheusprado/erp-suplementos/internal/domain/financeiro"
	"github.com/matheusprado/erp-suplementos/internal/infrastructure/database"
)

// Erros específicos do repositório financeiro
var (
	ErrLancamentoNaoEncontrado = errors.New("lançamento não encontrado")
)

const colunasLancamento = `id, tipo, descricao, valor, valor_pago, status, vencimento,
	forma_pagamento, cliente_id, venda_id, compra_id, recorrencia,
	origem_id, created_at, updated_at`

// FinanceiroRepository implementa a interface financeiro.Repository
type FinanceiroRepository struct {
	db *pgxpool.Pool
}

// NewFinanceiroRepository cria uma nova instância de FinanceiroRepository
func NewFinanceiroRepository(db *pgxpool.Pool) financeiro.Repository {
	return &FinanceiroRepository{db: db}
}

// Criar implementa financeiro.Repository.Criar
func (r *FinanceiroRepository) Criar(ctx context.Context, l *financeiro.Lancamento) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		return inserirLancamento(ctx, tx, l)
	})
}

func inserirLancamento(ctx context.Context, tx pgx.Tx, l *financeiro.Lancamento) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO lancamentos (`+colunasLancamento+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		l.ID, l.Tipo, l.Descricao, l.Valor, l.ValorPago, l.Status, l.Vencimento,
		l.FormaPagamento, l.ClienteID, l.VendaID, l.CompraID, l.Recorrencia,
		l.OrigemID, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao inserir lançamento: %w", err)
	}
	return nil
}

func scanLancamento(row pgx.Row, l *financeiro.Lancamento) error {
	return row.Scan(
		&l.ID, &l.Tipo, &l.Descricao, &l.Valor, &l.ValorPago, &l.Status, &l.Vencimento,
		&l.FormaPagamento, &l.ClienteID, &l.VendaID, &l.CompraID, &l.Recorrencia,
		&l.OrigemID, &l.CreatedAt, &l.UpdatedAt)
}

// BuscarPorID implementa financeiro.Repository.BuscarPorID
func (r *FinanceiroRepository) BuscarPorID(ctx context.Context, id string) (*financeiro.Lancamento, error) {
	var l financeiro.Lancamento
	row := r.db.QueryRow(ctx,
		"SELECT "+colunasLancamento+" FROM lancamentos WHERE id = $1", id)
	if err := scanLancamento(row, &l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLancamentoNaoEncontrado
		}
		return nil, fmt.Errorf("erro ao buscar lançamento: %w", err)
	}
	return &l, nil
}

// Listar implementa financeiro.Repository.Listar
func (r *FinanceiroRepository) Listar(ctx context.Context, filtro financeiro.Filtro, limit, offset int) ([]*financeiro.Lancamento, error) {
	query := "SELECT " + colunasLancamento + " FROM lancamentos WHERE 1=1"
	args := []interface{}{}

	if filtro.Tipo != "" {
		args = append(args, filtro.Tipo)
		query += fmt.Sprintf(" AND tipo = $%d", len(args))
	}
	if filtro.Status != "" {
		args = append(args, filtro.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filtro.ClienteID != "" {
		args = append(args, filtro.ClienteID)
		query += fmt.Sprintf(" AND cliente_id = $%d", len(args))
	}
	if filtro.DataInicio != nil {
		args = append(args, *filtro.DataInicio)
		query += fmt.Sprintf(" AND vencimento >= $%d", len(args))
	}
	if filtro.DataFim != nil {
		args = append(args, *filtro.DataFim)
		query += fmt.Sprintf(" AND vencimento <= $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY vencimento ASC NULLS LAST, created_at ASC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar lançamentos: %w", err)
	}
	defer rows.Close()

	lancamentos := make([]*financeiro.Lancamento, 0)
	for rows.Next() {
		var l financeiro.Lancamento
		if err := scanLancamento(rows, &l); err != nil {
			return nil, fmt.Errorf("erro ao ler lançamento: %w", err)
		}
		lancamentos = append(lancamentos, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}
	return lancamentos, nil
}

// PendentesPorCliente implementa financeiro.Repository.PendentesPorCliente
func (r *FinanceiroRepository) PendentesPorCliente(ctx context.Context, clienteID string) ([]financeiro.Lancamento, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+colunasLancamento+` FROM lancamentos
		WHERE cliente_id = $1 AND tipo = $2 AND status = $3
		ORDER BY vencimento ASC NULLS LAST, created_at ASC`,
		clienteID, financeiro.TipoReceita, financeiro.StatusPendente)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pendências do cliente: %w", err)
	}
	defer rows.Close()

	var lancamentos []financeiro.Lancamento
	for rows.Next() {
		var l financeiro.Lancamento
		if err := scanLancamento(rows, &l); err != nil {
			return nil, fmt.Errorf("erro ao ler lançamento: %w", err)
		}
		lancamentos = append(lancamentos, l)
	}
	return lancamentos, rows.Err()
}

// RegistrarPagamento implementa financeiro.Repository.RegistrarPagamento
func (r *FinanceiroRepository) RegistrarPagamento(ctx context.Context, lancamentoID string, valor float64, formaPagamento string) (*financeiro.Lancamento, error) {
	var pago *financeiro.Lancamento
	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		l, err := buscarLancamentoParaAtualizar(ctx, tx, lancamentoID)
		if err != nil {
			return err
		}

		if err := l.RegistrarPagamento(valor); err != nil {
			return err
		}
		l.FormaPagamento = formaPagamento

		if err := atualizarLancamento(ctx, tx, l); err != nil {
			return err
		}
		if err := inserirHistorico(ctx, tx, financeiro.NovoHistoricoPagamento(l.ID, valor, formaPagamento)); err != nil {
			return err
		}

		// Quitação de recorrente dispara a próxima instância
		if l.Status == financeiro.StatusPago {
			if proximo := l.ProximaRecorrencia(); proximo != nil {
				if err := inserirLancamento(ctx, tx, proximo); err != nil {
					return err
				}
			}
		}

		pago = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pago, nil
}

// AplicarAlocacoes implementa financeiro.Repository.AplicarAlocacoes
func (r *FinanceiroRepository) AplicarAlocacoes(ctx context.Context, clienteID string, resultado financeiro.ResultadoAlocacao, formaPagamento string) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		for _, a := range resultado.Alocacoes {
			l, err := buscarLancamentoParaAtualizar(ctx, tx, a.LancamentoID)
			if err != nil {
				return err
			}
			if err := l.RegistrarPagamento(a.Valor); err != nil {
				return err
			}
			l.FormaPagamento = formaPagamento

			if err := atualizarLancamento(ctx, tx, l); err != nil {
				return err
			}
			if err := inserirHistorico(ctx, tx, financeiro.NovoHistoricoPagamento(l.ID, a.Valor, formaPagamento)); err != nil {
				return err
			}

			if l.Status == financeiro.StatusPago {
				if proximo := l.ProximaRecorrencia(); proximo != nil {
					if err := inserirLancamento(ctx, tx, proximo); err != nil {
						return err
					}
				}
			}
		}

		// O excedente do pagamento vira crédito do cliente
		if resultado.CreditoGerado > financeiro.Tolerancia {
			m, err := cliente.NovoMovimentoCredito(clienteID, cliente.CreditoEntrada,
				resultado.CreditoGerado, "Excedente de pagamento de pendências")
			if err != nil {
				return err
			}
			if err := inserirMovimentoCredito(ctx, tx, m); err != nil {
				return err
			}
		}

		return nil
	})
}

// Historico implementa financeiro.Repository.Historico
func (r *FinanceiroRepository) Historico(ctx context.Context, lancamentoID string) ([]financeiro.HistoricoPagamento, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, lancamento_id, valor, forma_pagamento, data_pagamento
		FROM historico_pagamentos WHERE lancamento_id = $1
		ORDER BY data_pagamento ASC`,
		lancamentoID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar histórico de pagamentos: %w", err)
	}
	defer rows.Close()

	var historico []financeiro.HistoricoPagamento
	for rows.Next() {
		var h financeiro.HistoricoPagamento
		if err := rows.Scan(&h.ID, &h.LancamentoID, &h.Valor, &h.FormaPagamento, &h.DataPagamento); err != nil {
			return nil, fmt.Errorf("erro ao ler histórico: %w", err)
		}
		historico = append(historico, h)
	}
	return historico, rows.Err()
}

func buscarLancamentoParaAtualizar(ctx context.Context, tx pgx.Tx, id string) (*financeiro.Lancamento, error) {
	var l financeiro.Lancamento
	row := tx.QueryRow(ctx,
		"SELECT "+colunasLancamento+" FROM lancamentos WHERE id = $1 FOR UPDATE", id)
	if err := scanLancamento(row, &l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLancamentoNaoEncontrado
		}
		return nil, fmt.Errorf("erro ao buscar lançamento: %w", err)
	}
	return &l, nil
}

func atualizarLancamento(ctx context.Context, tx pgx.Tx, l *financeiro.Lancamento) error {
	_, err := tx.Exec(ctx,
		`UPDATE lancamentos SET
			valor_pago = $1, status = $2, forma_pagamento = $3, updated_at = $4
		WHERE id = $5`,
		l.ValorPago, l.Status, l.FormaPagamento, l.UpdatedAt, l.ID)
	if err != nil {
		return fmt.Errorf("erro ao atualizar lançamento: %w", err)
	}
	return nil
}

func inserirHistorico(ctx context.Context, tx pgx.Tx, h *financeiro.HistoricoPagamento) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO historico_pagamentos (id, lancamento_id, valor, forma_pagamento, data_pagamento)
		VALUES ($1, $2, $3, $4, $5)`,
		h.ID, h.LancamentoID, h.Valor, h.FormaPagamento, h.DataPagamento)
	if err != nil {
		return fmt.Errorf("erro ao inserir histórico de pagamento: %w", err)
	}
	return nil
}
