package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusprado/erp-suplementos/internal/domain/compra"
	"github.com/matheusprado/erp-suplementos/internal/domain/financeiro"
	"github.com/matheusprado/erp-suplementos/internal/domain/produto"
	"github.com/matheusprado/erp-suplementos/internal/infrastructure/database"
)

// Erros específicos do repositório de compras
var (
	ErrCompraNaoEncontrada = errors.New("compra não encontrada")
)

// CompraRepository implementa a interface compra.Repository
type CompraRepository struct {
	db *pgxpool.Pool
}

// NewCompraRepository cria uma nova instância de CompraRepository
func NewCompraRepository(db *pgxpool.Pool) compra.Repository {
	return &CompraRepository{db: db}
}

// Criar implementa compra.Repository.Criar: cabeçalho, itens, um lote por item
// e as parcelas a pagar, tudo na mesma transação
func (r *CompraRepository) Criar(ctx context.Context, c *compra.Compra, condicao compra.CondicaoPagamento) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO compras (id, fornecedor_id, nota_fiscal, data, total, observacoes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			c.ID, c.FornecedorID, c.NotaFiscal, c.Data, c.Total, c.Observacoes, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("erro ao inserir compra: %w", err)
		}

		if err := inserirItensELotes(ctx, tx, c); err != nil {
			return err
		}

		return gerarPagaveis(ctx, tx, c, condicao, c.Total)
	})
}

func inserirItensELotes(ctx context.Context, tx pgx.Tx, c *compra.Compra) error {
	for i := range c.Itens {
		item := &c.Itens[i]
		if _, err := tx.Exec(ctx,
			`INSERT INTO itens_compra (id, compra_id, produto_id, quantidade, custo_unitario, validade)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.CompraID, item.ProdutoID, item.Quantidade, item.CustoUnitario, item.Validade); err != nil {
			return fmt.Errorf("erro ao inserir item da compra: %w", err)
		}

		lote := produto.NovoLote(item.ProdutoID, item.Quantidade, item.CustoUnitario, item.Validade, &c.ID)
		if _, err := tx.Exec(ctx,
			`INSERT INTO lotes (id, produto_id, quantidade, validade, custo_unitario, compra_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			lote.ID, lote.ProdutoID, lote.Quantidade, lote.Validade, lote.CustoUnitario, lote.CompraID, lote.CreatedAt); err != nil {
			return fmt.Errorf("erro ao inserir lote da compra: %w", err)
		}
	}
	return nil
}

func gerarPagaveis(ctx context.Context, tx pgx.Tx, c *compra.Compra, condicao compra.CondicaoPagamento, total float64) error {
	if total <= financeiro.Tolerancia {
		return nil
	}
	if condicao.Parcelas <= 0 {
		condicao.Parcelas = 1
	}

	primeira := c.Data
	if condicao.EmMeses {
		primeira = primeira.AddDate(0, condicao.Intervalo, 0)
	} else {
		primeira = primeira.AddDate(0, 0, condicao.Intervalo)
	}

	parcelas, err := compra.GerarParcelas(total, condicao.Parcelas, condicao.Intervalo, condicao.EmMeses, primeira)
	if err != nil {
		return err
	}

	for _, p := range parcelas {
		vencimento := p.Vencimento
		descricao := fmt.Sprintf("Compra NF %s", c.NotaFiscal)
		if len(parcelas) > 1 {
			descricao = fmt.Sprintf("Compra NF %s parcela %d/%d", c.NotaFiscal, p.Numero, len(parcelas))
		}

		l, err := financeiro.NovoLancamento(financeiro.TipoDespesa, descricao, p.Valor, &vencimento)
		if err != nil {
			return err
		}
		compraID := c.ID
		l.CompraID = &compraID

		if err := inserirLancamento(ctx, tx, l); err != nil {
			return err
		}
	}
	return nil
}

// BuscarPorID implementa compra.Repository.BuscarPorID
func (r *CompraRepository) BuscarPorID(ctx context.Context, id string) (*compra.Compra, error) {
	var c compra.Compra
	err := r.db.QueryRow(ctx,
		`SELECT id, fornecedor_id, nota_fiscal, data, total, observacoes, created_at, updated_at
		FROM compras WHERE id = $1`,
		id).Scan(&c.ID, &c.FornecedorID, &c.NotaFiscal, &c.Data, &c.Total, &c.Observacoes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompraNaoEncontrada
		}
		return nil, fmt.Errorf("erro ao buscar compra: %w", err)
	}

	itens, err := r.buscarItens(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Itens = itens
	return &c, nil
}

func (r *CompraRepository) buscarItens(ctx context.Context, compraID string) ([]compra.ItemCompra, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, compra_id, produto_id, quantidade, custo_unitario, validade
		FROM itens_compra WHERE compra_id = $1`,
		compraID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens da compra: %w", err)
	}
	defer rows.Close()

	var itens []compra.ItemCompra
	for rows.Next() {
		var item compra.ItemCompra
		if err := rows.Scan(&item.ID, &item.CompraID, &item.ProdutoID, &item.Quantidade, &item.CustoUnitario, &item.Validade); err != nil {
			return nil, fmt.Errorf("erro ao ler item da compra: %w", err)
		}
		itens = append(itens, item)
	}
	return itens, rows.Err()
}

// Listar implementa compra.Repository.Listar
func (r *CompraRepository) Listar(ctx context.Context, fornecedorID string, limit, offset int) ([]*compra.Compra, error) {
	query := `SELECT id, fornecedor_id, nota_fiscal, data, total, observacoes, created_at, updated_at
	FROM compras WHERE 1=1`
	args := []interface{}{}

	if fornecedorID != "" {
		args = append(args, fornecedorID)
		query += fmt.Sprintf(" AND fornecedor_id = $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY data DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar compras: %w", err)
	}
	defer rows.Close()

	compras := make([]*compra.Compra, 0)
	for rows.Next() {
		var c compra.Compra
		if err := rows.Scan(&c.ID, &c.FornecedorID, &c.NotaFiscal, &c.Data, &c.Total, &c.Observacoes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler compra: %w", err)
		}
		compras = append(compras, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	for _, c := range compras {
		itens, err := r.buscarItens(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Itens = itens
	}
	return compras, nil
}

// Atualizar implementa compra.Repository.Atualizar. Os lotes da compra são
// reescritos a partir dos itens editados; o que já foi vendido dos lotes
// antigos é debitado de novo dos lotes novos, preservando o estoque líquido.
// Reduções que deixariam o estoque do produto negativo abortam a edição.
func (r *CompraRepository) Atualizar(ctx context.Context, c *compra.Compra, condicao compra.CondicaoPagamento) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		originais, err := buscarItensParaAtualizar(ctx, tx, c.ID)
		if err != nil {
			return err
		}
		if len(originais) == 0 {
			return ErrCompraNaoEncontrada
		}

		estoque := &estoqueTx{tx: tx}

		// Guarda contra reduzir abaixo do que já saiu por venda
		for _, reducao := range compra.CalcularReducoes(originais, c.Itens) {
			fisico, err := estoque.EstoqueTotal(ctx, reducao.ProdutoID)
			if err != nil {
				return err
			}
			if fisico < reducao.Quantidade {
				return compra.ErrReducaoAbaixoVendido
			}
		}

		// Quanto dos lotes desta compra já foi consumido, por produto
		vendidos, err := consumoPorProduto(ctx, tx, c.ID, originais)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, "DELETE FROM lotes WHERE compra_id = $1", c.ID); err != nil {
			return fmt.Errorf("erro ao remover lotes antigos: %w", err)
		}
		if _, err := tx.Exec(ctx, "DELETE FROM itens_compra WHERE compra_id = $1", c.ID); err != nil {
			return fmt.Errorf("erro ao remover itens antigos: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE compras SET fornecedor_id = $1, nota_fiscal = $2, data = $3,
				total = $4, observacoes = $5, updated_at = $6
			WHERE id = $7`,
			c.FornecedorID, c.NotaFiscal, c.Data, c.Total, c.Observacoes, c.UpdatedAt, c.ID); err != nil {
			return fmt.Errorf("erro ao atualizar compra: %w", err)
		}

		if err := inserirItensELotes(ctx, tx, c); err != nil {
			return err
		}

		// Reaplica o consumo já ocorrido sobre os lotes recriados
		for produtoID, quantidade := range vendidos {
			if err := estoque.Consumir(ctx, produtoID, quantidade, 0); err != nil {
				return err
			}
		}

		return regerarPagaveis(ctx, tx, c, condicao)
	})
}

// consumoPorProduto calcula quanto dos lotes da compra já foi debitado,
// comparando a quantidade declarada nos itens com o saldo atual dos lotes
func consumoPorProduto(ctx context.Context, tx pgx.Tx, compraID string, itens []compra.ItemCompra) (map[string]int, error) {
	declarado := make(map[string]int)
	for _, item := range itens {
		declarado[item.ProdutoID] += item.Quantidade
	}

	rows, err := tx.Query(ctx,
		`SELECT produto_id, COALESCE(SUM(quantidade), 0)
		FROM lotes WHERE compra_id = $1
		GROUP BY produto_id
		FOR UPDATE`,
		compraID)
	if err != nil {
		return nil, fmt.Errorf("erro ao somar lotes da compra: %w", err)
	}
	defer rows.Close()

	saldo := make(map[string]int)
	for rows.Next() {
		var produtoID string
		var quantidade int
		if err := rows.Scan(&produtoID, &quantidade); err != nil {
			return nil, fmt.Errorf("erro ao ler saldo de lote: %w", err)
		}
		saldo[produtoID] = quantidade
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler saldos: %w", err)
	}

	consumido := make(map[string]int)
	for produtoID, total := range declarado {
		if vendido := total - saldo[produtoID]; vendido > 0 {
			consumido[produtoID] = vendido
		}
	}
	return consumido, nil
}

// regerarPagaveis remove os pagáveis pendentes da compra e regenera as
// parcelas sobre o que ainda não foi pago
func regerarPagaveis(ctx context.Context, tx pgx.Tx, c *compra.Compra, condicao compra.CondicaoPagamento) error {
	if _, err := tx.Exec(ctx,
		"DELETE FROM lancamentos WHERE compra_id = $1 AND status = 'PENDENTE'", c.ID); err != nil {
		return fmt.Errorf("erro ao remover pagáveis pendentes: %w", err)
	}

	var pago float64
	err := tx.QueryRow(ctx,
		"SELECT COALESCE(SUM(valor_pago), 0) FROM lancamentos WHERE compra_id = $1",
		c.ID).Scan(&pago)
	if err != nil {
		return fmt.Errorf("erro ao somar pagamentos da compra: %w", err)
	}

	return gerarPagaveis(ctx, tx, c, condicao, c.Total-pago)
}

func buscarItensParaAtualizar(ctx context.Context, tx pgx.Tx, compraID string) ([]compra.ItemCompra, error) {
	rows, err := tx.Query(ctx,
		`SELECT id, compra_id, produto_id, quantidade, custo_unitario, validade
		FROM itens_compra WHERE compra_id = $1
		FOR UPDATE`,
		compraID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens da compra: %w", err)
	}
	defer rows.Close()

	var itens []compra.ItemCompra
	for rows.Next() {
		var item compra.ItemCompra
		if err := rows.Scan(&item.ID, &item.CompraID, &item.ProdutoID, &item.Quantidade, &item.CustoUnitario, &item.Validade); err != nil {
			return nil, fmt.Errorf("erro ao ler item da compra: %w", err)
		}
		itens = append(itens, item)
	}
	return itens, rows.Err()
}

// Excluir implementa compra.Repository.Excluir. A exclusão reverte a entrada
// de mercadoria; o estoque atual do produto precisa cobrir a quantidade de
// cada lote da compra, senão unidades já vendidas ficariam sem origem.
func (r *CompraRepository) Excluir(ctx context.Context, id string) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		itens, err := buscarItensParaAtualizar(ctx, tx, id)
		if err != nil {
			return err
		}
		if len(itens) == 0 {
			return ErrCompraNaoEncontrada
		}

		estoque := &estoqueTx{tx: tx}
		for _, item := range itens {
			fisico, err := estoque.EstoqueTotal(ctx, item.ProdutoID)
			if err != nil {
				return err
			}
			if fisico < item.Quantidade {
				return compra.ErrEstoqueAbaixoDoLote
			}
		}

		if _, err := tx.Exec(ctx, "DELETE FROM lotes WHERE compra_id = $1", id); err != nil {
			return fmt.Errorf("erro ao remover lotes da compra: %w", err)
		}
		if _, err := tx.Exec(ctx,
			"DELETE FROM lancamentos WHERE compra_id = $1 AND status = 'PENDENTE'", id); err != nil {
			return fmt.Errorf("erro ao remover pagáveis pendentes: %w", err)
		}
		// Pagamentos já feitos ficam no histórico, desvinculados da compra
		if _, err := tx.Exec(ctx,
			"UPDATE lancamentos SET compra_id = NULL WHERE compra_id = $1", id); err != nil {
			return fmt.Errorf("erro ao desvincular pagáveis quitados: %w", err)
		}
		if _, err := tx.Exec(ctx, "DELETE FROM itens_compra WHERE compra_id = $1", id); err != nil {
			return fmt.Errorf("erro ao remover itens da compra: %w", err)
		}
		if _, err := tx.Exec(ctx, "DELETE FROM compras WHERE id = $1", id); err != nil {
			return fmt.Errorf("erro ao excluir compra: %w", err)
		}
		return nil
	})
}
