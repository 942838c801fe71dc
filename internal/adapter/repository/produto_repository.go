package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusprado/erp-suplementos/internal/domain/produto"
	"github.com/matheusprado/erp-suplementos/internal/infrastructure/database"
)

// codigo de violação de chave estrangeira no PostgreSQL
const pgForeignKeyViolation = "23503"

// ProdutoRepository implementa a interface produto.Repository
type ProdutoRepository struct {
	db *pgxpool.Pool
}

// NewProdutoRepository cria uma nova instância de ProdutoRepository
func NewProdutoRepository(db *pgxpool.Pool) produto.Repository {
	return &ProdutoRepository{db: db}
}

// Criar implementa produto.Repository.Criar
func (r *ProdutoRepository) Criar(ctx context.Context, p *produto.Produto, componentes []produto.ComponenteKit) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO produtos (
				id, nome, categoria_id, fabricante_id, preco_venda, eh_kit,
				estoque_minimo, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			p.ID, p.Nome, p.CategoriaID, p.FabricanteID, p.PrecoVenda, p.EhKit,
			p.EstoqueMinimo, p.Status, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("erro ao inserir produto: %w", err)
		}

		for _, c := range componentes {
			if _, err := tx.Exec(ctx,
				`INSERT INTO componentes_kit (kit_id, produto_id, quantidade, preco_componente)
				VALUES ($1, $2, $3, $4)`,
				p.ID, c.ProdutoID, c.Quantidade, c.PrecoComponente); err != nil {
				return fmt.Errorf("erro ao inserir componente do kit: %w", err)
			}
		}
		return nil
	})
}

// BuscarPorID implementa produto.Repository.BuscarPorID
func (r *ProdutoRepository) BuscarPorID(ctx context.Context, id string) (*produto.Produto, error) {
	var p produto.Produto
	err := r.db.QueryRow(ctx,
		`SELECT id, nome, categoria_id, fabricante_id, preco_venda, eh_kit,
			estoque_minimo, status, created_at, updated_at
		FROM produtos WHERE id = $1`,
		id).Scan(
		&p.ID, &p.Nome, &p.CategoriaID, &p.FabricanteID, &p.PrecoVenda, &p.EhKit,
		&p.EstoqueMinimo, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProdutoNaoEncontrado
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}
	return &p, nil
}

// Listar implementa produto.Repository.Listar
func (r *ProdutoRepository) Listar(ctx context.Context, filtro produto.Filtro, limit, offset int) ([]*produto.Produto, error) {
	query := `SELECT id, nome, categoria_id, fabricante_id, preco_venda, eh_kit,
		estoque_minimo, status, created_at, updated_at
	FROM produtos WHERE 1=1`
	args := []interface{}{}

	if filtro.Nome != "" {
		args = append(args, "%"+filtro.Nome+"%")
		query += fmt.Sprintf(" AND nome ILIKE $%d", len(args))
	}
	if filtro.CategoriaID != "" {
		args = append(args, filtro.CategoriaID)
		query += fmt.Sprintf(" AND categoria_id = $%d", len(args))
	}
	if filtro.Status != "" {
		args = append(args, filtro.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filtro.ApenasKits {
		query += " AND eh_kit = true"
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY nome ASC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	produtos := make([]*produto.Produto, 0)
	for rows.Next() {
		var p produto.Produto
		if err := rows.Scan(
			&p.ID, &p.Nome, &p.CategoriaID, &p.FabricanteID, &p.PrecoVenda, &p.EhKit,
			&p.EstoqueMinimo, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler produto: %w", err)
		}
		produtos = append(produtos, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}
	return produtos, nil
}

// Atualizar implementa produto.Repository.Atualizar
func (r *ProdutoRepository) Atualizar(ctx context.Context, p *produto.Produto) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE produtos SET
			nome = $1, categoria_id = $2, fabricante_id = $3, preco_venda = $4,
			estoque_minimo = $5, status = $6, updated_at = $7
		WHERE id = $8`,
		p.Nome, p.CategoriaID, p.FabricanteID, p.PrecoVenda,
		p.EstoqueMinimo, p.Status, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("erro ao atualizar produto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProdutoNaoEncontrado
	}
	return nil
}

// Excluir implementa produto.Repository.Excluir. Produto já referenciado por
// vendas ou compras não pode sumir do histórico: a violação de chave
// estrangeira rebaixa a exclusão para desativação.
func (r *ProdutoRepository) Excluir(ctx context.Context, id string) error {
	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			"DELETE FROM componentes_kit WHERE kit_id = $1", id); err != nil {
			return fmt.Errorf("erro ao remover composição do kit: %w", err)
		}
		if _, err := tx.Exec(ctx,
			"DELETE FROM lotes WHERE produto_id = $1", id); err != nil {
			return fmt.Errorf("erro ao remover lotes do produto: %w", err)
		}

		tag, err := tx.Exec(ctx, "DELETE FROM produtos WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("erro ao excluir produto: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrProdutoNaoEncontrado
		}
		return nil
	})
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return r.desativar(ctx, id)
	}
	return err
}

func (r *ProdutoRepository) desativar(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE produtos SET status = $1, updated_at = $2 WHERE id = $3",
		produto.StatusInativo, time.Now(), id)
	if err != nil {
		return fmt.Errorf("erro ao desativar produto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProdutoNaoEncontrado
	}
	return nil
}

// Existe implementa produto.Repository.Existe
func (r *ProdutoRepository) Existe(ctx context.Context, id string) (bool, error) {
	var existe bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM produtos WHERE id = $1)", id).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do produto: %w", err)
	}
	return existe, nil
}

// BuscarComponentes implementa produto.Repository.BuscarComponentes
func (r *ProdutoRepository) BuscarComponentes(ctx context.Context, kitID string) ([]produto.ComponenteKit, error) {
	rows, err := r.db.Query(ctx,
		"SELECT kit_id, produto_id, quantidade, preco_componente FROM componentes_kit WHERE kit_id = $1",
		kitID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar componentes do kit: %w", err)
	}
	defer rows.Close()

	var componentes []produto.ComponenteKit
	for rows.Next() {
		var c produto.ComponenteKit
		if err := rows.Scan(&c.KitID, &c.ProdutoID, &c.Quantidade, &c.PrecoComponente); err != nil {
			return nil, fmt.Errorf("erro ao ler componente do kit: %w", err)
		}
		componentes = append(componentes, c)
	}
	return componentes, rows.Err()
}

// BuscarLotes implementa produto.Repository.BuscarLotes
func (r *ProdutoRepository) BuscarLotes(ctx context.Context, produtoID string) ([]produto.Lote, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, produto_id, quantidade, validade, custo_unitario, compra_id, created_at
		FROM lotes WHERE produto_id = $1
		ORDER BY created_at ASC`,
		produtoID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar lotes do produto: %w", err)
	}
	defer rows.Close()

	var lotes []produto.Lote
	for rows.Next() {
		var l produto.Lote
		if err := rows.Scan(&l.ID, &l.ProdutoID, &l.Quantidade, &l.Validade, &l.CustoUnitario, &l.CompraID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler lote: %w", err)
		}
		lotes = append(lotes, l)
	}
	return lotes, rows.Err()
}

// EstoqueFisico implementa produto.Repository.EstoqueFisico
func (r *ProdutoRepository) EstoqueFisico(ctx context.Context, produtoID string) (int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		"SELECT COALESCE(SUM(quantidade), 0) FROM lotes WHERE produto_id = $1",
		produtoID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("erro ao somar estoque do produto: %w", err)
	}
	return total, nil
}

// EstoqueDisponivel implementa produto.Repository.EstoqueDisponivel. Para
// kits, o estoque é derivado dos componentes pela regra do gargalo,
// recursivamente.
func (r *ProdutoRepository) EstoqueDisponivel(ctx context.Context, produtoID string) (int, error) {
	return r.estoqueDisponivel(ctx, produtoID, 0)
}

func (r *ProdutoRepository) estoqueDisponivel(ctx context.Context, produtoID string, nivel int) (int, error) {
	if nivel > produto.ProfundidadeMaxComposicao {
		return 0, produto.ErrComposicaoProfunda
	}

	var ehKit bool
	err := r.db.QueryRow(ctx,
		"SELECT eh_kit FROM produtos WHERE id = $1", produtoID).Scan(&ehKit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrProdutoNaoEncontrado
		}
		return 0, fmt.Errorf("erro ao buscar produto: %w", err)
	}

	if !ehKit {
		return r.EstoqueFisico(ctx, produtoID)
	}

	componentes, err := r.BuscarComponentes(ctx, produtoID)
	if err != nil {
		return 0, err
	}

	estoques := make(map[string]int, len(componentes))
	for _, c := range componentes {
		disponivel, err := r.estoqueDisponivel(ctx, c.ProdutoID, nivel+1)
		if err != nil {
			return 0, err
		}
		estoques[c.ProdutoID] = disponivel
	}
	return produto.EstoqueKit(componentes, estoques), nil
}
