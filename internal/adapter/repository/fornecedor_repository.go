package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusprado/erp-suplementos/internal/domain/fornecedor"
)

// Erros específicos do repositório de fornecedores
var (
	ErrFornecedorNaoEncontrado = errors.New("fornecedor não encontrado")
)

// FornecedorRepository implementa a interface fornecedor.Repository
type FornecedorRepository struct {
	db *pgxpool.Pool
}

// NewFornecedorRepository cria uma nova instância de FornecedorRepository
func NewFornecedorRepository(db *pgxpool.Pool) fornecedor.Repository {
	return &FornecedorRepository{db: db}
}

// Criar implementa fornecedor.Repository.Criar
func (r *FornecedorRepository) Criar(ctx context.Context, f *fornecedor.Fornecedor) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO fornecedores (id, nome, cnpj, telefone, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		f.ID, f.Nome, f.CNPJ, f.Telefone, f.Email, f.Status, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao inserir fornecedor: %w", err)
	}
	return nil
}

// BuscarPorID implementa fornecedor.Repository.BuscarPorID
func (r *FornecedorRepository) BuscarPorID(ctx context.Context, id string) (*fornecedor.Fornecedor, error) {
	var f fornecedor.Fornecedor
	err := r.db.QueryRow(ctx,
		`SELECT id, nome, cnpj, telefone, email, status, created_at, updated_at
		FROM fornecedores WHERE id = $1`,
		id).Scan(&f.ID, &f.Nome, &f.CNPJ, &f.Telefone, &f.Email, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFornecedorNaoEncontrado
		}
		return nil, fmt.Errorf("erro ao buscar fornecedor: %w", err)
	}
	return &f, nil
}

// Listar implementa fornecedor.Repository.Listar
func (r *FornecedorRepository) Listar(ctx context.Context, nome string, limit, offset int) ([]*fornecedor.Fornecedor, error) {
	query := `SELECT id, nome, cnpj, telefone, email, status, created_at, updated_at
	FROM fornecedores WHERE 1=1`
	args := []interface{}{}

	if nome != "" {
		args = append(args, "%"+nome+"%")
		query += fmt.Sprintf(" AND nome ILIKE $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY nome ASC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar fornecedores: %w", err)
	}
	defer rows.Close()

	fornecedores := make([]*fornecedor.Fornecedor, 0)
	for rows.Next() {
		var f fornecedor.Fornecedor
		if err := rows.Scan(&f.ID, &f.Nome, &f.CNPJ, &f.Telefone, &f.Email, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler fornecedor: %w", err)
		}
		fornecedores = append(fornecedores, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}
	return fornecedores, nil
}

// Atualizar implementa fornecedor.Repository.Atualizar
func (r *FornecedorRepository) Atualizar(ctx context.Context, f *fornecedor.Fornecedor) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE fornecedores SET nome = $1, cnpj = $2, telefone = $3, email = $4,
			status = $5, updated_at = $6
		WHERE id = $7`,
		f.Nome, f.CNPJ, f.Telefone, f.Email, f.Status, f.UpdatedAt, f.ID)
	if err != nil {
		return fmt.Errorf("erro ao atualizar fornecedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFornecedorNaoEncontrado
	}
	return nil
}

// Excluir implementa fornecedor.Repository.Excluir. Fornecedor com compras
// registradas é desativado em vez de removido.
func (r *FornecedorRepository) Excluir(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM fornecedores WHERE id = $1", id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return r.desativar(ctx, id)
		}
		return fmt.Errorf("erro ao excluir fornecedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFornecedorNaoEncontrado
	}
	return nil
}

func (r *FornecedorRepository) desativar(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE fornecedores SET status = $1, updated_at = $2 WHERE id = $3",
		fornecedor.StatusInativo, time.Now(), id)
	if err != nil {
		return fmt.Errorf("erro ao desativar fornecedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFornecedorNaoEncontrado
	}
	return nil
}

// Existe implementa fornecedor.Repository.Existe
func (r *FornecedorRepository) Existe(ctx context.Context, id string) (bool, error) {
	var existe bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM fornecedores WHERE id = $1)", id).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do fornecedor: %w", err)
	}
	return existe, nil
}
