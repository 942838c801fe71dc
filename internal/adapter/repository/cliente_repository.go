package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusprado/erp-suplementos/internal/domain/cliente"
)

// Erros específicos do repositório de clientes
var (
	ErrClienteNaoEncontrado = errors.New("cliente não encontrado")
)

// ClienteRepository implementa a interface cliente.Repository
type ClienteRepository struct {
	db *pgxpool.Pool
}

// NewClienteRepository cria uma nova instância de ClienteRepository
func NewClienteRepository(db *pgxpool.Pool) cliente.Repository {
	return &ClienteRepository{db: db}
}

// Criar implementa cliente.Repository.Criar
func (r *ClienteRepository) Criar(ctx context.Context, c *cliente.Cliente) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO clientes (
			id, nome, cpf, telefone, email, endereco, observacao, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Nome, c.CPF, c.Telefone, c.Email, c.Endereco, c.Observacao,
		c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao inserir cliente: %w", err)
	}
	return nil
}

// BuscarPorID implementa cliente.Repository.BuscarPorID
func (r *ClienteRepository) BuscarPorID(ctx context.Context, id string) (*cliente.Cliente, error) {
	var c cliente.Cliente
	err := r.db.QueryRow(ctx,
		`SELECT id, nome, cpf, telefone, email, endereco, observacao, status,
			created_at, updated_at
		FROM clientes WHERE id = $1`,
		id).Scan(
		&c.ID, &c.Nome, &c.CPF, &c.Telefone, &c.Email, &c.Endereco, &c.Observacao,
		&c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClienteNaoEncontrado
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}
	return &c, nil
}

// Listar implementa cliente.Repository.Listar
func (r *ClienteRepository) Listar(ctx context.Context, nome string, limit, offset int) ([]*cliente.Cliente, error) {
	query := `SELECT id, nome, cpf, telefone, email, endereco, observacao, status,
		created_at, updated_at
	FROM clientes WHERE 1=1`
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
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	clientes := make([]*cliente.Cliente, 0)
	for rows.Next() {
		var c cliente.Cliente
		if err := rows.Scan(
			&c.ID, &c.Nome, &c.CPF, &c.Telefone, &c.Email, &c.Endereco, &c.Observacao,
			&c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler cliente: %w", err)
		}
		clientes = append(clientes, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}
	return clientes, nil
}

// Atualizar implementa cliente.Repository.Atualizar
func (r *ClienteRepository) Atualizar(ctx context.Context, c *cliente.Cliente) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE clientes SET
			nome = $1, cpf = $2, telefone = $3, email = $4, endereco = $5,
			observacao = $6, status = $7, updated_at = $8
		WHERE id = $9`,
		c.Nome, c.CPF, c.Telefone, c.Email, c.Endereco,
		c.Observacao, c.Status, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrClienteNaoEncontrado
	}
	return nil
}

// Excluir implementa cliente.Repository.Excluir. Cliente com histórico de
// vendas ou pendências é desativado em vez de removido.
func (r *ClienteRepository) Excluir(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM clientes WHERE id = $1", id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return r.desativar(ctx, id)
		}
		return fmt.Errorf("erro ao excluir cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrClienteNaoEncontrado
	}
	return nil
}

func (r *ClienteRepository) desativar(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE clientes SET status = $1, updated_at = $2 WHERE id = $3",
		cliente.StatusInativo, time.Now(), id)
	if err != nil {
		return fmt.Errorf("erro ao desativar cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrClienteNaoEncontrado
	}
	return nil
}

// Existe implementa cliente.Repository.Existe
func (r *ClienteRepository) Existe(ctx context.Context, id string) (bool, error) {
	var existe bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM clientes WHERE id = $1)", id).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do cliente: %w", err)
	}
	return existe, nil
}

// MovimentosCredito implementa cliente.Repository.MovimentosCredito
func (r *ClienteRepository) MovimentosCredito(ctx context.Context, clienteID string) ([]cliente.MovimentoCredito, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, cliente_id, tipo, valor, descricao, created_at
		FROM creditos_clientes WHERE cliente_id = $1
		ORDER BY created_at ASC`,
		clienteID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar movimentos de crédito: %w", err)
	}
	defer rows.Close()

	var movimentos []cliente.MovimentoCredito
	for rows.Next() {
		var m cliente.MovimentoCredito
		if err := rows.Scan(&m.ID, &m.ClienteID, &m.Tipo, &m.Valor, &m.Descricao, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler movimento de crédito: %w", err)
		}
		movimentos = append(movimentos, m)
	}
	return movimentos, rows.Err()
}

// SaldoCredito implementa cliente.Repository.SaldoCredito
func (r *ClienteRepository) SaldoCredito(ctx context.Context, clienteID string) (float64, error) {
	var saldo float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(CASE WHEN tipo = 'ENTRADA' THEN valor ELSE -valor END), 0)
		FROM creditos_clientes WHERE cliente_id = $1`,
		clienteID).Scan(&saldo)
	if err != nil {
		return 0, fmt.Errorf("erro ao apurar saldo de crédito: %w", err)
	}
	return saldo, nil
}

// RegistrarMovimentoCredito implementa cliente.Repository.RegistrarMovimentoCredito
func (r *ClienteRepository) RegistrarMovimentoCredito(ctx context.Context, m *cliente.MovimentoCredito) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO creditos_clientes (id, cliente_id, tipo, valor, descricao, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.ClienteID, m.Tipo, m.Valor, m.Descricao, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao registrar movimento de crédito: %w", err)
	}
	return nil
}

// BuscarFidelizacao implementa cliente.Repository.BuscarFidelizacao
func (r *ClienteRepository) BuscarFidelizacao(ctx context.Context, clienteID string) (*cliente.Fidelizacao, error) {
	var f cliente.Fidelizacao
	err := r.db.QueryRow(ctx,
		"SELECT cliente_id, pontos, updated_at FROM fidelizacao WHERE cliente_id = $1",
		clienteID).Scan(&f.ClienteID, &f.Pontos, &f.UpdatedAt)
	if err == nil {
		return &f, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("erro ao buscar fidelização: %w", err)
	}

	// Perfil inexistente nasce zerado
	f = cliente.Fidelizacao{ClienteID: clienteID, Pontos: 0, UpdatedAt: time.Now()}
	_, err = r.db.Exec(ctx,
		`INSERT INTO fidelizacao (cliente_id, pontos, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (cliente_id) DO NOTHING`,
		f.ClienteID, f.Pontos, f.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar fidelização: %w", err)
	}
	return &f, nil
}
