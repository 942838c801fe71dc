package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusprado/erp-suplementos/internal/domain/usuario"
)

// Erros específicos do repositório de usuários
var (
	ErrUsuarioNaoEncontrado = errors.New("usuário não encontrado")
)

// UsuarioRepository implementa a interface usuario.Repository
type UsuarioRepository struct {
	db *pgxpool.Pool
}

// NewUsuarioRepository cria uma nova instância de UsuarioRepository
func NewUsuarioRepository(db *pgxpool.Pool) usuario.Repository {
	return &UsuarioRepository{db: db}
}

// Criar implementa usuario.Repository.Criar
func (r *UsuarioRepository) Criar(ctx context.Context, u *usuario.Usuario) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO usuarios (id, nome, email, senha_hash, perfil, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Nome, u.Email, u.SenhaHash, u.Perfil, u.Ativo, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao inserir usuário: %w", err)
	}
	return nil
}

// BuscarPorID implementa usuario.Repository.BuscarPorID
func (r *UsuarioRepository) BuscarPorID(ctx context.Context, id string) (*usuario.Usuario, error) {
	return r.buscar(ctx, "id = $1", id)
}

// BuscarPorEmail implementa usuario.Repository.BuscarPorEmail
func (r *UsuarioRepository) BuscarPorEmail(ctx context.Context, email string) (*usuario.Usuario, error) {
	return r.buscar(ctx, "email = $1", email)
}

func (r *UsuarioRepository) buscar(ctx context.Context, condicao string, arg interface{}) (*usuario.Usuario, error) {
	var u usuario.Usuario
	err := r.db.QueryRow(ctx,
		`SELECT id, nome, email, senha_hash, perfil, ativo, created_at, updated_at
		FROM usuarios WHERE `+condicao,
		arg).Scan(&u.ID, &u.Nome, &u.Email, &u.SenhaHash, &u.Perfil, &u.Ativo, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUsuarioNaoEncontrado
		}
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}
	return &u, nil
}

// Listar implementa usuario.Repository.Listar
func (r *UsuarioRepository) Listar(ctx context.Context, limit, offset int) ([]*usuario.Usuario, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, nome, email, senha_hash, perfil, ativo, created_at, updated_at
		FROM usuarios ORDER BY nome ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar usuários: %w", err)
	}
	defer rows.Close()

	usuarios := make([]*usuario.Usuario, 0)
	for rows.Next() {
		var u usuario.Usuario
		if err := rows.Scan(&u.ID, &u.Nome, &u.Email, &u.SenhaHash, &u.Perfil, &u.Ativo, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler usuário: %w", err)
		}
		usuarios = append(usuarios, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}
	return usuarios, nil
}

// Atualizar implementa usuario.Repository.Atualizar
func (r *UsuarioRepository) Atualizar(ctx context.Context, u *usuario.Usuario) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE usuarios SET nome = $1, email = $2, senha_hash = $3, perfil = $4,
			ativo = $5, updated_at = $6
		WHERE id = $7`,
		u.Nome, u.Email, u.SenhaHash, u.Perfil, u.Ativo, u.UpdatedAt, u.ID)
	if err != nil {
		return fmt.Errorf("erro ao atualizar usuário: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUsuarioNaoEncontrado
	}
	return nil
}
