package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusprado/erp-suplementos/internal/domain/notificacao"
)

// Erros específicos do repositório de notificações
var (
	ErrNotificacaoNaoEncontrada = errors.New("notificação não encontrada")
)

// NotificacaoRepository implementa a interface notificacao.Repository
type NotificacaoRepository struct {
	db *pgxpool.Pool
}

// NewNotificacaoRepository cria uma nova instância de NotificacaoRepository
func NewNotificacaoRepository(db *pgxpool.Pool) notificacao.Repository {
	return &NotificacaoRepository{db: db}
}

// Criar implementa notificacao.Repository.Criar
func (r *NotificacaoRepository) Criar(ctx context.Context, n *notificacao.Notificacao) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO notificacoes (id, tipo, mensagem, referencia_id, lida, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.Tipo, n.Mensagem, n.ReferenciaID, n.Lida, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao inserir notificação: %w", err)
	}
	return nil
}

// Listar implementa notificacao.Repository.Listar
func (r *NotificacaoRepository) Listar(ctx context.Context, apenasNaoLidas bool, limit, offset int) ([]*notificacao.Notificacao, error) {
	query := `SELECT id, tipo, mensagem, referencia_id, lida, created_at
	FROM notificacoes WHERE 1=1`
	args := []interface{}{}

	if apenasNaoLidas {
		query += " AND lida = false"
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar notificações: %w", err)
	}
	defer rows.Close()

	notificacoes := make([]*notificacao.Notificacao, 0)
	for rows.Next() {
		var n notificacao.Notificacao
		if err := rows.Scan(&n.ID, &n.Tipo, &n.Mensagem, &n.ReferenciaID, &n.Lida, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler notificação: %w", err)
		}
		notificacoes = append(notificacoes, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}
	return notificacoes, nil
}

// MarcarLida implementa notificacao.Repository.MarcarLida
func (r *NotificacaoRepository) MarcarLida(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE notificacoes SET lida = true WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao marcar notificação como lida: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificacaoNaoEncontrada
	}
	return nil
}

// ExistePara implementa notificacao.Repository.ExistePara
func (r *NotificacaoRepository) ExistePara(ctx context.Context, tipo notificacao.Tipo, referenciaID string, desde time.Time) (bool, error) {
	var existe bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM notificacoes
			WHERE tipo = $1 AND referencia_id = $2 AND created_at >= $3
		)`,
		tipo, referenciaID, desde).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar notificação existente: %w", err)
	}
	return existe, nil
}
