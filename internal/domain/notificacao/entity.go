package notificacao

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tipo enumera os tipos de notificação
type Tipo string

const (
	TipoEstoqueBaixo    Tipo = "ESTOQUE_BAIXO"
	TipoEstoqueNegativo Tipo = "ESTOQUE_NEGATIVO"
	TipoValidadeProxima Tipo = "VALIDADE_PROXIMA"
	TipoContaAVencer    Tipo = "CONTA_A_VENCER"
)

// Notificacao é um aviso gerado pelo sistema para o operador
type Notificacao struct {
	ID           string    `json:"id"`
	Tipo         Tipo      `json:"tipo"`
	Mensagem     string    `json:"mensagem"`
	ReferenciaID string    `json:"referencia_id,omitempty"`
	Lida         bool      `json:"lida"`
	CreatedAt    time.Time `json:"created_at"`
}

// Nova cria uma nova notificação não lida
func Nova(tipo Tipo, mensagem, referenciaID string) *Notificacao {
	return &Notificacao{
		ID:           uuid.New().String(),
		Tipo:         tipo,
		Mensagem:     mensagem,
		ReferenciaID: referenciaID,
		Lida:         false,
		CreatedAt:    time.Now(),
	}
}

// Repository define a interface para operações de repositório de notificações
type Repository interface {
	Criar(ctx context.Context, n *Notificacao) error
	Listar(ctx context.Context, apenasNaoLidas bool, limit, offset int) ([]*Notificacao, error)
	MarcarLida(ctx context.Context, id string) error

	// ExistePara evita notificações duplicadas para a mesma referência e tipo
	// no mesmo dia
	ExistePara(ctx context.Context, tipo Tipo, referenciaID string, desde time.Time) (bool, error)
}
