package fornecedor

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNomeVazio = errors.New("nome não pode ser vazio")
)

// Status representa o estado do fornecedor
type Status string

const (
	StatusAtivo   Status = "ATIVO"
	StatusInativo Status = "INATIVO"
)

// Fornecedor representa um fornecedor de mercadorias
type Fornecedor struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	CNPJ      string    `json:"cnpj"`
	Telefone  string    `json:"telefone"`
	Email     string    `json:"email"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NovoFornecedor cria um novo fornecedor
func NovoFornecedor(nome, cnpj, telefone, email string) (*Fornecedor, error) {
	if nome == "" {
		return nil, ErrNomeVazio
	}

	now := time.Now()
	return &Fornecedor{
		ID:        uuid.New().String(),
		Nome:      nome,
		CNPJ:      cnpj,
		Telefone:  telefone,
		Email:     email,
		Status:    StatusAtivo,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Patch lista os campos mutáveis de um fornecedor
type Patch struct {
	Nome     *string
	CNPJ     *string
	Telefone *string
	Email    *string
}

// Aplicar aplica um patch parcial ao fornecedor
func (f *Fornecedor) Aplicar(patch Patch) error {
	if patch.Nome != nil {
		if *patch.Nome == "" {
			return ErrNomeVazio
		}
		f.Nome = *patch.Nome
	}
	if patch.CNPJ != nil {
		f.CNPJ = *patch.CNPJ
	}
	if patch.Telefone != nil {
		f.Telefone = *patch.Telefone
	}
	if patch.Email != nil {
		f.Email = *patch.Email
	}
	f.UpdatedAt = time.Now()
	return nil
}

// Repository define a interface para operações de repositório de fornecedores
type Repository interface {
	Criar(ctx context.Context, f *Fornecedor) error
	BuscarPorID(ctx context.Context, id string) (*Fornecedor, error)
	Listar(ctx context.Context, nome string, limit, offset int) ([]*Fornecedor, error)
	Atualizar(ctx context.Context, f *Fornecedor) error
	Excluir(ctx context.Context, id string) error
	Existe(ctx context.Context, id string) (bool, error)
}
