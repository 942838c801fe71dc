package cliente

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNomeVazio                 = errors.New("nome não pode ser vazio")
	ErrValorInvalido             = errors.New("valor deve ser maior que zero")
	ErrSaldoCreditoInsuficiente  = errors.New("saldo de crédito insuficiente")
	ErrPontosInsuficientes       = errors.New("saldo de pontos insuficiente")
)

// Status representa o estado do cliente
type Status string

const (
	StatusAtivo   Status = "ATIVO"
	StatusInativo Status = "INATIVO"
)

// Cliente representa um cliente da loja
type Cliente struct {
	ID         string    `json:"id"`
	Nome       string    `json:"nome"`
	CPF        string    `json:"cpf"`
	Telefone   string    `json:"telefone"`
	Email      string    `json:"email"`
	Endereco   string    `json:"endereco"`
	Observacao string    `json:"observacao"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NovoCliente cria um novo cliente
func NovoCliente(nome, cpf, telefone, email string) (*Cliente, error) {
	if nome == "" {
		return nil, ErrNomeVazio
	}

	now := time.Now()
	return &Cliente{
		ID:        uuid.New().String(),
		Nome:      nome,
		CPF:       cpf,
		Telefone:  telefone,
		Email:     email,
		Status:    StatusAtivo,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Patch lista os campos mutáveis de um cliente
type Patch struct {
	Nome       *string
	CPF        *string
	Telefone   *string
	Email      *string
	Endereco   *string
	Observacao *string
}

// Aplicar aplica um patch parcial ao cliente
func (c *Cliente) Aplicar(patch Patch) error {
	if patch.Nome != nil {
		if *patch.Nome == "" {
			return ErrNomeVazio
		}
		c.Nome = *patch.Nome
	}
	if patch.CPF != nil {
		c.CPF = *patch.CPF
	}
	if patch.Telefone != nil {
		c.Telefone = *patch.Telefone
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Endereco != nil {
		c.Endereco = *patch.Endereco
	}
	if patch.Observacao != nil {
		c.Observacao = *patch.Observacao
	}
	c.UpdatedAt = time.Now()
	return nil
}

// TipoMovimentoCredito indica a direção de um movimento no razão de crédito
type TipoMovimentoCredito string

const (
	CreditoEntrada TipoMovimentoCredito = "ENTRADA"
	CreditoSaida   TipoMovimentoCredito = "SAIDA"
)

// MovimentoCredito é uma linha do razão de crédito do cliente. O razão é
// somente-apêndice: o saldo nunca é atualizado em lugar algum, sempre
// recalculado.
type MovimentoCredito struct {
	ID        string               `json:"id"`
	ClienteID string               `json:"cliente_id"`
	Tipo      TipoMovimentoCredito `json:"tipo"`
	Valor     float64              `json:"valor"`
	Descricao string               `json:"descricao"`
	CreatedAt time.Time            `json:"created_at"`
}

// NovoMovimentoCredito cria um novo movimento no razão de crédito
func NovoMovimentoCredito(clienteID string, tipo TipoMovimentoCredito, valor float64, descricao string) (*MovimentoCredito, error) {
	if valor <= 0 {
		return nil, ErrValorInvalido
	}
	return &MovimentoCredito{
		ID:        uuid.New().String(),
		ClienteID: clienteID,
		Tipo:      tipo,
		Valor:     valor,
		Descricao: descricao,
		CreatedAt: time.Now(),
	}, nil
}

// SaldoCredito reduz o razão de crédito ao saldo atual
func SaldoCredito(movimentos []MovimentoCredito) float64 {
	var saldo float64
	for _, m := range movimentos {
		switch m.Tipo {
		case CreditoEntrada:
			saldo += m.Valor
		case CreditoSaida:
			saldo -= m.Valor
		}
	}
	return saldo
}

// Fidelizacao guarda o saldo de pontos de um cliente (um-para-um)
type Fidelizacao struct {
	ClienteID string    `json:"cliente_id"`
	Pontos    int       `json:"pontos"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PontosAcumulados converte um total em reais em pontos: um ponto por real,
// truncado
func PontosAcumulados(total float64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(total))
}
