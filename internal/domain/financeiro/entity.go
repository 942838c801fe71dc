package financeiro

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDescricaoVazia      = errors.New("descrição não pode ser vazia")
	ErrValorInvalido       = errors.New("valor deve ser maior que zero")
	ErrLancamentoPago      = errors.New("o lançamento já está pago")
	ErrPagamentoExcedente  = errors.New("valor pago não pode exceder o saldo restante")
	ErrFormaInvalida       = errors.New("forma de pagamento inválida")
)

// Tolerancia absorve ruído de ponto flutuante nas comparações monetárias
const Tolerancia = 0.01

// Tipo indica a direção do lançamento
type Tipo string

const (
	TipoReceita Tipo = "RECEITA"
	TipoDespesa Tipo = "DESPESA"
)

// Status representa o estado do lançamento
type Status string

const (
	StatusPendente Status = "PENDENTE"
	StatusPago     Status = "PAGO"
)

// Recorrencia indica o período de repetição do lançamento
type Recorrencia string

const (
	RecorrenciaNenhuma Recorrencia = "NENHUMA"
	RecorrenciaSemanal Recorrencia = "SEMANAL"
	RecorrenciaMensal  Recorrencia = "MENSAL"
	RecorrenciaAnual   Recorrencia = "ANUAL"
)

// Lancamento é uma conta a receber (receita) ou a pagar (despesa). Pagamento
// parcial é estado de primeira classe: Valor é o total devido e ValorPago o
// acumulado já quitado.
type Lancamento struct {
	ID             string      `json:"id"`
	Tipo           Tipo        `json:"tipo"`
	Descricao      string      `json:"descricao"`
	Valor          float64     `json:"valor"`
	ValorPago      float64     `json:"valor_pago"`
	Status         Status      `json:"status"`
	Vencimento     *time.Time  `json:"vencimento"`
	FormaPagamento string      `json:"forma_pagamento,omitempty"`
	ClienteID      *string     `json:"cliente_id"`
	VendaID        *string     `json:"venda_id"`
	CompraID       *string     `json:"compra_id"`
	Recorrencia    Recorrencia `json:"recorrencia"`
	OrigemID       *string     `json:"origem_id"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// NovoLancamento cria um novo lançamento pendente
func NovoLancamento(tipo Tipo, descricao string, valor float64, vencimento *time.Time) (*Lancamento, error) {
	if descricao == "" {
		return nil, ErrDescricaoVazia
	}
	if valor <= 0 {
		return nil, ErrValorInvalido
	}

	now := time.Now()
	return &Lancamento{
		ID:          uuid.New().String(),
		Tipo:        tipo,
		Descricao:   descricao,
		Valor:       valor,
		Status:      StatusPendente,
		Vencimento:  vencimento,
		Recorrencia: RecorrenciaNenhuma,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SaldoRestante é quanto ainda falta quitar do lançamento
func (l *Lancamento) SaldoRestante() float64 {
	return l.Valor - l.ValorPago
}

// EstaQuitado verifica se o lançamento foi integralmente pago, dentro da
// tolerância de arredondamento
func (l *Lancamento) EstaQuitado() bool {
	return l.SaldoRestante() <= Tolerancia
}

// RegistrarPagamento acumula um pagamento parcial ou total sobre o
// lançamento, marcando-o como pago quando o saldo zera. O acumulado nunca
// ultrapassa o valor devido além da tolerância.
func (l *Lancamento) RegistrarPagamento(valor float64) error {
	if valor <= 0 {
		return ErrValorInvalido
	}
	if l.Status == StatusPago {
		return ErrLancamentoPago
	}
	if valor > l.SaldoRestante()+Tolerancia {
		return ErrPagamentoExcedente
	}

	l.ValorPago += valor
	if l.EstaQuitado() {
		l.Status = StatusPago
	}
	l.UpdatedAt = time.Now()
	return nil
}

// ProximaRecorrencia clona o lançamento para o próximo período, pendente e
// zerado, referenciando este como origem. Retorna nil quando o lançamento
// não é recorrente.
func (l *Lancamento) ProximaRecorrencia() *Lancamento {
	if l.Recorrencia == RecorrenciaNenhuma || l.Vencimento == nil {
		return nil
	}

	vencimento := *l.Vencimento
	switch l.Recorrencia {
	case RecorrenciaSemanal:
		vencimento = vencimento.AddDate(0, 0, 7)
	case RecorrenciaMensal:
		vencimento = vencimento.AddDate(0, 1, 0)
	case RecorrenciaAnual:
		vencimento = vencimento.AddDate(1, 0, 0)
	}

	origem := l.ID
	now := time.Now()
	return &Lancamento{
		ID:          uuid.New().String(),
		Tipo:        l.Tipo,
		Descricao:   l.Descricao,
		Valor:       l.Valor,
		Status:      StatusPendente,
		Vencimento:  &vencimento,
		ClienteID:   l.ClienteID,
		Recorrencia: l.Recorrencia,
		OrigemID:    &origem,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HistoricoPagamento registra cada pagamento aplicado a um lançamento
type HistoricoPagamento struct {
	ID             string    `json:"id"`
	LancamentoID   string    `json:"lancamento_id"`
	Valor          float64   `json:"valor"`
	FormaPagamento string    `json:"forma_pagamento"`
	DataPagamento  time.Time `json:"data_pagamento"`
}

// NovoHistoricoPagamento cria um registro de pagamento
func NovoHistoricoPagamento(lancamentoID string, valor float64, formaPagamento string) *HistoricoPagamento {
	return &HistoricoPagamento{
		ID:             uuid.New().String(),
		LancamentoID:   lancamentoID,
		Valor:          valor,
		FormaPagamento: formaPagamento,
		DataPagamento:  time.Now(),
	}
}
