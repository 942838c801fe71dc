package venda

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSemPagamentos         = errors.New("a venda deve possuir ao menos um pagamento")
	ErrSemItens              = errors.New("a venda deve possuir ao menos um item")
	ErrQuantidadeInvalida    = errors.New("quantidade do item deve ser maior que zero")
	ErrPagamentoInsuficiente = errors.New("pagamento insuficiente para o total da venda")
	ErrCaixaFechado          = errors.New("não há sessão de caixa aberta")
	ErrVendaCancelada        = errors.New("a venda já está cancelada")
	ErrPontosSemCliente      = errors.New("resgate de pontos exige um cliente identificado")
	ErrFiadoSemCliente       = errors.New("venda fiado exige um cliente identificado")
	ErrCreditoSemCliente     = errors.New("crédito de loja exige um cliente identificado")
	ErrMetodoInvalido        = errors.New("método de pagamento inválido")
)

// Tolerancia absorve ruído de ponto flutuante nas comparações monetárias
const Tolerancia = 0.01

// ValorPonto é o valor de resgate de um ponto de fidelidade, em reais
const ValorPonto = 0.05

// Status representa o estado da venda
type Status string

const (
	StatusConcluida Status = "CONCLUIDA"
	StatusCancelada Status = "CANCELADA"
)

// DestinoTroco indica para onde o troco da venda é direcionado
type DestinoTroco string

const (
	TrocoDinheiro    DestinoTroco = "DINHEIRO"
	TrocoPix         DestinoTroco = "PIX"
	TrocoCreditoLoja DestinoTroco = "CREDITO_LOJA"
)

// ItemVenda é uma linha da venda com o preço congelado no momento da compra
type ItemVenda struct {
	ID            string  `json:"id"`
	VendaID       string  `json:"venda_id"`
	ProdutoID     string  `json:"produto_id"`
	Quantidade    int     `json:"quantidade"`
	PrecoUnitario float64 `json:"preco_unitario"`
}

// Pagamento é uma parcela do pagamento da venda em um método específico
type Pagamento struct {
	ID            string          `json:"id"`
	VendaID       string          `json:"venda_id"`
	Metodo        MetodoPagamento `json:"metodo"`
	Valor         float64         `json:"valor"`
	Parcelas      int             `json:"parcelas,omitempty"`
	ValorRecebido float64         `json:"valor_recebido,omitempty"`
}

// Venda representa uma venda concluída ou cancelada
type Venda struct {
	ID             string       `json:"id"`
	ClienteID      *string      `json:"cliente_id"`
	UsuarioID      string       `json:"usuario_id"`
	Itens          []ItemVenda  `json:"itens"`
	Pagamentos     []Pagamento  `json:"pagamentos"`
	TotalBruto     float64      `json:"total_bruto"`
	DescontoManual float64      `json:"desconto_manual"`
	PontosUsados   int          `json:"pontos_usados"`
	DescontoPontos float64      `json:"desconto_pontos"`
	TotalLiquido   float64      `json:"total_liquido"`
	Troco          float64      `json:"troco"`
	DestinoTroco   DestinoTroco `json:"destino_troco"`
	Status         Status       `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
}

// NovaVenda cria o cabeçalho de uma nova venda concluída
func NovaVenda(clienteID *string, usuarioID string) *Venda {
	return &Venda{
		ID:           uuid.New().String(),
		ClienteID:    clienteID,
		UsuarioID:    usuarioID,
		DestinoTroco: TrocoDinheiro,
		Status:       StatusConcluida,
		CreatedAt:    time.Now(),
	}
}

// Cancelar marca a venda como cancelada. O registro nunca é removido.
func (v *Venda) Cancelar() error {
	if v.Status == StatusCancelada {
		return ErrVendaCancelada
	}
	v.Status = StatusCancelada
	return nil
}

// SomaPagamentos soma os valores declarados de todos os pagamentos
func (v *Venda) SomaPagamentos() float64 {
	var soma float64
	for _, p := range v.Pagamentos {
		soma += p.Valor
	}
	return soma
}

// SomaDinheiro soma apenas os pagamentos em dinheiro
func (v *Venda) SomaDinheiro() float64 {
	var soma float64
	for _, p := range v.Pagamentos {
		if p.Metodo == MetodoDinheiro {
			soma += p.Valor
		}
	}
	return soma
}

// TemPagamento verifica se a venda possui algum pagamento no método informado
func (v *Venda) TemPagamento(metodo MetodoPagamento) bool {
	for _, p := range v.Pagamentos {
		if p.Metodo == metodo {
			return true
		}
	}
	return false
}

// CalcularTotais calcula o total bruto, os descontos e o total líquido da
// venda. O desconto total nunca ultrapassa o total bruto.
func (v *Venda) CalcularTotais() {
	var bruto float64
	for _, item := range v.Itens {
		bruto += item.PrecoUnitario * float64(item.Quantidade)
	}
	v.TotalBruto = bruto

	v.DescontoPontos = float64(v.PontosUsados) * ValorPonto

	desconto := v.DescontoPontos + v.DescontoManual
	if desconto > bruto {
		desconto = bruto
	}
	v.TotalLiquido = bruto - desconto
}

// PontosAcumulados calcula os pontos de fidelidade gerados pela venda:
// um ponto por real do total líquido, truncado
func (v *Venda) PontosAcumulados() int {
	if v.TotalLiquido <= 0 {
		return 0
	}
	return int(math.Floor(v.TotalLiquido))
}
