package caixa

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessaoJaAberta       = errors.New("já existe uma sessão de caixa aberta")
	ErrSessaoFechada        = errors.New("a sessão de caixa está fechada")
	ErrSessaoNaoAberta      = errors.New("não há sessão de caixa aberta")
	ErrValorInvalido        = errors.New("valor deve ser maior que zero")
	ErrTipoInvalido         = errors.New("tipo de movimentação inválido")
	ErrSaldoInicialNegativo = errors.New("saldo inicial não pode ser negativo")
)

// Status representa o estado da sessão de caixa
type Status string

const (
	StatusAberto  Status = "ABERTO"
	StatusFechado Status = "FECHADO"
)

// TipoMovimentacao enumera os tipos de movimento do caixa
type TipoMovimentacao string

const (
	MovimentacaoEntrada    TipoMovimentacao = "ENTRADA"
	MovimentacaoSaida      TipoMovimentacao = "SAIDA"
	MovimentacaoSangria    TipoMovimentacao = "SANGRIA"
	MovimentacaoSuprimento TipoMovimentacao = "SUPRIMENTO"
)

// TipoValido verifica se o tipo de movimentação é conhecido
func TipoValido(t TipoMovimentacao) bool {
	switch t {
	case MovimentacaoEntrada, MovimentacaoSaida, MovimentacaoSangria, MovimentacaoSuprimento:
		return true
	}
	return false
}

// FormaDinheiro marca movimentos em espécie, os únicos que afetam a gaveta
const FormaDinheiro = "DINHEIRO"

// Movimentacao é uma linha do razão da sessão de caixa
type Movimentacao struct {
	ID             string           `json:"id"`
	SessaoID       string           `json:"sessao_id"`
	Tipo           TipoMovimentacao `json:"tipo"`
	FormaPagamento string           `json:"forma_pagamento"`
	Valor          float64          `json:"valor"`
	Descricao      string           `json:"descricao"`
	CreatedAt      time.Time        `json:"created_at"`
}

// NovaMovimentacao cria um novo movimento de caixa
func NovaMovimentacao(sessaoID string, tipo TipoMovimentacao, formaPagamento string, valor float64, descricao string) (*Movimentacao, error) {
	if !TipoValido(tipo) {
		return nil, ErrTipoInvalido
	}
	if valor <= 0 {
		return nil, ErrValorInvalido
	}
	return &Movimentacao{
		ID:             uuid.New().String(),
		SessaoID:       sessaoID,
		Tipo:           tipo,
		FormaPagamento: formaPagamento,
		Valor:          valor,
		Descricao:      descricao,
		CreatedAt:      time.Now(),
	}, nil
}

// Sessao é uma sessão de caixa (gaveta). O saldo nunca é mantido como
// acumulador: é sempre recalculado a partir do razão de movimentos.
type Sessao struct {
	ID             string     `json:"id"`
	UsuarioID      string     `json:"usuario_id"`
	Status         Status     `json:"status"`
	SaldoInicial   float64    `json:"saldo_inicial"`
	SaldoDeclarado *float64   `json:"saldo_declarado"`
	SaldoCalculado *float64   `json:"saldo_calculado"`
	Divergencia    *float64   `json:"divergencia"`
	AbertoEm       time.Time  `json:"aberto_em"`
	FechadoEm      *time.Time `json:"fechado_em"`
}

// NovaSessao abre uma nova sessão de caixa
func NovaSessao(usuarioID string, saldoInicial float64) (*Sessao, error) {
	if saldoInicial < 0 {
		return nil, ErrSaldoInicialNegativo
	}
	return &Sessao{
		ID:           uuid.New().String(),
		UsuarioID:    usuarioID,
		Status:       StatusAberto,
		SaldoInicial: saldoInicial,
		AbertoEm:     time.Now(),
	}, nil
}

// EstaAberta verifica se a sessão está aberta
func (s *Sessao) EstaAberta() bool {
	return s.Status == StatusAberto
}

// SaldoCalculadoDe reduz o razão de movimentos ao saldo em espécie da gaveta:
// saldo inicial mais entradas e suprimentos em dinheiro, menos saídas e
// sangrias em dinheiro.
func SaldoCalculadoDe(saldoInicial float64, movimentos []Movimentacao) float64 {
	saldo := saldoInicial
	for _, m := range movimentos {
		if m.FormaPagamento != FormaDinheiro {
			continue
		}
		switch m.Tipo {
		case MovimentacaoEntrada, MovimentacaoSuprimento:
			saldo += m.Valor
		case MovimentacaoSaida, MovimentacaoSangria:
			saldo -= m.Valor
		}
	}
	return saldo
}

// Fechar encerra a sessão registrando o saldo calculado, o declarado pelo
// operador e a divergência com sinal entre os dois.
func (s *Sessao) Fechar(saldoDeclarado float64, movimentos []Movimentacao) error {
	if !s.EstaAberta() {
		return ErrSessaoFechada
	}

	calculado := SaldoCalculadoDe(s.SaldoInicial, movimentos)
	divergencia := saldoDeclarado - calculado
	now := time.Now()

	s.Status = StatusFechado
	s.SaldoCalculado = &calculado
	s.SaldoDeclarado = &saldoDeclarado
	s.Divergencia = &divergencia
	s.FechadoEm = &now
	return nil
}
