package dto

// AbrirCaixaRequest representa a requisição de abertura de sessão de caixa
type AbrirCaixaRequest struct {
	SaldoInicial float64 `json:"saldo_inicial"`
}

// MovimentacaoCaixaRequest representa um movimento avulso de caixa
type MovimentacaoCaixaRequest struct {
	Tipo           string  `json:"tipo" binding:"required,oneof=ENTRADA SAIDA SANGRIA SUPRIMENTO"`
	FormaPagamento string  `json:"forma_pagamento"`
	Valor          float64 `json:"valor" binding:"required,gt=0"`
	Descricao      string  `json:"descricao"`
}

// FecharCaixaRequest representa a requisição de fechamento da sessão
type FecharCaixaRequest struct {
	SaldoDeclarado float64 `json:"saldo_declarado"`
}
