package venda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessarPagamentoDinheiro(t *testing.T) {
	t.Run("com troco", func(t *testing.T) {
		r, err := ProcessarPagamento(Pagamento{Metodo: MetodoDinheiro, Valor: 80, ValorRecebido: 100})

		require.NoError(t, err)
		assert.Equal(t, ProcessamentoAprovado, r.Status)
		assert.InDelta(t, 80.0, r.ValorLiquido, 0.001)
		assert.InDelta(t, 20.0, r.Troco, 0.001)
	})

	t.Run("valor recebido omitido assume o valor exato", func(t *testing.T) {
		r, err := ProcessarPagamento(Pagamento{Metodo: MetodoDinheiro, Valor: 80})

		require.NoError(t, err)
		assert.Zero(t, r.Troco)
	})

	t.Run("recebido abaixo do valor é rejeitado", func(t *testing.T) {
		_, err := ProcessarPagamento(Pagamento{Metodo: MetodoDinheiro, Valor: 80, ValorRecebido: 70})
		assert.ErrorIs(t, err, ErrPagamentoInsuficiente)
	})

	t.Run("diferença dentro da tolerância passa", func(t *testing.T) {
		_, err := ProcessarPagamento(Pagamento{Metodo: MetodoDinheiro, Valor: 80, ValorRecebido: 79.995})
		assert.NoError(t, err)
	})
}

func TestProcessarPagamentoCartao(t *testing.T) {
	t.Run("débito desconta a taxa da operadora", func(t *testing.T) {
		r, err := ProcessarPagamento(Pagamento{Metodo: MetodoDebito, Valor: 100})

		require.NoError(t, err)
		assert.InDelta(t, 1.99, r.Taxa, 0.001)
		assert.InDelta(t, 98.01, r.ValorLiquido, 0.001)
	})

	t.Run("crédito à vista a loja absorve a taxa", func(t *testing.T) {
		r, err := ProcessarPagamento(Pagamento{Metodo: MetodoCredito, Valor: 100, Parcelas: 1})

		require.NoError(t, err)
		assert.InDelta(t, 3.50, r.Taxa, 0.001)
		assert.InDelta(t, 96.50, r.ValorLiquido, 0.001)
	})

	t.Run("crédito parcelado a loja recebe o valor integral", func(t *testing.T) {
		r, err := ProcessarPagamento(Pagamento{Metodo: MetodoCredito, Valor: 100, Parcelas: 3})

		require.NoError(t, err)
		assert.Zero(t, r.Taxa)
		assert.InDelta(t, 100.0, r.ValorLiquido, 0.001)
	})
}

func TestProcessarPagamentoOutrosMetodos(t *testing.T) {
	t.Run("pix aprova sem taxa", func(t *testing.T) {
		r, err := ProcessarPagamento(Pagamento{Metodo: MetodoPix, Valor: 55})

		require.NoError(t, err)
		assert.Equal(t, ProcessamentoAprovado, r.Status)
		assert.InDelta(t, 55.0, r.ValorLiquido, 0.001)
	})

	t.Run("crédito de loja fica pendente de validação de saldo", func(t *testing.T) {
		r, err := ProcessarPagamento(Pagamento{Metodo: MetodoCreditoLoja, Valor: 40})

		require.NoError(t, err)
		assert.Equal(t, ProcessamentoPendente, r.Status)
	})

	t.Run("fiado não processa dinheiro", func(t *testing.T) {
		_, err := ProcessarPagamento(Pagamento{Metodo: MetodoFiado, Valor: 40})
		assert.ErrorIs(t, err, ErrMetodoNaoProcessavel)
	})

	t.Run("método desconhecido", func(t *testing.T) {
		_, err := ProcessarPagamento(Pagamento{Metodo: "CHEQUE", Valor: 40})
		assert.ErrorIs(t, err, ErrMetodoInvalido)
	})
}

func TestCalcularTotais(t *testing.T) {
	v := NovaVenda(nil, "op1")
	v.Itens = []ItemVenda{
		{ProdutoID: "p1", Quantidade: 2, PrecoUnitario: 50},
		{ProdutoID: "p2", Quantidade: 1, PrecoUnitario: 30},
	}

	t.Run("sem descontos", func(t *testing.T) {
		v.CalcularTotais()

		assert.InDelta(t, 130.0, v.TotalBruto, 0.001)
		assert.InDelta(t, 130.0, v.TotalLiquido, 0.001)
	})

	t.Run("pontos e desconto manual abatem o líquido", func(t *testing.T) {
		v.PontosUsados = 100
		v.DescontoManual = 10
		v.CalcularTotais()

		assert.InDelta(t, 5.0, v.DescontoPontos, 0.001)
		assert.InDelta(t, 115.0, v.TotalLiquido, 0.001)
	})

	t.Run("desconto nunca passa do bruto", func(t *testing.T) {
		v.DescontoManual = 500
		v.CalcularTotais()

		assert.Zero(t, v.TotalLiquido)
	})
}

func TestPontosAcumulados(t *testing.T) {
	v := NovaVenda(nil, "op1")
	v.TotalLiquido = 129.90

	assert.Equal(t, 129, v.PontosAcumulados(), "um ponto por real, truncado")

	v.TotalLiquido = 0
	assert.Zero(t, v.PontosAcumulados())
}

func TestCancelar(t *testing.T) {
	v := NovaVenda(nil, "op1")

	require.NoError(t, v.Cancelar())
	assert.Equal(t, StatusCancelada, v.Status)
	assert.ErrorIs(t, v.Cancelar(), ErrVendaCancelada)
}

func TestSomaDinheiro(t *testing.T) {
	v := NovaVenda(nil, "op1")
	v.Pagamentos = []Pagamento{
		{Metodo: MetodoDinheiro, Valor: 30},
		{Metodo: MetodoPix, Valor: 50},
		{Metodo: MetodoDinheiro, Valor: 20},
	}

	assert.InDelta(t, 50.0, v.SomaDinheiro(), 0.001)
	assert.InDelta(t, 100.0, v.SomaPagamentos(), 0.001)
	assert.True(t, v.TemPagamento(MetodoPix))
	assert.False(t, v.TemPagamento(MetodoFiado))
}
