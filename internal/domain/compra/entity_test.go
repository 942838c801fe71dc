package compra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNovaCompra(t *testing.T) {
	data := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("total derivado dos itens", func(t *testing.T) {
		c, err := NovaCompra("f1", "NF-100", data, []ItemCompra{
			{ProdutoID: "p1", Quantidade: 10, CustoUnitario: 45.50},
			{ProdutoID: "p2", Quantidade: 3, CustoUnitario: 20},
		})

		require.NoError(t, err)
		assert.InDelta(t, 515.0, c.Total, 0.001)
		for _, item := range c.Itens {
			assert.Equal(t, c.ID, item.CompraID)
			assert.NotEmpty(t, item.ID)
		}
	})

	t.Run("sem itens", func(t *testing.T) {
		_, err := NovaCompra("f1", "NF-100", data, nil)
		assert.ErrorIs(t, err, ErrSemItens)
	})

	t.Run("quantidade inválida", func(t *testing.T) {
		_, err := NovaCompra("f1", "NF-100", data, []ItemCompra{{ProdutoID: "p1", Quantidade: 0}})
		assert.ErrorIs(t, err, ErrQuantidadeInvalida)
	})

	t.Run("custo negativo", func(t *testing.T) {
		_, err := NovaCompra("f1", "NF-100", data, []ItemCompra{{ProdutoID: "p1", Quantidade: 1, CustoUnitario: -5}})
		assert.ErrorIs(t, err, ErrCustoInvalido)
	})
}

func TestGerarParcelas(t *testing.T) {
	primeira := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	t.Run("divide em parcelas iguais espaçadas em dias", func(t *testing.T) {
		parcelas, err := GerarParcelas(300, 3, 30, false, primeira)

		require.NoError(t, err)
		require.Len(t, parcelas, 3)
		for i, p := range parcelas {
			assert.Equal(t, i+1, p.Numero)
			assert.InDelta(t, 100.0, p.Valor, 0.001)
			assert.Equal(t, primeira.AddDate(0, 0, 30*i), p.Vencimento)
		}
	})

	t.Run("última parcela absorve o arredondamento", func(t *testing.T) {
		parcelas, err := GerarParcelas(100, 3, 30, false, primeira)

		require.NoError(t, err)
		require.Len(t, parcelas, 3)
		assert.InDelta(t, 33.33, parcelas[0].Valor, 0.001)
		assert.InDelta(t, 33.33, parcelas[1].Valor, 0.001)
		assert.InDelta(t, 33.34, parcelas[2].Valor, 0.001)

		var soma float64
		for _, p := range parcelas {
			soma += p.Valor
		}
		assert.InDelta(t, 100.0, soma, 0.001)
	})

	t.Run("intervalo em meses", func(t *testing.T) {
		parcelas, err := GerarParcelas(200, 2, 1, true, primeira)

		require.NoError(t, err)
		require.Len(t, parcelas, 2)
		assert.Equal(t, primeira, parcelas[0].Vencimento)
		assert.Equal(t, primeira.AddDate(0, 1, 0), parcelas[1].Vencimento)
	})

	t.Run("parcelas inválidas", func(t *testing.T) {
		_, err := GerarParcelas(100, 0, 30, false, primeira)
		assert.ErrorIs(t, err, ErrParcelasInvalidas)
	})

	t.Run("total inválido", func(t *testing.T) {
		_, err := GerarParcelas(0, 2, 30, false, primeira)
		assert.ErrorIs(t, err, ErrCustoInvalido)
	})
}

func TestCalcularReducoes(t *testing.T) {
	originais := []ItemCompra{
		{ProdutoID: "p1", Quantidade: 10},
		{ProdutoID: "p2", Quantidade: 5},
		{ProdutoID: "p3", Quantidade: 2},
	}

	editados := []ItemCompra{
		{ProdutoID: "p1", Quantidade: 4},  // redução de 6
		{ProdutoID: "p2", Quantidade: 8},  // aumento, não conta
		// p3 removido: redução integral
	}

	reducoes := CalcularReducoes(originais, editados)

	require.Len(t, reducoes, 2)
	assert.Equal(t, Reducao{ProdutoID: "p1", Quantidade: 6}, reducoes[0])
	assert.Equal(t, Reducao{ProdutoID: "p3", Quantidade: 2}, reducoes[1])
}

func TestCalcularReducoesSomaPorProduto(t *testing.T) {
	// O mesmo produto pode aparecer em mais de uma linha; a comparação é
	// pela soma líquida
	originais := []ItemCompra{
		{ProdutoID: "p1", Quantidade: 5},
		{ProdutoID: "p1", Quantidade: 5},
	}
	editados := []ItemCompra{{ProdutoID: "p1", Quantidade: 7}}

	reducoes := CalcularReducoes(originais, editados)

	require.Len(t, reducoes, 1)
	assert.Equal(t, 3, reducoes[0].Quantidade)
}
