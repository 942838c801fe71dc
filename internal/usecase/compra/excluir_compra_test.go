package compra

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	compradomain "github.com/matheusprado/erp-suplementos/internal/domain/compra"
	produtodomain "github.com/matheusprado/erp-suplementos/internal/domain/produto"
)

func TestExcluirCompra(t *testing.T) {
	ctx := context.Background()
	data := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	novo := func(t *testing.T, estoque map[string]int) (*ExcluirCompraUseCase, *comprasFake, *compradomain.Compra) {
		t.Helper()

		produtos := &produtosFake{
			produtos: map[string]*produtodomain.Produto{
				"whey": {ID: "whey", Nome: "Whey 900g"},
			},
			estoque: estoque,
		}
		compras := &comprasFake{compras: map[string]*compradomain.Compra{}}

		c, err := compradomain.NovaCompra("f1", "NF-200", data, []compradomain.ItemCompra{
			{ProdutoID: "whey", Quantidade: 10, CustoUnitario: 50},
		})
		require.NoError(t, err)
		compras.compras[c.ID] = c

		return NovoExcluirCompraUseCase(compras, produtos, loggerFake{}), compras, c
	}

	t.Run("estoque cobre o lote e a exclusão passa", func(t *testing.T) {
		// 4 unidades do lote desta compra já saíram, mas outros lotes do
		// mesmo produto deixam 20 na prateleira: 20 >= 10, pode excluir
		uc, compras, c := novo(t, map[string]int{"whey": 20})

		err := uc.Executar(ctx, c.ID)

		require.NoError(t, err)
		_, ok := compras.compras[c.ID]
		assert.False(t, ok)
	})

	t.Run("estoque igual ao lote passa", func(t *testing.T) {
		uc, _, c := novo(t, map[string]int{"whey": 10})

		require.NoError(t, uc.Executar(ctx, c.ID))
	})

	t.Run("estoque abaixo do lote é barrado", func(t *testing.T) {
		uc, compras, c := novo(t, map[string]int{"whey": 8})

		err := uc.Executar(ctx, c.ID)

		assert.ErrorIs(t, err, compradomain.ErrEstoqueAbaixoDoLote)
		_, ok := compras.compras[c.ID]
		assert.True(t, ok)
	})

	t.Run("compra inexistente", func(t *testing.T) {
		uc, _, _ := novo(t, nil)

		assert.ErrorIs(t, uc.Executar(ctx, "x"), errNaoEncontrado)
	})
}
