package compra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	compradomain "github.com/matheusprado/erp-suplementos/internal/domain/compra"
	produtodomain "github.com/matheusprado/erp-suplementos/internal/domain/produto"
)

var errNaoEncontrado = errors.New("não encontrado")

type comprasFake struct {
	compras map[string]*compradomain.Compra

	atualizada *compradomain.Compra
	condicao   compradomain.CondicaoPagamento
}

func (f *comprasFake) Criar(ctx context.Context, c *compradomain.Compra, condicao compradomain.CondicaoPagamento) error {
	f.compras[c.ID] = c
	return nil
}

func (f *comprasFake) BuscarPorID(ctx context.Context, id string) (*compradomain.Compra, error) {
	c, ok := f.compras[id]
	if !ok {
		return nil, errNaoEncontrado
	}
	return c, nil
}

func (f *comprasFake) Listar(ctx context.Context, fornecedorID string, limit, offset int) ([]*compradomain.Compra, error) {
	return nil, nil
}

func (f *comprasFake) Atualizar(ctx context.Context, c *compradomain.Compra, condicao compradomain.CondicaoPagamento) error {
	f.atualizada = c
	f.condicao = condicao
	return nil
}

func (f *comprasFake) Excluir(ctx context.Context, id string) error {
	delete(f.compras, id)
	return nil
}

type produtosFake struct {
	produtos map[string]*produtodomain.Produto
	estoque  map[string]int
}

func (f *produtosFake) Criar(ctx context.Context, p *produtodomain.Produto, componentes []produtodomain.ComponenteKit) error {
	f.produtos[p.ID] = p
	return nil
}

func (f *produtosFake) BuscarPorID(ctx context.Context, id string) (*produtodomain.Produto, error) {
	p, ok := f.produtos[id]
	if !ok {
		return nil, errNaoEncontrado
	}
	return p, nil
}

func (f *produtosFake) Listar(ctx context.Context, filtro produtodomain.Filtro, limit, offset int) ([]*produtodomain.Produto, error) {
	return nil, nil
}

func (f *produtosFake) Atualizar(ctx context.Context, p *produtodomain.Produto) error { return nil }

func (f *produtosFake) Excluir(ctx context.Context, id string) error { return nil }

func (f *produtosFake) Existe(ctx context.Context, id string) (bool, error) {
	_, ok := f.produtos[id]
	return ok, nil
}

func (f *produtosFake) BuscarComponentes(ctx context.Context, kitID string) ([]produtodomain.ComponenteKit, error) {
	return nil, nil
}

func (f *produtosFake) BuscarLotes(ctx context.Context, produtoID string) ([]produtodomain.Lote, error) {
	return nil, nil
}

func (f *produtosFake) EstoqueFisico(ctx context.Context, produtoID string) (int, error) {
	return f.estoque[produtoID], nil
}

func (f *produtosFake) EstoqueDisponivel(ctx context.Context, produtoID string) (int, error) {
	return f.estoque[produtoID], nil
}

type loggerFake struct{}

func (loggerFake) Info(msg string, keysAndValues ...interface{})  {}
func (loggerFake) Error(msg string, keysAndValues ...interface{}) {}
func (loggerFake) Debug(msg string, keysAndValues ...interface{}) {}
func (loggerFake) Warn(msg string, keysAndValues ...interface{})  {}

func TestEditarCompra(t *testing.T) {
	ctx := context.Background()
	data := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	novo := func(t *testing.T, estoque map[string]int) (*EditarCompraUseCase, *comprasFake, *compradomain.Compra) {
		t.Helper()

		produtos := &produtosFake{
			produtos: map[string]*produtodomain.Produto{
				"whey":     {ID: "whey", Nome: "Whey 900g"},
				"creatina": {ID: "creatina", Nome: "Creatina 300g"},
			},
			estoque: estoque,
		}
		compras := &comprasFake{compras: map[string]*compradomain.Compra{}}

		original, err := compradomain.NovaCompra("f1", "NF-100", data, []compradomain.ItemCompra{
			{ProdutoID: "whey", Quantidade: 10, CustoUnitario: 50},
		})
		require.NoError(t, err)
		compras.compras[original.ID] = original

		return NovoEditarCompraUseCase(compras, produtos, loggerFake{}), compras, original
	}

	t.Run("reescreve itens e regenera pagáveis", func(t *testing.T) {
		uc, compras, original := novo(t, map[string]int{"whey": 10})

		editada, err := uc.Executar(ctx, EditarCompraInput{
			CompraID:   original.ID,
			NotaFiscal: "NF-100-R",
			Data:       data,
			Itens: []ItemCompraInput{
				{ProdutoID: "whey", Quantidade: 8, CustoUnitario: 50},
				{ProdutoID: "creatina", Quantidade: 5, CustoUnitario: 20},
			},
			Parcelas:  2,
			Intervalo: 30,
		})

		require.NoError(t, err)
		assert.Equal(t, original.ID, editada.ID)
		assert.Equal(t, original.CreatedAt, editada.CreatedAt)
		assert.InDelta(t, 500.0, editada.Total, 0.001)

		require.NotNil(t, compras.atualizada)
		assert.Equal(t, 2, compras.condicao.Parcelas)
	})

	t.Run("redução dentro do estoque passa", func(t *testing.T) {
		// Estoque 4: reduzir de 10 para 6 retira 4 unidades, exatamente o
		// que ainda está na prateleira
		uc, _, original := novo(t, map[string]int{"whey": 4})

		_, err := uc.Executar(ctx, EditarCompraInput{
			CompraID:   original.ID,
			NotaFiscal: "NF-100",
			Data:       data,
			Itens:      []ItemCompraInput{{ProdutoID: "whey", Quantidade: 6, CustoUnitario: 50}},
		})

		require.NoError(t, err)
	})

	t.Run("redução além do estoque é barrada", func(t *testing.T) {
		// Estoque 3: das 10 unidades compradas, 7 já saíram; reduzir a compra
		// para 6 tiraria a origem de uma unidade vendida
		uc, compras, original := novo(t, map[string]int{"whey": 3})

		_, err := uc.Executar(ctx, EditarCompraInput{
			CompraID:   original.ID,
			NotaFiscal: "NF-100",
			Data:       data,
			Itens:      []ItemCompraInput{{ProdutoID: "whey", Quantidade: 6, CustoUnitario: 50}},
		})

		assert.ErrorIs(t, err, compradomain.ErrReducaoAbaixoVendido)
		assert.Nil(t, compras.atualizada)
	})

	t.Run("item removido conta como redução integral", func(t *testing.T) {
		uc, _, original := novo(t, map[string]int{"whey": 5})

		_, err := uc.Executar(ctx, EditarCompraInput{
			CompraID:   original.ID,
			NotaFiscal: "NF-100",
			Data:       data,
			Itens:      []ItemCompraInput{{ProdutoID: "creatina", Quantidade: 1, CustoUnitario: 20}},
		})

		assert.ErrorIs(t, err, compradomain.ErrReducaoAbaixoVendido)
	})

	t.Run("compra inexistente", func(t *testing.T) {
		uc, _, _ := novo(t, nil)

		_, err := uc.Executar(ctx, EditarCompraInput{CompraID: "x", Data: data})
		assert.ErrorIs(t, err, errNaoEncontrado)
	})

	t.Run("produto inexistente", func(t *testing.T) {
		uc, _, original := novo(t, nil)

		_, err := uc.Executar(ctx, EditarCompraInput{
			CompraID: original.ID,
			Data:     data,
			Itens:    []ItemCompraInput{{ProdutoID: "fantasma", Quantidade: 1, CustoUnitario: 10}},
		})

		assert.ErrorIs(t, err, errNaoEncontrado)
	})
}
