package produto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNovoProduto(t *testing.T) {
	t.Run("cria produto ativo", func(t *testing.T) {
		p, err := NovoProduto("Whey 900g", 129.90, false, 3)

		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, StatusAtivo, p.Status)
		assert.False(t, p.EhKit)
	})

	t.Run("rejeita nome vazio", func(t *testing.T) {
		_, err := NovoProduto("", 10, false, 0)
		assert.ErrorIs(t, err, ErrNomeVazio)
	})

	t.Run("rejeita preço negativo", func(t *testing.T) {
		_, err := NovoProduto("Creatina", -1, false, 0)
		assert.ErrorIs(t, err, ErrPrecoInvalido)
	})
}

func TestAplicarPatch(t *testing.T) {
	p, err := NovoProduto("Whey 900g", 129.90, false, 3)
	require.NoError(t, err)

	nome := "Whey 900g Chocolate"
	preco := 139.90
	require.NoError(t, p.Aplicar(Patch{Nome: &nome, PrecoVenda: &preco}))

	assert.Equal(t, nome, p.Nome)
	assert.Equal(t, preco, p.PrecoVenda)

	vazio := ""
	assert.ErrorIs(t, p.Aplicar(Patch{Nome: &vazio}), ErrNomeVazio)
}

func TestLimiarEstoqueBaixo(t *testing.T) {
	t.Run("piso global vale quando o mínimo é menor", func(t *testing.T) {
		assert.Equal(t, LimiteEstoqueBaixo, LimiarEstoqueBaixo(0))
		assert.Equal(t, LimiteEstoqueBaixo, LimiarEstoqueBaixo(2))
	})

	t.Run("estoque mínimo cadastrado prevalece quando maior", func(t *testing.T) {
		assert.Equal(t, 10, LimiarEstoqueBaixo(10))
	})
}

func TestPrecoKitSugerido(t *testing.T) {
	componentes := []ComponenteKit{
		{ProdutoID: "whey", Quantidade: 2, PrecoComponente: 100},
		{ProdutoID: "creatina", Quantidade: 1, PrecoComponente: 50},
	}

	assert.InDelta(t, 250.0, PrecoKitSugerido(componentes), 0.001)
}

func TestValidarComposicao(t *testing.T) {
	// Grafo de teste: cada produto aponta para seus componentes diretos
	grafo := map[string][]ComponenteKit{}
	buscar := func(id string) ([]ComponenteKit, error) {
		return grafo[id], nil
	}

	t.Run("composição vazia", func(t *testing.T) {
		err := ValidarComposicao("kit", nil, buscar)
		assert.ErrorIs(t, err, ErrComposicaoVazia)
	})

	t.Run("quantidade não positiva", func(t *testing.T) {
		err := ValidarComposicao("kit", []ComponenteKit{{ProdutoID: "a", Quantidade: 0}}, buscar)
		assert.ErrorIs(t, err, ErrQuantidadeInvalida)
	})

	t.Run("auto-referência", func(t *testing.T) {
		err := ValidarComposicao("kit", []ComponenteKit{{ProdutoID: "kit", Quantidade: 1}}, buscar)
		assert.ErrorIs(t, err, ErrComposicaoCiclica)
	})

	t.Run("ciclo transitivo", func(t *testing.T) {
		grafo["a"] = []ComponenteKit{{ProdutoID: "b", Quantidade: 1}}
		grafo["b"] = []ComponenteKit{{ProdutoID: "kit", Quantidade: 1}}
		defer func() { grafo = map[string][]ComponenteKit{} }()

		err := ValidarComposicao("kit", []ComponenteKit{{ProdutoID: "a", Quantidade: 1}}, buscar)
		assert.ErrorIs(t, err, ErrComposicaoCiclica)
	})

	t.Run("diamante não é ciclo", func(t *testing.T) {
		// kit -> a -> c e kit -> b -> c: c aparece duas vezes em caminhos
		// distintos e isso é válido
		grafo["a"] = []ComponenteKit{{ProdutoID: "c", Quantidade: 1}}
		grafo["b"] = []ComponenteKit{{ProdutoID: "c", Quantidade: 2}}
		defer func() { grafo = map[string][]ComponenteKit{} }()

		err := ValidarComposicao("kit", []ComponenteKit{
			{ProdutoID: "a", Quantidade: 1},
			{ProdutoID: "b", Quantidade: 1},
		}, buscar)
		assert.NoError(t, err)
	})

	t.Run("profundidade excedida", func(t *testing.T) {
		// Cadeia linear mais funda que o limite
		nomes := []string{"n1", "n2", "n3", "n4", "n5", "n6", "n7", "n8", "n9"}
		for i := 0; i < len(nomes)-1; i++ {
			grafo[nomes[i]] = []ComponenteKit{{ProdutoID: nomes[i+1], Quantidade: 1}}
		}
		defer func() { grafo = map[string][]ComponenteKit{} }()

		err := ValidarComposicao("kit", []ComponenteKit{{ProdutoID: "n1", Quantidade: 1}}, buscar)
		assert.ErrorIs(t, err, ErrComposicaoProfunda)
	})
}
