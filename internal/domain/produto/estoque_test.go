package produto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataEm(dias int) *time.Time {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, dias)
	return &t
}

func loteDe(id string, quantidade int, validade *time.Time, criadoEm time.Time) Lote {
	return Lote{ID: id, ProdutoID: "p1", Quantidade: quantidade, Validade: validade, CreatedAt: criadoEm}
}

func TestOrdenarFEFO(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	lotes := []Lote{
		loteDe("sem-validade", 5, nil, base),
		loteDe("vence-depois", 5, dataEm(60), base.Add(time.Hour)),
		loteDe("vence-antes", 5, dataEm(10), base.Add(2*time.Hour)),
	}

	ordenados := OrdenarFEFO(lotes)

	assert.Equal(t, "vence-antes", ordenados[0].ID)
	assert.Equal(t, "vence-depois", ordenados[1].ID)
	assert.Equal(t, "sem-validade", ordenados[2].ID, "lote sem validade é consumido por último")
}

func TestOrdenarFEFODesempataPorCriacao(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	lotes := []Lote{
		loteDe("b", 5, dataEm(10), base.Add(time.Hour)),
		loteDe("a", 5, dataEm(10), base),
	}

	ordenados := OrdenarFEFO(lotes)

	assert.Equal(t, "a", ordenados[0].ID)
	assert.Equal(t, "b", ordenados[1].ID)
}

func TestPlanejarConsumoFEFO(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("consome na ordem de validade zerando lote a lote", func(t *testing.T) {
		lotes := []Lote{
			loteDe("l1", 3, dataEm(10), base),
			loteDe("l2", 5, dataEm(30), base),
		}

		plano := PlanejarConsumoFEFO(lotes, 5)

		require.Len(t, plano.Debitos, 2)
		assert.Equal(t, DebitoLote{LoteID: "l1", Quantidade: 3}, plano.Debitos[0])
		assert.Equal(t, DebitoLote{LoteID: "l2", Quantidade: 2}, plano.Debitos[1])
		assert.Zero(t, plano.Restante)
	})

	t.Run("devolve restante quando o estoque acaba", func(t *testing.T) {
		lotes := []Lote{loteDe("l1", 2, dataEm(10), base)}

		plano := PlanejarConsumoFEFO(lotes, 7)

		require.Len(t, plano.Debitos, 1)
		assert.Equal(t, 2, plano.Debitos[0].Quantidade)
		assert.Equal(t, 5, plano.Restante)
	})

	t.Run("ignora lotes com saldo zerado ou negativo", func(t *testing.T) {
		lotes := []Lote{
			loteDe("zerado", 0, dataEm(5), base),
			loteDe("negativo", -3, dataEm(8), base),
			loteDe("com-saldo", 4, dataEm(20), base),
		}

		plano := PlanejarConsumoFEFO(lotes, 2)

		require.Len(t, plano.Debitos, 1)
		assert.Equal(t, "com-saldo", plano.Debitos[0].LoteID)
		assert.Zero(t, plano.Restante)
	})

	t.Run("quantidade não positiva não gera débitos", func(t *testing.T) {
		lotes := []Lote{loteDe("l1", 5, dataEm(10), base)}

		assert.Empty(t, PlanejarConsumoFEFO(lotes, 0).Debitos)
		assert.Empty(t, PlanejarConsumoFEFO(lotes, -1).Debitos)
	})
}

func TestEscolherLoteFallback(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("escolhe o lote mais recente", func(t *testing.T) {
		lotes := []Lote{
			loteDe("antigo", 0, dataEm(10), base),
			loteDe("recente", 0, dataEm(5), base.Add(time.Hour)),
		}

		escolhido := EscolherLoteFallback(lotes)

		require.NotNil(t, escolhido)
		assert.Equal(t, "recente", escolhido.ID)
	})

	t.Run("sem lotes retorna nil", func(t *testing.T) {
		assert.Nil(t, EscolherLoteFallback(nil))
	})
}

func TestEscolherLoteReposicao(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("prefere a validade mais distante", func(t *testing.T) {
		lotes := []Lote{
			loteDe("perto", 5, dataEm(5), base),
			loteDe("longe", 5, dataEm(90), base),
		}

		escolhido := EscolherLoteReposicao(lotes)

		require.NotNil(t, escolhido)
		assert.Equal(t, "longe", escolhido.ID)
	})

	t.Run("sem validade conta como a mais distante", func(t *testing.T) {
		lotes := []Lote{
			loteDe("com-validade", 5, dataEm(365), base),
			loteDe("sem-validade", 5, nil, base),
		}

		escolhido := EscolherLoteReposicao(lotes)

		require.NotNil(t, escolhido)
		assert.Equal(t, "sem-validade", escolhido.ID)
	})
}

func TestEstoqueTotal(t *testing.T) {
	base := time.Now()
	lotes := []Lote{
		loteDe("l1", 5, nil, base),
		loteDe("l2", -2, nil, base),
	}

	assert.Equal(t, 3, EstoqueTotal(lotes), "saldos negativos entram na soma")
}

func TestEstoqueKit(t *testing.T) {
	componentes := []ComponenteKit{
		{KitID: "kit", ProdutoID: "whey", Quantidade: 2},
		{KitID: "kit", ProdutoID: "creatina", Quantidade: 1},
	}

	t.Run("gargalo define o estoque do kit", func(t *testing.T) {
		estoque := map[string]int{"whey": 7, "creatina": 10}

		assert.Equal(t, 3, EstoqueKit(componentes, estoque), "floor(7/2)=3 limita o kit")
	})

	t.Run("componente negativo zera o kit", func(t *testing.T) {
		estoque := map[string]int{"whey": -4, "creatina": 10}

		assert.Zero(t, EstoqueKit(componentes, estoque))
	})

	t.Run("sem componentes o estoque é zero", func(t *testing.T) {
		assert.Zero(t, EstoqueKit(nil, map[string]int{}))
	})
}

// consumirDosLotes aplica o plano FEFO sobre os lotes em memória, lançando o
// restante como saldo negativo no lote de fallback, como faz a venda
func consumirDosLotes(t *testing.T, lotes []Lote, quantidade int) {
	t.Helper()

	plano := PlanejarConsumoFEFO(lotes, quantidade)
	for _, debito := range plano.Debitos {
		for i := range lotes {
			if lotes[i].ID == debito.LoteID {
				lotes[i].Quantidade -= debito.Quantidade
			}
		}
	}
	if plano.Restante > 0 {
		fallback := EscolherLoteFallback(lotes)
		require.NotNil(t, fallback)
		fallback.Quantidade -= plano.Restante
	}
}

// reporNosLotes devolve unidades ao lote de validade mais distante, como faz
// o cancelamento
func reporNosLotes(t *testing.T, lotes []Lote, quantidade int) {
	t.Helper()

	alvo := EscolherLoteReposicao(lotes)
	require.NotNil(t, alvo)
	alvo.Quantidade += quantidade
}

func TestVendaECancelamentoConservamEstoque(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("consumo distribuído em vários lotes volta ao total original", func(t *testing.T) {
		lotes := []Lote{
			loteDe("perto", 3, dataEm(10), base),
			loteDe("longe", 5, dataEm(60), base.Add(time.Hour)),
		}
		antes := EstoqueTotal(lotes)

		consumirDosLotes(t, lotes, 6)
		require.Equal(t, antes-6, EstoqueTotal(lotes))

		reporNosLotes(t, lotes, 6)
		assert.Equal(t, antes, EstoqueTotal(lotes))
	})

	t.Run("venda além do estoque devolve ao total mesmo com saldo negativo", func(t *testing.T) {
		lotes := []Lote{
			loteDe("unico", 4, dataEm(20), base),
		}
		antes := EstoqueTotal(lotes)

		consumirDosLotes(t, lotes, 7)
		require.Equal(t, antes-7, EstoqueTotal(lotes))
		require.Equal(t, -3, lotes[0].Quantidade)

		reporNosLotes(t, lotes, 7)
		assert.Equal(t, antes, EstoqueTotal(lotes))
	})

	t.Run("kit decomposto restaura o estoque de cada componente", func(t *testing.T) {
		componentes := []ComponenteKit{
			{KitID: "kit", ProdutoID: "whey", Quantidade: 2},
			{KitID: "kit", ProdutoID: "creatina", Quantidade: 1},
		}
		lotesPorProduto := map[string][]Lote{
			"whey": {
				loteDe("w1", 3, dataEm(15), base),
				loteDe("w2", 6, dataEm(45), base.Add(time.Hour)),
			},
			"creatina": {
				loteDe("c1", 5, dataEm(30), base),
			},
		}
		antes := map[string]int{}
		for id, lotes := range lotesPorProduto {
			antes[id] = EstoqueTotal(lotes)
		}

		// Duas unidades do kit: cada componente consome quantidade*2
		vendidos := 2
		for _, c := range componentes {
			consumirDosLotes(t, lotesPorProduto[c.ProdutoID], c.Quantidade*vendidos)
		}
		require.Equal(t, antes["whey"]-4, EstoqueTotal(lotesPorProduto["whey"]))
		require.Equal(t, antes["creatina"]-2, EstoqueTotal(lotesPorProduto["creatina"]))

		for _, c := range componentes {
			reporNosLotes(t, lotesPorProduto[c.ProdutoID], c.Quantidade*vendidos)
		}
		for id, lotes := range lotesPorProduto {
			assert.Equal(t, antes[id], EstoqueTotal(lotes), id)
		}
	})
}

func TestCustoMedio(t *testing.T) {
	base := time.Now()
	lotes := []Lote{
		{ID: "l1", Quantidade: 10, CustoUnitario: 50, CreatedAt: base},
		{ID: "l2", Quantidade: 5, CustoUnitario: 80, CreatedAt: base},
		{ID: "l3", Quantidade: -3, CustoUnitario: 100, CreatedAt: base},
	}

	// (10*50 + 5*80) / 15; o lote negativo fica de fora
	assert.InDelta(t, 60.0, CustoMedio(lotes), 0.001)
	assert.Zero(t, CustoMedio(nil))
}
