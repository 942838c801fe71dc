package financeiro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendente(id string, valor, pago float64, vencimento *time.Time, criadoEm time.Time) Lancamento {
	status := StatusPendente
	if valor-pago <= Tolerancia {
		status = StatusPago
	}
	return Lancamento{
		ID:         id,
		Tipo:       TipoReceita,
		Descricao:  "venda fiado",
		Valor:      valor,
		ValorPago:  pago,
		Status:     status,
		Vencimento: vencimento,
		CreatedAt:  criadoEm,
	}
}

func vencEm(dias int) *time.Time {
	t := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, dias)
	return &t
}

func TestOrdenarPorVencimento(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	lancamentos := []Lancamento{
		pendente("sem-vencimento", 10, 0, nil, base),
		pendente("vence-depois", 10, 0, vencEm(30), base),
		pendente("vence-antes", 10, 0, vencEm(5), base),
	}

	ordenados := OrdenarPorVencimento(lancamentos)

	assert.Equal(t, "vence-antes", ordenados[0].ID)
	assert.Equal(t, "vence-depois", ordenados[1].ID)
	assert.Equal(t, "sem-vencimento", ordenados[2].ID)
}

func TestAlocarPagamentoFIFO(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("quita da dívida mais antiga para a mais nova", func(t *testing.T) {
		lancamentos := []Lancamento{
			pendente("nova", 50, 0, vencEm(30), base),
			pendente("antiga", 40, 0, vencEm(5), base),
		}

		r := AlocarPagamentoFIFO(lancamentos, 60)

		require.Len(t, r.Alocacoes, 2)
		assert.Equal(t, Alocacao{LancamentoID: "antiga", Valor: 40, Quitado: true}, r.Alocacoes[0])
		assert.Equal(t, Alocacao{LancamentoID: "nova", Valor: 20, Quitado: false}, r.Alocacoes[1])
		assert.InDelta(t, 60.0, r.ValorAplicado, 0.001)
		assert.Zero(t, r.CreditoGerado)
	})

	t.Run("pagamento parcial considera o que já foi pago", func(t *testing.T) {
		lancamentos := []Lancamento{pendente("d1", 100, 30, vencEm(5), base)}

		r := AlocarPagamentoFIFO(lancamentos, 50)

		require.Len(t, r.Alocacoes, 1)
		assert.InDelta(t, 50.0, r.Alocacoes[0].Valor, 0.001)
		assert.False(t, r.Alocacoes[0].Quitado)
	})

	t.Run("lançamentos quitados são pulados", func(t *testing.T) {
		lancamentos := []Lancamento{
			pendente("quitada", 30, 30, vencEm(1), base),
			pendente("aberta", 40, 0, vencEm(10), base),
		}

		r := AlocarPagamentoFIFO(lancamentos, 40)

		require.Len(t, r.Alocacoes, 1)
		assert.Equal(t, "aberta", r.Alocacoes[0].LancamentoID)
	})

	t.Run("sobra além de todas as dívidas vira crédito", func(t *testing.T) {
		lancamentos := []Lancamento{pendente("d1", 25, 0, vencEm(5), base)}

		r := AlocarPagamentoFIFO(lancamentos, 100)

		assert.InDelta(t, 25.0, r.ValorAplicado, 0.001)
		assert.InDelta(t, 75.0, r.CreditoGerado, 0.001)
	})

	t.Run("valor não positivo não aloca nada", func(t *testing.T) {
		lancamentos := []Lancamento{pendente("d1", 25, 0, vencEm(5), base)}

		assert.Empty(t, AlocarPagamentoFIFO(lancamentos, 0).Alocacoes)
		assert.Empty(t, AlocarPagamentoFIFO(lancamentos, -10).Alocacoes)
	})

	t.Run("sem dívidas todo o valor vira crédito", func(t *testing.T) {
		r := AlocarPagamentoFIFO(nil, 30)

		assert.Empty(t, r.Alocacoes)
		assert.InDelta(t, 30.0, r.CreditoGerado, 0.001)
	})
}
