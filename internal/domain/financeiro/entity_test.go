package financeiro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNovoLancamento(t *testing.T) {
	t.Run("cria lançamento pendente", func(t *testing.T) {
		venc := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
		l, err := NovoLancamento(TipoDespesa, "aluguel", 1500, &venc)

		require.NoError(t, err)
		assert.Equal(t, StatusPendente, l.Status)
		assert.Equal(t, RecorrenciaNenhuma, l.Recorrencia)
		assert.Zero(t, l.ValorPago)
	})

	t.Run("rejeita descrição vazia", func(t *testing.T) {
		_, err := NovoLancamento(TipoDespesa, "", 100, nil)
		assert.ErrorIs(t, err, ErrDescricaoVazia)
	})

	t.Run("rejeita valor não positivo", func(t *testing.T) {
		_, err := NovoLancamento(TipoReceita, "venda", 0, nil)
		assert.ErrorIs(t, err, ErrValorInvalido)
	})
}

func TestRegistrarPagamento(t *testing.T) {
	novo := func() *Lancamento {
		l, err := NovoLancamento(TipoReceita, "venda fiado", 100, nil)
		require.NoError(t, err)
		return l
	}

	t.Run("pagamento parcial mantém pendente", func(t *testing.T) {
		l := novo()

		require.NoError(t, l.RegistrarPagamento(40))

		assert.Equal(t, StatusPendente, l.Status)
		assert.InDelta(t, 60.0, l.SaldoRestante(), 0.001)
	})

	t.Run("quitação total marca como pago", func(t *testing.T) {
		l := novo()

		require.NoError(t, l.RegistrarPagamento(100))

		assert.Equal(t, StatusPago, l.Status)
		assert.True(t, l.EstaQuitado())
	})

	t.Run("saldo residual dentro da tolerância quita", func(t *testing.T) {
		l := novo()

		require.NoError(t, l.RegistrarPagamento(99.995))

		assert.Equal(t, StatusPago, l.Status)
	})

	t.Run("excedente além da tolerância é rejeitado", func(t *testing.T) {
		l := novo()

		assert.ErrorIs(t, l.RegistrarPagamento(100.5), ErrPagamentoExcedente)
	})

	t.Run("lançamento pago não aceita pagamento", func(t *testing.T) {
		l := novo()
		require.NoError(t, l.RegistrarPagamento(100))

		assert.ErrorIs(t, l.RegistrarPagamento(10), ErrLancamentoPago)
	})

	t.Run("valor não positivo", func(t *testing.T) {
		assert.ErrorIs(t, novo().RegistrarPagamento(0), ErrValorInvalido)
	})
}

func TestProximaRecorrencia(t *testing.T) {
	venc := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

	novo := func(r Recorrencia) *Lancamento {
		l, err := NovoLancamento(TipoDespesa, "aluguel", 1500, &venc)
		require.NoError(t, err)
		l.Recorrencia = r
		return l
	}

	t.Run("mensal avança um mês", func(t *testing.T) {
		prox := novo(RecorrenciaMensal).ProximaRecorrencia()

		require.NotNil(t, prox)
		assert.Equal(t, venc.AddDate(0, 1, 0), *prox.Vencimento)
		assert.Equal(t, StatusPendente, prox.Status)
		assert.Zero(t, prox.ValorPago)
	})

	t.Run("semanal avança sete dias", func(t *testing.T) {
		prox := novo(RecorrenciaSemanal).ProximaRecorrencia()

		require.NotNil(t, prox)
		assert.Equal(t, venc.AddDate(0, 0, 7), *prox.Vencimento)
	})

	t.Run("anual avança um ano", func(t *testing.T) {
		prox := novo(RecorrenciaAnual).ProximaRecorrencia()

		require.NotNil(t, prox)
		assert.Equal(t, venc.AddDate(1, 0, 0), *prox.Vencimento)
	})

	t.Run("clone referencia a origem", func(t *testing.T) {
		l := novo(RecorrenciaMensal)
		prox := l.ProximaRecorrencia()

		require.NotNil(t, prox)
		require.NotNil(t, prox.OrigemID)
		assert.Equal(t, l.ID, *prox.OrigemID)
		assert.NotEqual(t, l.ID, prox.ID)
	})

	t.Run("sem recorrência retorna nil", func(t *testing.T) {
		assert.Nil(t, novo(RecorrenciaNenhuma).ProximaRecorrencia())
	})

	t.Run("sem vencimento retorna nil", func(t *testing.T) {
		l := novo(RecorrenciaMensal)
		l.Vencimento = nil
		assert.Nil(t, l.ProximaRecorrencia())
	})
}
