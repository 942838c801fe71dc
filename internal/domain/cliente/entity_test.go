package cliente

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNovoCliente(t *testing.T) {
	t.Run("cria cliente ativo", func(t *testing.T) {
		c, err := NovoCliente("Maria", "123.456.789-00", "11999990000", "maria@email.com")

		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, StatusAtivo, c.Status)
	})

	t.Run("rejeita nome vazio", func(t *testing.T) {
		_, err := NovoCliente("", "", "", "")
		assert.ErrorIs(t, err, ErrNomeVazio)
	})
}

func TestAplicar(t *testing.T) {
	c, err := NovoCliente("Maria", "", "", "")
	require.NoError(t, err)

	t.Run("atualiza apenas os campos presentes", func(t *testing.T) {
		telefone := "11888880000"
		require.NoError(t, c.Aplicar(Patch{Telefone: &telefone}))

		assert.Equal(t, "Maria", c.Nome)
		assert.Equal(t, telefone, c.Telefone)
	})

	t.Run("rejeita nome vazio", func(t *testing.T) {
		vazio := ""
		assert.ErrorIs(t, c.Aplicar(Patch{Nome: &vazio}), ErrNomeVazio)
	})
}

func TestNovoMovimentoCredito(t *testing.T) {
	t.Run("cria movimento", func(t *testing.T) {
		m, err := NovoMovimentoCredito("c1", CreditoEntrada, 50, "troco de venda")

		require.NoError(t, err)
		assert.Equal(t, "c1", m.ClienteID)
		assert.Equal(t, CreditoEntrada, m.Tipo)
	})

	t.Run("rejeita valor não positivo", func(t *testing.T) {
		_, err := NovoMovimentoCredito("c1", CreditoSaida, 0, "")
		assert.ErrorIs(t, err, ErrValorInvalido)
	})
}

func TestSaldoCredito(t *testing.T) {
	movimentos := []MovimentoCredito{
		{Tipo: CreditoEntrada, Valor: 100},
		{Tipo: CreditoSaida, Valor: 30},
		{Tipo: CreditoEntrada, Valor: 15.50},
	}

	assert.InDelta(t, 85.50, SaldoCredito(movimentos), 0.001)
	assert.Zero(t, SaldoCredito(nil))
}

func TestPontosAcumulados(t *testing.T) {
	assert.Equal(t, 129, PontosAcumulados(129.90))
	assert.Equal(t, 1, PontosAcumulados(1.0))
	assert.Zero(t, PontosAcumulados(0))
	assert.Zero(t, PontosAcumulados(-10))
}
