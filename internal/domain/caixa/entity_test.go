package caixa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movimento(tipo TipoMovimentacao, forma string, valor float64) Movimentacao {
	return Movimentacao{Tipo: tipo, FormaPagamento: forma, Valor: valor}
}

func TestNovaSessao(t *testing.T) {
	s, err := NovaSessao("op1", 100)

	require.NoError(t, err)
	assert.True(t, s.EstaAberta())
	assert.InDelta(t, 100.0, s.SaldoInicial, 0.001)

	_, err = NovaSessao("op1", -1)
	assert.ErrorIs(t, err, ErrSaldoInicialNegativo)
}

func TestNovaMovimentacao(t *testing.T) {
	t.Run("tipo desconhecido", func(t *testing.T) {
		_, err := NovaMovimentacao("s1", "ESTORNO", FormaDinheiro, 10, "")
		assert.ErrorIs(t, err, ErrTipoInvalido)
	})

	t.Run("valor não positivo", func(t *testing.T) {
		_, err := NovaMovimentacao("s1", MovimentacaoEntrada, FormaDinheiro, 0, "")
		assert.ErrorIs(t, err, ErrValorInvalido)
	})
}

func TestSaldoCalculadoDe(t *testing.T) {
	movimentos := []Movimentacao{
		movimento(MovimentacaoEntrada, FormaDinheiro, 50),
		movimento(MovimentacaoSuprimento, FormaDinheiro, 20),
		movimento(MovimentacaoSangria, FormaDinheiro, 30),
		movimento(MovimentacaoSaida, FormaDinheiro, 10),
		// Movimentos fora de espécie não afetam a gaveta
		movimento(MovimentacaoEntrada, "PIX", 500),
	}

	assert.InDelta(t, 130.0, SaldoCalculadoDe(100, movimentos), 0.001)
}

func TestFechar(t *testing.T) {
	t.Run("registra saldos e divergência com sinal", func(t *testing.T) {
		s, err := NovaSessao("op1", 100)
		require.NoError(t, err)

		movimentos := []Movimentacao{movimento(MovimentacaoEntrada, FormaDinheiro, 50)}
		require.NoError(t, s.Fechar(140, movimentos))

		assert.Equal(t, StatusFechado, s.Status)
		require.NotNil(t, s.SaldoCalculado)
		assert.InDelta(t, 150.0, *s.SaldoCalculado, 0.001)
		require.NotNil(t, s.Divergencia)
		assert.InDelta(t, -10.0, *s.Divergencia, 0.001, "faltou dinheiro na gaveta")
		assert.NotNil(t, s.FechadoEm)
	})

	t.Run("sessão fechada não fecha de novo", func(t *testing.T) {
		s, err := NovaSessao("op1", 0)
		require.NoError(t, err)
		require.NoError(t, s.Fechar(0, nil))

		assert.ErrorIs(t, s.Fechar(0, nil), ErrSessaoFechada)
	})
}
