package financeiro

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientedomain "github.com/matheusprado/erp-suplementos/internal/domain/cliente"
	financeirodomain "github.com/matheusprado/erp-suplementos/internal/domain/financeiro"
)

var errNaoEncontrado = errors.New("não encontrado")

type financeiroFake struct {
	pendentes []financeirodomain.Lancamento

	aplicado *financeirodomain.ResultadoAlocacao
	forma    string
}

func (f *financeiroFake) Criar(ctx context.Context, l *financeirodomain.Lancamento) error {
	return nil
}

func (f *financeiroFake) BuscarPorID(ctx context.Context, id string) (*financeirodomain.Lancamento, error) {
	return nil, errNaoEncontrado
}

func (f *financeiroFake) Listar(ctx context.Context, filtro financeirodomain.Filtro, limit, offset int) ([]*financeirodomain.Lancamento, error) {
	return nil, nil
}

func (f *financeiroFake) PendentesPorCliente(ctx context.Context, clienteID string) ([]financeirodomain.Lancamento, error) {
	return f.pendentes, nil
}

func (f *financeiroFake) RegistrarPagamento(ctx context.Context, lancamentoID string, valor float64, formaPagamento string) (*financeirodomain.Lancamento, error) {
	return nil, errNaoEncontrado
}

func (f *financeiroFake) AplicarAlocacoes(ctx context.Context, clienteID string, resultado financeirodomain.ResultadoAlocacao, formaPagamento string) error {
	f.aplicado = &resultado
	f.forma = formaPagamento
	return nil
}

func (f *financeiroFake) Historico(ctx context.Context, lancamentoID string) ([]financeirodomain.HistoricoPagamento, error) {
	return nil, nil
}

type clientesFake struct {
	clientes map[string]*clientedomain.Cliente
}

func (f *clientesFake) Criar(ctx context.Context, c *clientedomain.Cliente) error { return nil }

func (f *clientesFake) BuscarPorID(ctx context.Context, id string) (*clientedomain.Cliente, error) {
	c, ok := f.clientes[id]
	if !ok {
		return nil, errNaoEncontrado
	}
	return c, nil
}

func (f *clientesFake) Listar(ctx context.Context, nome string, limit, offset int) ([]*clientedomain.Cliente, error) {
	return nil, nil
}

func (f *clientesFake) Atualizar(ctx context.Context, c *clientedomain.Cliente) error { return nil }

func (f *clientesFake) Excluir(ctx context.Context, id string) error { return nil }

func (f *clientesFake) Existe(ctx context.Context, id string) (bool, error) {
	_, ok := f.clientes[id]
	return ok, nil
}

func (f *clientesFake) MovimentosCredito(ctx context.Context, clienteID string) ([]clientedomain.MovimentoCredito, error) {
	return nil, nil
}

func (f *clientesFake) SaldoCredito(ctx context.Context, clienteID string) (float64, error) {
	return 0, nil
}

func (f *clientesFake) RegistrarMovimentoCredito(ctx context.Context, m *clientedomain.MovimentoCredito) error {
	return nil
}

func (f *clientesFake) BuscarFidelizacao(ctx context.Context, clienteID string) (*clientedomain.Fidelizacao, error) {
	return &clientedomain.Fidelizacao{ClienteID: clienteID}, nil
}

type loggerFake struct{}

func (loggerFake) Info(msg string, keysAndValues ...interface{})  {}
func (loggerFake) Error(msg string, keysAndValues ...interface{}) {}
func (loggerFake) Debug(msg string, keysAndValues ...interface{}) {}
func (loggerFake) Warn(msg string, keysAndValues ...interface{})  {}

func pendenteDe(t *testing.T, clienteID string, valor float64, venc time.Time) financeirodomain.Lancamento {
	t.Helper()
	l, err := financeirodomain.NovoLancamento(financeirodomain.TipoReceita, "venda fiado", valor, &venc)
	require.NoError(t, err)
	l.ClienteID = &clienteID
	return *l
}

func TestPagarTodasPendencias(t *testing.T) {
	ctx := context.Background()

	novo := func(t *testing.T, pendentes ...financeirodomain.Lancamento) (*PagarTodasPendenciasUseCase, *financeiroFake) {
		t.Helper()
		cli, err := clientedomain.NovoCliente("João", "", "", "")
		require.NoError(t, err)
		cli.ID = "c1"

		financeiro := &financeiroFake{pendentes: pendentes}
		clientes := &clientesFake{clientes: map[string]*clientedomain.Cliente{"c1": cli}}
		return NovoPagarTodasPendenciasUseCase(financeiro, clientes, loggerFake{}), financeiro
	}

	t.Run("quita da dívida mais antiga para a mais nova", func(t *testing.T) {
		antiga := pendenteDe(t, "c1", 100, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
		nova := pendenteDe(t, "c1", 50, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
		uc, financeiro := novo(t, nova, antiga)

		out, err := uc.Executar(ctx, PagarTodasPendenciasInput{
			ClienteID:      "c1",
			Valor:          120,
			FormaPagamento: "PIX",
		})

		require.NoError(t, err)
		assert.InDelta(t, 120.0, out.ValorPago, 0.001)
		assert.Equal(t, []string{antiga.ID}, out.DividasQuitadas)
		assert.Equal(t, []string{nova.ID}, out.DividasParciais)
		assert.Zero(t, out.CreditoGerado)

		require.NotNil(t, financeiro.aplicado)
		assert.Equal(t, "PIX", financeiro.forma)
	})

	t.Run("sobra além das dívidas vira crédito", func(t *testing.T) {
		divida := pendenteDe(t, "c1", 80, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
		uc, _ := novo(t, divida)

		out, err := uc.Executar(ctx, PagarTodasPendenciasInput{
			ClienteID:      "c1",
			Valor:          100,
			FormaPagamento: "DINHEIRO",
		})

		require.NoError(t, err)
		assert.InDelta(t, 80.0, out.ValorPago, 0.001)
		assert.InDelta(t, 20.0, out.CreditoGerado, 0.001)
	})

	t.Run("cliente sem pendências gera só crédito", func(t *testing.T) {
		uc, _ := novo(t)

		out, err := uc.Executar(ctx, PagarTodasPendenciasInput{
			ClienteID:      "c1",
			Valor:          50,
			FormaPagamento: "PIX",
		})

		require.NoError(t, err)
		assert.Zero(t, out.ValorPago)
		assert.Empty(t, out.DividasQuitadas)
		assert.InDelta(t, 50.0, out.CreditoGerado, 0.001)
	})

	t.Run("valor não positivo", func(t *testing.T) {
		uc, _ := novo(t)

		_, err := uc.Executar(ctx, PagarTodasPendenciasInput{ClienteID: "c1", Valor: 0, FormaPagamento: "PIX"})
		assert.ErrorIs(t, err, financeirodomain.ErrValorInvalido)
	})

	t.Run("forma de pagamento desconhecida", func(t *testing.T) {
		uc, _ := novo(t)

		_, err := uc.Executar(ctx, PagarTodasPendenciasInput{ClienteID: "c1", Valor: 10, FormaPagamento: "CHEQUE"})
		assert.ErrorIs(t, err, financeirodomain.ErrFormaInvalida)
	})

	t.Run("cliente inexistente", func(t *testing.T) {
		uc, _ := novo(t)

		_, err := uc.Executar(ctx, PagarTodasPendenciasInput{ClienteID: "c2", Valor: 10, FormaPagamento: "PIX"})
		assert.ErrorIs(t, err, errNaoEncontrado)
	})
}
