package venda

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	caixadomain "github.com/matheusprado/erp-suplementos/internal/domain/caixa"
	clientedomain "github.com/matheusprado/erp-suplementos/internal/domain/cliente"
	produtodomain "github.com/matheusprado/erp-suplementos/internal/domain/produto"
	vendadomain "github.com/matheusprado/erp-suplementos/internal/domain/venda"
)

var errNaoEncontrado = errors.New("não encontrado")

type produtosFake struct {
	produtos    map[string]*produtodomain.Produto
	componentes map[string][]produtodomain.ComponenteKit
}

func (f *produtosFake) Criar(ctx context.Context, p *produtodomain.Produto, componentes []produtodomain.ComponenteKit) error {
	f.produtos[p.ID] = p
	f.componentes[p.ID] = componentes
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
	return f.componentes[kitID], nil
}

func (f *produtosFake) BuscarLotes(ctx context.Context, produtoID string) ([]produtodomain.Lote, error) {
	return nil, nil
}

func (f *produtosFake) EstoqueFisico(ctx context.Context, produtoID string) (int, error) {
	return 0, nil
}

func (f *produtosFake) EstoqueDisponivel(ctx context.Context, produtoID string) (int, error) {
	return 0, nil
}

type clientesFake struct {
	clientes map[string]*clientedomain.Cliente
}

func (f *clientesFake) Criar(ctx context.Context, c *clientedomain.Cliente) error {
	f.clientes[c.ID] = c
	return nil
}

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

type caixaFake struct {
	sessao *caixadomain.Sessao
}

func (f *caixaFake) Abrir(ctx context.Context, s *caixadomain.Sessao) error {
	f.sessao = s
	return nil
}

func (f *caixaFake) SessaoAberta(ctx context.Context) (*caixadomain.Sessao, error) {
	return f.sessao, nil
}

func (f *caixaFake) BuscarPorID(ctx context.Context, id string) (*caixadomain.Sessao, error) {
	return f.sessao, nil
}

func (f *caixaFake) RegistrarMovimentacao(ctx context.Context, m *caixadomain.Movimentacao) error {
	return nil
}

func (f *caixaFake) Movimentacoes(ctx context.Context, sessaoID string) ([]caixadomain.Movimentacao, error) {
	return nil, nil
}

func (f *caixaFake) Fechar(ctx context.Context, s *caixadomain.Sessao) error { return nil }

type vendasFake struct {
	salvas []*vendadomain.Venda
}

func (f *vendasFake) Salvar(ctx context.Context, v *vendadomain.Venda) error {
	f.salvas = append(f.salvas, v)
	return nil
}

func (f *vendasFake) BuscarPorID(ctx context.Context, id string) (*vendadomain.Venda, error) {
	return nil, errNaoEncontrado
}

func (f *vendasFake) Listar(ctx context.Context, filtro vendadomain.Filtro, limit, offset int) ([]*vendadomain.Venda, error) {
	return nil, nil
}

func (f *vendasFake) Cancelar(ctx context.Context, id string) error { return nil }

type loggerFake struct{}

func (loggerFake) Info(msg string, keysAndValues ...interface{})  {}
func (loggerFake) Error(msg string, keysAndValues ...interface{}) {}
func (loggerFake) Debug(msg string, keysAndValues ...interface{}) {}
func (loggerFake) Warn(msg string, keysAndValues ...interface{})  {}

type cenario struct {
	uc       *RegistrarVendaUseCase
	produtos *produtosFake
	clientes *clientesFake
	caixa    *caixaFake
	vendas   *vendasFake
}

func novoCenario(t *testing.T) *cenario {
	t.Helper()

	produtos := &produtosFake{
		produtos:    map[string]*produtodomain.Produto{},
		componentes: map[string][]produtodomain.ComponenteKit{},
	}
	clientes := &clientesFake{clientes: map[string]*clientedomain.Cliente{}}
	caixa := &caixaFake{}
	vendas := &vendasFake{}

	produtos.produtos["whey"] = &produtodomain.Produto{ID: "whey", Nome: "Whey 900g", PrecoVenda: 120}
	produtos.produtos["creatina"] = &produtodomain.Produto{ID: "creatina", Nome: "Creatina 300g", PrecoVenda: 80}

	return &cenario{
		uc:       NovoRegistrarVendaUseCase(produtos, vendas, clientes, caixa, loggerFake{}),
		produtos: produtos,
		clientes: clientes,
		caixa:    caixa,
		vendas:   vendas,
	}
}

func (c *cenario) abrirCaixa(t *testing.T) {
	t.Helper()
	sessao, err := caixadomain.NovaSessao("op1", 100)
	require.NoError(t, err)
	c.caixa.sessao = sessao
}

func TestRegistrarVenda(t *testing.T) {
	ctx := context.Background()

	t.Run("venda em dinheiro com caixa aberto", func(t *testing.T) {
		c := novoCenario(t)
		c.abrirCaixa(t)

		out, err := c.uc.Executar(ctx, RegistrarVendaInput{
			UsuarioID: "op1",
			Itens:     []ItemInput{{ProdutoID: "whey", Quantidade: 1}},
			Pagamentos: []PagamentoInput{
				{Metodo: vendadomain.MetodoDinheiro, Valor: 120, ValorRecebido: 150},
			},
		})

		require.NoError(t, err)
		assert.InDelta(t, 120.0, out.Venda.TotalLiquido, 0.001)
		assert.InDelta(t, 0.0, out.Venda.Troco, 0.001)
		require.Len(t, c.vendas.salvas, 1)
	})

	t.Run("dinheiro com caixa fechado é rejeitado", func(t *testing.T) {
		c := novoCenario(t)

		_, err := c.uc.Executar(ctx, RegistrarVendaInput{
			UsuarioID:  "op1",
			Itens:      []ItemInput{{ProdutoID: "whey", Quantidade: 1}},
			Pagamentos: []PagamentoInput{{Metodo: vendadomain.MetodoDinheiro, Valor: 120}},
		})

		assert.ErrorIs(t, err, vendadomain.ErrCaixaFechado)
		assert.Empty(t, c.vendas.salvas)
	})

	t.Run("pix não exige caixa aberto", func(t *testing.T) {
		c := novoCenario(t)

		out, err := c.uc.Executar(ctx, RegistrarVendaInput{
			UsuarioID:  "op1",
			Itens:      []ItemInput{{ProdutoID: "creatina", Quantidade: 2}},
			Pagamentos: []PagamentoInput{{Metodo: vendadomain.MetodoPix, Valor: 160}},
		})

		require.NoError(t, err)
		assert.InDelta(t, 160.0, out.Venda.TotalLiquido, 0.001)
	})

	t.Run("pagamento insuficiente", func(t *testing.T) {
		c := novoCenario(t)

		_, err := c.uc.Executar(ctx, RegistrarVendaInput{
			UsuarioID:  "op1",
			Itens:      []ItemInput{{ProdutoID: "whey", Quantidade: 1}},
			Pagamentos: []PagamentoInput{{Metodo: vendadomain.MetodoPix, Valor: 100}},
		})

		assert.ErrorIs(t, err, vendadomain.ErrPagamentoInsuficiente)
	})

	t.Run("sem pagamentos", func(t *testing.T) {
		c := novoCenario(t)

		_, err := c.uc.Executar(ctx, RegistrarVendaInput{
			UsuarioID: "op1",
			Itens:     []ItemInput{{ProdutoID: "whey", Quantidade: 1}},
		})

		assert.ErrorIs(t, err, vendadomain.ErrSemPagamentos)
	})

	t.Run("sem itens", func(t *testing.T) {
		c := novoCenario(t)

		_, err := c.uc.Executar(ctx, RegistrarVendaInput{
			UsuarioID:  "op1",
			Pagamentos: []PagamentoInput{{Metodo: vendadomain.MetodoPix, Valor: 10}},
		})

		assert.ErrorIs(t, err, vendadomain.ErrSemItens)
	})

	t.Run("método desconhecido", func(t *testing.T) {
		c := novoCenario(t)

		_, err := c.uc.Executar(ctx, RegistrarVendaInput{
			UsuarioID:  "op1",
			Itens:      []ItemInput{{ProdutoID: "whey", Quantidade: 1}},
			Pagamentos: []PagamentoInput{{Metodo: "CHEQUE", Valor: 120}},
		})

		assert.ErrorIs(t, err, vendadomain.ErrMetodoInvalido)
	})

	t.Run("pontos sem cliente", func(t *testing.T) {
		c := novoCenario(t)

		_, err := c.uc.Executar(ctx, RegistrarVendaInput{
			UsuarioID:    "op1",
			PontosUsados: 100,
			Itens:        []ItemInput{{ProdutoID: "whey", Quantidade: 1}},
			Pagamentos:   []PagamentoInput{{Metodo: vendadomain.MetodoPix, Valor: 120}},
		})

		assert.ErrorIs(t, err, vendadomain.ErrPontosSemCliente)
	})

	t.Run("resgate de pontos abate do total", func(t *testing.T) {
		c := novoCenario(t)
		cli, err := clientedomain.NovoCliente("João", "", "", "")
		require.NoError(t, err)
		c.clientes.clientes[cli.ID] = cli

		out, err := c.uc.Executar(ctx, RegistrarVendaInput{
			ClienteID:    &cli.ID,
			UsuarioID:    "op1",
			PontosUsados: 100,
			Itens:        []ItemInput{{ProdutoID: "whey", Quantidade: 1}},
			Pagamentos:   []PagamentoInput{{Metodo: vendadomain.MetodoPix, Valor: 115}},
		})

		require.NoError(t, err)
		assert.InDelta(t, 5.0, out.Venda.DescontoPontos, 0.001)
		assert.InDelta(t, 115.0, out.Venda.TotalLiquido, 0.001)
	})

	t.Run("troco em dinheiro exige caixa aberto", func(t *testing.T) {
		c := novoCenario(t)

		_, err := c.uc.Executar(ctx, RegistrarVendaInput{
			UsuarioID:  "op1",
			Itens:      []ItemInput{{ProdutoID: "whey", Quantidade: 1}},
			Pagamentos: []PagamentoInput{{Metodo: vendadomain.MetodoPix, Valor: 150}},
		})

		assert.ErrorIs(t, err, vendadomain.ErrCaixaFechado)
	})

	t.Run("troco para crédito de loja dispensa o caixa", func(t *testing.T) {
		c := novoCenario(t)
		cli, err := clientedomain.NovoCliente("João", "", "", "")
		require.NoError(t, err)
		c.clientes.clientes[cli.ID] = cli

		out, err := c.uc.Executar(ctx, RegistrarVendaInput{
			ClienteID:    &cli.ID,
			UsuarioID:    "op1",
			DestinoTroco: vendadomain.TrocoCreditoLoja,
			Itens:        []ItemInput{{ProdutoID: "whey", Quantidade: 1}},
			Pagamentos:   []PagamentoInput{{Metodo: vendadomain.MetodoPix, Valor: 150}},
		})

		require.NoError(t, err)
		assert.InDelta(t, 30.0, out.Venda.Troco, 0.001)
	})

	t.Run("kit valida os componentes recursivamente", func(t *testing.T) {
		c := novoCenario(t)
		c.produtos.produtos["combo"] = &produtodomain.Produto{ID: "combo", Nome: "Combo massa", PrecoVenda: 180, EhKit: true}
		c.produtos.componentes["combo"] = []produtodomain.ComponenteKit{
			{KitID: "combo", ProdutoID: "whey", Quantidade: 1},
			{KitID: "combo", ProdutoID: "creatina", Quantidade: 1},
		}

		out, err := c.uc.Executar(ctx, RegistrarVendaInput{
			UsuarioID:  "op1",
			Itens:      []ItemInput{{ProdutoID: "combo", Quantidade: 1}},
			Pagamentos: []PagamentoInput{{Metodo: vendadomain.MetodoPix, Valor: 180}},
		})

		require.NoError(t, err)
		assert.InDelta(t, 180.0, out.Venda.TotalBruto, 0.001)
	})

	t.Run("kit com componente inexistente", func(t *testing.T) {
		c := novoCenario(t)
		c.produtos.produtos["combo"] = &produtodomain.Produto{ID: "combo", Nome: "Combo massa", PrecoVenda: 180, EhKit: true}
		c.produtos.componentes["combo"] = []produtodomain.ComponenteKit{
			{KitID: "combo", ProdutoID: "fantasma", Quantidade: 1},
		}

		_, err := c.uc.Executar(ctx, RegistrarVendaInput{
			UsuarioID:  "op1",
			Itens:      []ItemInput{{ProdutoID: "combo", Quantidade: 1}},
			Pagamentos: []PagamentoInput{{Metodo: vendadomain.MetodoPix, Valor: 180}},
		})

		assert.ErrorIs(t, err, errNaoEncontrado)
	})

	t.Run("fiado não passa pelo processamento de pagamento", func(t *testing.T) {
		c := novoCenario(t)
		cli, err := clientedomain.NovoCliente("João", "", "", "")
		require.NoError(t, err)
		c.clientes.clientes[cli.ID] = cli

		out, err := c.uc.Executar(ctx, RegistrarVendaInput{
			ClienteID:  &cli.ID,
			UsuarioID:  "op1",
			Itens:      []ItemInput{{ProdutoID: "whey", Quantidade: 1}},
			Pagamentos: []PagamentoInput{{Metodo: vendadomain.MetodoFiado, Valor: 120}},
		})

		require.NoError(t, err)
		assert.Empty(t, out.Resultados)
	})
}
