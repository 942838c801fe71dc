package venda

import (
	"context"
	"fmt"

	clientedomain "github.com/matheusprado/erp-suplementos/internal/domain/cliente"
	caixadomain "github.com/matheusprado/erp-suplementos/internal/domain/caixa"
	produtodomain "github.com/matheusprado/erp-suplementos/internal/domain/produto"
	vendadomain "github.com/matheusprado/erp-suplementos/internal/domain/venda"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// ItemInput é um item do carrinho na entrada da venda
type ItemInput struct {
	ProdutoID  string
	Quantidade int
}

// PagamentoInput é um pagamento informado na entrada da venda
type PagamentoInput struct {
	Metodo        vendadomain.MetodoPagamento
	Valor         float64
	Parcelas      int
	ValorRecebido float64
}

// RegistrarVendaInput agrupa os dados de entrada do registro de venda
type RegistrarVendaInput struct {
	ClienteID      *string
	UsuarioID      string
	Itens          []ItemInput
	Pagamentos     []PagamentoInput
	DescontoManual float64
	PontosUsados   int
	DestinoTroco   vendadomain.DestinoTroco
}

// RegistrarVendaOutput devolve a venda persistida e o resultado do
// processamento de cada pagamento
type RegistrarVendaOutput struct {
	Venda      *vendadomain.Venda
	Resultados []vendadomain.ResultadoPagamento
}

// RegistrarVendaUseCase coordena a validação, o cálculo e a persistência
// atômica de uma venda
type RegistrarVendaUseCase struct {
	produtos produtodomain.Repository
	vendas   vendadomain.Repository
	clientes clientedomain.Repository
	caixa    caixadomain.Repository
	logger   logger.Logger
}

// NovoRegistrarVendaUseCase cria uma nova instância do caso de uso
func NovoRegistrarVendaUseCase(
	produtos produtodomain.Repository,
	vendas vendadomain.Repository,
	clientes clientedomain.Repository,
	caixa caixadomain.Repository,
	logger logger.Logger,
) *RegistrarVendaUseCase {
	return &RegistrarVendaUseCase{
		produtos: produtos,
		vendas:   vendas,
		clientes: clientes,
		caixa:    caixa,
		logger:   logger,
	}
}

// Executar registra a venda. Nenhuma mutação acontece antes de todas as
// pré-condições passarem; a persistência em si é uma única transação dentro
// do repositório.
func (uc *RegistrarVendaUseCase) Executar(ctx context.Context, input RegistrarVendaInput) (*RegistrarVendaOutput, error) {
	if len(input.Pagamentos) == 0 {
		return nil, vendadomain.ErrSemPagamentos
	}
	if len(input.Itens) == 0 {
		return nil, vendadomain.ErrSemItens
	}

	for _, p := range input.Pagamentos {
		if !vendadomain.MetodoValido(p.Metodo) {
			return nil, vendadomain.ErrMetodoInvalido
		}
	}

	// Pagamento em dinheiro exige gaveta aberta; o troco em dinheiro é
	// conferido de novo depois do cálculo do total com desconto
	sessao, err := uc.caixa.SessaoAberta(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar sessão de caixa: %w", err)
	}

	v := vendadomain.NovaVenda(input.ClienteID, input.UsuarioID)
	v.DescontoManual = input.DescontoManual
	v.PontosUsados = input.PontosUsados
	if input.DestinoTroco != "" {
		v.DestinoTroco = input.DestinoTroco
	}

	for _, p := range input.Pagamentos {
		v.Pagamentos = append(v.Pagamentos, vendadomain.Pagamento{
			VendaID:       v.ID,
			Metodo:        p.Metodo,
			Valor:         p.Valor,
			Parcelas:      p.Parcelas,
			ValorRecebido: p.ValorRecebido,
		})
	}

	if v.TemPagamento(vendadomain.MetodoDinheiro) && sessao == nil {
		return nil, vendadomain.ErrCaixaFechado
	}

	if input.PontosUsados > 0 && input.ClienteID == nil {
		return nil, vendadomain.ErrPontosSemCliente
	}

	if input.ClienteID != nil {
		if _, err := uc.clientes.BuscarPorID(ctx, *input.ClienteID); err != nil {
			return nil, err
		}
	}

	// Validação recursiva de existência: kits são expandidos até os
	// componentes. Estoque negativo é tolerado, então nada aqui confere
	// saldo físico.
	for _, item := range input.Itens {
		if item.Quantidade <= 0 {
			return nil, vendadomain.ErrQuantidadeInvalida
		}

		p, err := uc.validarProduto(ctx, item.ProdutoID, 0)
		if err != nil {
			return nil, err
		}

		v.Itens = append(v.Itens, vendadomain.ItemVenda{
			VendaID:       v.ID,
			ProdutoID:     p.ID,
			Quantidade:    item.Quantidade,
			PrecoUnitario: p.PrecoVenda,
		})
	}

	v.CalcularTotais()

	// Processamento sem efeito colateral, para taxas e troco por método
	resultados := make([]vendadomain.ResultadoPagamento, 0, len(v.Pagamentos))
	for _, p := range v.Pagamentos {
		if p.Metodo == vendadomain.MetodoFiado {
			continue
		}
		resultado, err := vendadomain.ProcessarPagamento(p)
		if err != nil {
			return nil, err
		}
		resultados = append(resultados, resultado)
	}

	soma := v.SomaPagamentos()
	if soma < v.TotalLiquido-vendadomain.Tolerancia {
		return nil, vendadomain.ErrPagamentoInsuficiente
	}

	v.Troco = soma - v.TotalLiquido
	if v.Troco > vendadomain.Tolerancia && v.DestinoTroco == vendadomain.TrocoDinheiro && sessao == nil {
		return nil, vendadomain.ErrCaixaFechado
	}

	if err := uc.vendas.Salvar(ctx, v); err != nil {
		uc.logger.Error("erro ao salvar venda", "venda_id", v.ID, "error", err)
		return nil, err
	}

	uc.logger.Info("venda registrada", "venda_id", v.ID, "total", v.TotalLiquido, "troco", v.Troco)
	return &RegistrarVendaOutput{Venda: v, Resultados: resultados}, nil
}

func (uc *RegistrarVendaUseCase) validarProduto(ctx context.Context, produtoID string, nivel int) (*produtodomain.Produto, error) {
	if nivel > produtodomain.ProfundidadeMaxComposicao {
		return nil, produtodomain.ErrComposicaoProfunda
	}

	p, err := uc.produtos.BuscarPorID(ctx, produtoID)
	if err != nil {
		return nil, err
	}

	if p.EhKit {
		componentes, err := uc.produtos.BuscarComponentes(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		for _, c := range componentes {
			if _, err := uc.validarProduto(ctx, c.ProdutoID, nivel+1); err != nil {
				return nil, err
			}
		}
	}

	return p, nil
}
