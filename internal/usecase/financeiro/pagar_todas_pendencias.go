package financeiro

import (
	"context"
	"fmt"

	clientedomain "github.com/matheusprado/erp-suplementos/internal/domain/cliente"
	financeirodomain "github.com/matheusprado/erp-suplementos/internal/domain/financeiro"
	vendadomain "github.com/matheusprado/erp-suplementos/internal/domain/venda"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// PagarTodasPendenciasInput agrupa a entrada da quitação em lote
type PagarTodasPendenciasInput struct {
	ClienteID      string
	Valor          float64
	FormaPagamento string
}

// PagarTodasPendenciasOutput resume o efeito da quitação em lote
type PagarTodasPendenciasOutput struct {
	ValorPago       float64  `json:"valor_pago"`
	DividasQuitadas []string `json:"dividas_quitadas"`
	DividasParciais []string `json:"dividas_parciais"`
	CreditoGerado   float64  `json:"credito_gerado"`
}

// PagarTodasPendenciasUseCase distribui um único pagamento entre todas as
// receitas pendentes do cliente, da dívida mais antiga para a mais nova.
// A sobra além de todas as dívidas vira crédito no razão do cliente.
type PagarTodasPendenciasUseCase struct {
	financeiro financeirodomain.Repository
	clientes   clientedomain.Repository
	logger     logger.Logger
}

// NovoPagarTodasPendenciasUseCase cria uma nova instância do caso de uso
func NovoPagarTodasPendenciasUseCase(
	financeiro financeirodomain.Repository,
	clientes clientedomain.Repository,
	logger logger.Logger,
) *PagarTodasPendenciasUseCase {
	return &PagarTodasPendenciasUseCase{
		financeiro: financeiro,
		clientes:   clientes,
		logger:     logger,
	}
}

// Executar quita as pendências do cliente com o valor informado
func (uc *PagarTodasPendenciasUseCase) Executar(ctx context.Context, input PagarTodasPendenciasInput) (*PagarTodasPendenciasOutput, error) {
	if input.Valor <= 0 {
		return nil, financeirodomain.ErrValorInvalido
	}
	if !vendadomain.MetodoValido(vendadomain.MetodoPagamento(input.FormaPagamento)) {
		return nil, financeirodomain.ErrFormaInvalida
	}

	if _, err := uc.clientes.BuscarPorID(ctx, input.ClienteID); err != nil {
		return nil, err
	}

	pendentes, err := uc.financeiro.PendentesPorCliente(ctx, input.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pendências do cliente: %w", err)
	}

	resultado := financeirodomain.AlocarPagamentoFIFO(pendentes, input.Valor)

	if err := uc.financeiro.AplicarAlocacoes(ctx, input.ClienteID, resultado, input.FormaPagamento); err != nil {
		uc.logger.Error("erro ao aplicar quitação em lote", "cliente_id", input.ClienteID, "error", err)
		return nil, err
	}

	output := &PagarTodasPendenciasOutput{
		ValorPago:       resultado.ValorAplicado,
		DividasQuitadas: make([]string, 0),
		DividasParciais: make([]string, 0),
		CreditoGerado:   resultado.CreditoGerado,
	}
	for _, a := range resultado.Alocacoes {
		if a.Quitado {
			output.DividasQuitadas = append(output.DividasQuitadas, a.LancamentoID)
		} else {
			output.DividasParciais = append(output.DividasParciais, a.LancamentoID)
		}
	}

	uc.logger.Info("pendências quitadas",
		"cliente_id", input.ClienteID,
		"valor_pago", output.ValorPago,
		"quitadas", len(output.DividasQuitadas),
		"parciais", len(output.DividasParciais),
		"credito_gerado", output.CreditoGerado)

	return output, nil
}
