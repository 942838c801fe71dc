package compra

import (
	"context"
	"time"

	compradomain "github.com/matheusprado/erp-suplementos/internal/domain/compra"
	fornecedordomain "github.com/matheusprado/erp-suplementos/internal/domain/fornecedor"
	produtodomain "github.com/matheusprado/erp-suplementos/internal/domain/produto"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// ItemCompraInput é um item informado na entrada da compra
type ItemCompraInput struct {
	ProdutoID     string
	Quantidade    int
	CustoUnitario float64
	Validade      *time.Time
}

// RegistrarCompraInput agrupa os dados de entrada do registro de compra
type RegistrarCompraInput struct {
	FornecedorID string
	NotaFiscal   string
	Data         time.Time
	Observacoes  string
	Itens        []ItemCompraInput
	Parcelas     int
	Intervalo    int
	EmMeses      bool
}

// RegistrarCompraUseCase registra uma entrada de mercadoria: cabeçalho,
// um lote por item e as parcelas a pagar geradas pela condição de pagamento
type RegistrarCompraUseCase struct {
	compras      compradomain.Repository
	produtos     produtodomain.Repository
	fornecedores fornecedordomain.Repository
	logger       logger.Logger
}

// NovoRegistrarCompraUseCase cria uma nova instância do caso de uso
func NovoRegistrarCompraUseCase(
	compras compradomain.Repository,
	produtos produtodomain.Repository,
	fornecedores fornecedordomain.Repository,
	logger logger.Logger,
) *RegistrarCompraUseCase {
	return &RegistrarCompraUseCase{
		compras:      compras,
		produtos:     produtos,
		fornecedores: fornecedores,
		logger:       logger,
	}
}

// Executar registra a compra
func (uc *RegistrarCompraUseCase) Executar(ctx context.Context, input RegistrarCompraInput) (*compradomain.Compra, error) {
	if _, err := uc.fornecedores.BuscarPorID(ctx, input.FornecedorID); err != nil {
		return nil, err
	}

	itens := make([]compradomain.ItemCompra, 0, len(input.Itens))
	for _, item := range input.Itens {
		if _, err := uc.produtos.BuscarPorID(ctx, item.ProdutoID); err != nil {
			return nil, err
		}
		itens = append(itens, compradomain.ItemCompra{
			ProdutoID:     item.ProdutoID,
			Quantidade:    item.Quantidade,
			CustoUnitario: item.CustoUnitario,
			Validade:      item.Validade,
		})
	}

	c, err := compradomain.NovaCompra(input.FornecedorID, input.NotaFiscal, input.Data, itens)
	if err != nil {
		return nil, err
	}
	c.Observacoes = input.Observacoes

	parcelas := input.Parcelas
	if parcelas <= 0 {
		parcelas = 1
	}
	condicao := compradomain.CondicaoPagamento{
		Parcelas:  parcelas,
		Intervalo: input.Intervalo,
		EmMeses:   input.EmMeses,
	}

	if err := uc.compras.Criar(ctx, c, condicao); err != nil {
		uc.logger.Error("erro ao registrar compra", "compra_id", c.ID, "error", err)
		return nil, err
	}

	uc.logger.Info("compra registrada", "compra_id", c.ID, "total", c.Total, "itens", len(c.Itens))
	return c, nil
}
