package compra

import (
	"context"
	"fmt"
	"time"

	compradomain "github.com/matheusprado/erp-suplementos/internal/domain/compra"
	produtodomain "github.com/matheusprado/erp-suplementos/internal/domain/produto"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// EditarCompraInput agrupa os dados de entrada da edição de compra
type EditarCompraInput struct {
	CompraID    string
	NotaFiscal  string
	Data        time.Time
	Observacoes string
	Itens       []ItemCompraInput
	Parcelas    int
	Intervalo   int
	EmMeses     bool
}

// EditarCompraUseCase reescreve uma compra já registrada: os lotes são
// apagados e recriados a partir dos novos itens e os pagáveis pendentes são
// regenerados. Reduções de quantidade são barradas quando excedem o estoque
// atual do produto: diferente da venda, a edição não tolera empurrar o
// estoque para baixo do que já foi vendido.
type EditarCompraUseCase struct {
	compras  compradomain.Repository
	produtos produtodomain.Repository
	logger   logger.Logger
}

// NovoEditarCompraUseCase cria uma nova instância do caso de uso
func NovoEditarCompraUseCase(
	compras compradomain.Repository,
	produtos produtodomain.Repository,
	logger logger.Logger,
) *EditarCompraUseCase {
	return &EditarCompraUseCase{compras: compras, produtos: produtos, logger: logger}
}

// Executar aplica a edição sobre a compra informada
func (uc *EditarCompraUseCase) Executar(ctx context.Context, input EditarCompraInput) (*compradomain.Compra, error) {
	original, err := uc.compras.BuscarPorID(ctx, input.CompraID)
	if err != nil {
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

	editada, err := compradomain.NovaCompra(original.FornecedorID, input.NotaFiscal, input.Data, itens)
	if err != nil {
		return nil, err
	}
	editada.ID = original.ID
	editada.CreatedAt = original.CreatedAt
	editada.Observacoes = input.Observacoes
	for i := range editada.Itens {
		editada.Itens[i].CompraID = original.ID
	}

	// Guarda de estoque: a redução líquida por produto não pode exceder o
	// estoque atual, senão unidades já vendidas ficariam sem origem
	for _, reducao := range compradomain.CalcularReducoes(original.Itens, editada.Itens) {
		estoque, err := uc.produtos.EstoqueFisico(ctx, reducao.ProdutoID)
		if err != nil {
			return nil, fmt.Errorf("erro ao apurar estoque do produto %s: %w", reducao.ProdutoID, err)
		}
		if reducao.Quantidade > estoque {
			return nil, compradomain.ErrReducaoAbaixoVendido
		}
	}

	parcelas := input.Parcelas
	if parcelas <= 0 {
		parcelas = 1
	}
	condicao := compradomain.CondicaoPagamento{
		Parcelas:  parcelas,
		Intervalo: input.Intervalo,
		EmMeses:   input.EmMeses,
	}

	if err := uc.compras.Atualizar(ctx, editada, condicao); err != nil {
		uc.logger.Error("erro ao editar compra", "compra_id", editada.ID, "error", err)
		return nil, err
	}

	uc.logger.Info("compra editada", "compra_id", editada.ID, "total", editada.Total)
	return editada, nil
}
