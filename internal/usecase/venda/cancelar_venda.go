package venda

import (
	"context"

	vendadomain "github.com/matheusprado/erp-suplementos/internal/domain/venda"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// CancelarVendaUseCase reverte uma venda concluída: devolve o estoque aos
// lotes, estorna os pontos de fidelidade e remove a pendência de fiado.
// O registro da venda permanece, apenas com status cancelado.
type CancelarVendaUseCase struct {
	vendas vendadomain.Repository
	logger logger.Logger
}

// NovoCancelarVendaUseCase cria uma nova instância do caso de uso
func NovoCancelarVendaUseCase(vendas vendadomain.Repository, logger logger.Logger) *CancelarVendaUseCase {
	return &CancelarVendaUseCase{vendas: vendas, logger: logger}
}

// Executar cancela a venda informada
func (uc *CancelarVendaUseCase) Executar(ctx context.Context, vendaID string) error {
	v, err := uc.vendas.BuscarPorID(ctx, vendaID)
	if err != nil {
		return err
	}

	if v.Status == vendadomain.StatusCancelada {
		return vendadomain.ErrVendaCancelada
	}

	if err := uc.vendas.Cancelar(ctx, v.ID); err != nil {
		uc.logger.Error("erro ao cancelar venda", "venda_id", v.ID, "error", err)
		return err
	}

	uc.logger.Info("venda cancelada", "venda_id", v.ID)
	return nil
}
