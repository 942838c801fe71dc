package financeiro

import (
	"context"

	financeirodomain "github.com/matheusprado/erp-suplementos/internal/domain/financeiro"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// PagarLancamentoInput agrupa a entrada do pagamento de um lançamento
type PagarLancamentoInput struct {
	LancamentoID   string
	Valor          float64
	FormaPagamento string
}

// PagarLancamentoUseCase aplica um pagamento parcial ou total a um único
// lançamento. Sem valor informado, quita o saldo restante.
type PagarLancamentoUseCase struct {
	financeiro financeirodomain.Repository
	logger     logger.Logger
}

// NovoPagarLancamentoUseCase cria uma nova instância do caso de uso
func NovoPagarLancamentoUseCase(financeiro financeirodomain.Repository, logger logger.Logger) *PagarLancamentoUseCase {
	return &PagarLancamentoUseCase{financeiro: financeiro, logger: logger}
}

// Executar aplica o pagamento e devolve o lançamento atualizado
func (uc *PagarLancamentoUseCase) Executar(ctx context.Context, input PagarLancamentoInput) (*financeirodomain.Lancamento, error) {
	l, err := uc.financeiro.BuscarPorID(ctx, input.LancamentoID)
	if err != nil {
		return nil, err
	}

	valor := input.Valor
	if valor == 0 {
		valor = l.SaldoRestante()
	}

	// Validação antecipada com as regras da entidade; a aplicação definitiva
	// acontece dentro da transação do repositório
	copia := *l
	if err := copia.RegistrarPagamento(valor); err != nil {
		return nil, err
	}

	atualizado, err := uc.financeiro.RegistrarPagamento(ctx, l.ID, valor, input.FormaPagamento)
	if err != nil {
		uc.logger.Error("erro ao registrar pagamento", "lancamento_id", l.ID, "error", err)
		return nil, err
	}

	uc.logger.Info("pagamento registrado",
		"lancamento_id", atualizado.ID,
		"valor", valor,
		"status", atualizado.Status)

	return atualizado, nil
}
