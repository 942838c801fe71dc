package cliente

import (
	"context"
	"fmt"

	clientedomain "github.com/matheusprado/erp-suplementos/internal/domain/cliente"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// ExtratoCredito devolve o razão de crédito do cliente com o saldo reduzido
type ExtratoCredito struct {
	Saldo      float64                            `json:"saldo"`
	Movimentos []clientedomain.MovimentoCredito   `json:"movimentos"`
}

// GerirCreditoUseCase concentra as operações sobre o razão de crédito e a
// fidelidade do cliente
type GerirCreditoUseCase struct {
	clientes clientedomain.Repository
	logger   logger.Logger
}

// NovoGerirCreditoUseCase cria uma nova instância do caso de uso
func NovoGerirCreditoUseCase(clientes clientedomain.Repository, logger logger.Logger) *GerirCreditoUseCase {
	return &GerirCreditoUseCase{clientes: clientes, logger: logger}
}

// Extrato devolve o razão de crédito e o saldo atual do cliente
func (uc *GerirCreditoUseCase) Extrato(ctx context.Context, clienteID string) (*ExtratoCredito, error) {
	if _, err := uc.clientes.BuscarPorID(ctx, clienteID); err != nil {
		return nil, err
	}

	movimentos, err := uc.clientes.MovimentosCredito(ctx, clienteID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar razão de crédito: %w", err)
	}

	return &ExtratoCredito{
		Saldo:      clientedomain.SaldoCredito(movimentos),
		Movimentos: movimentos,
	}, nil
}

// Ajustar acrescenta um movimento manual ao razão de crédito. Saída que
// deixaria o saldo negativo é rejeitada.
func (uc *GerirCreditoUseCase) Ajustar(ctx context.Context, clienteID string, tipo clientedomain.TipoMovimentoCredito, valor float64, descricao string) (*clientedomain.MovimentoCredito, error) {
	if _, err := uc.clientes.BuscarPorID(ctx, clienteID); err != nil {
		return nil, err
	}

	if tipo == clientedomain.CreditoSaida {
		saldo, err := uc.clientes.SaldoCredito(ctx, clienteID)
		if err != nil {
			return nil, fmt.Errorf("erro ao apurar saldo de crédito: %w", err)
		}
		if saldo < valor {
			return nil, clientedomain.ErrSaldoCreditoInsuficiente
		}
	}

	m, err := clientedomain.NovoMovimentoCredito(clienteID, tipo, valor, descricao)
	if err != nil {
		return nil, err
	}

	if err := uc.clientes.RegistrarMovimentoCredito(ctx, m); err != nil {
		uc.logger.Error("erro ao registrar ajuste de crédito", "cliente_id", clienteID, "error", err)
		return nil, err
	}

	uc.logger.Info("crédito ajustado", "cliente_id", clienteID, "tipo", tipo, "valor", valor)
	return m, nil
}

// Fidelidade devolve o perfil de pontos do cliente
func (uc *GerirCreditoUseCase) Fidelidade(ctx context.Context, clienteID string) (*clientedomain.Fidelizacao, error) {
	if _, err := uc.clientes.BuscarPorID(ctx, clienteID); err != nil {
		return nil, err
	}
	return uc.clientes.BuscarFidelizacao(ctx, clienteID)
}
