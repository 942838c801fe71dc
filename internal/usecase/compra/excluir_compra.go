package compra

import (
	"context"
	"fmt"

	compradomain "github.com/matheusprado/erp-suplementos/internal/domain/compra"
	produtodomain "github.com/matheusprado/erp-suplementos/internal/domain/produto"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// ExcluirCompraUseCase reverte uma compra por completo: remove os lotes
// gerados, cancela os pagáveis pendentes e apaga o cabeçalho. A reversão
// falha se o estoque atual de algum produto for menor que a quantidade do
// lote a remover: nesse caso parte da mercadoria já saiu e não há de onde
// retirá-la. Vendas cobertas por outros lotes do mesmo produto não impedem
// a exclusão.
type ExcluirCompraUseCase struct {
	compras  compradomain.Repository
	produtos produtodomain.Repository
	logger   logger.Logger
}

// NovoExcluirCompraUseCase cria uma nova instância do caso de uso
func NovoExcluirCompraUseCase(
	compras compradomain.Repository,
	produtos produtodomain.Repository,
	logger logger.Logger,
) *ExcluirCompraUseCase {
	return &ExcluirCompraUseCase{compras: compras, produtos: produtos, logger: logger}
}

// Executar exclui a compra informada
func (uc *ExcluirCompraUseCase) Executar(ctx context.Context, compraID string) error {
	c, err := uc.compras.BuscarPorID(ctx, compraID)
	if err != nil {
		return err
	}

	// Cada item gerou um lote; o estoque atual do produto precisa cobrir a
	// quantidade do lote para que a retirada não deixe saldo negativo
	for _, item := range c.Itens {
		estoque, err := uc.produtos.EstoqueFisico(ctx, item.ProdutoID)
		if err != nil {
			return fmt.Errorf("erro ao apurar estoque do produto %s: %w", item.ProdutoID, err)
		}
		if estoque < item.Quantidade {
			return compradomain.ErrEstoqueAbaixoDoLote
		}
	}

	if err := uc.compras.Excluir(ctx, c.ID); err != nil {
		uc.logger.Error("erro ao excluir compra", "compra_id", c.ID, "error", err)
		return err
	}

	uc.logger.Info("compra excluída", "compra_id", c.ID)
	return nil
}
