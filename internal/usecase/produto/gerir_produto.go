package produto

import (
	"context"
	"fmt"

	produtodomain "github.com/matheusprado/erp-suplementos/internal/domain/produto"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// ComponenteInput é um componente informado na criação de um kit
type ComponenteInput struct {
	ProdutoID       string
	Quantidade      int
	PrecoComponente float64
}

// CriarProdutoInput agrupa os dados de entrada da criação de produto
type CriarProdutoInput struct {
	Nome          string
	CategoriaID   *string
	FabricanteID  *string
	PrecoVenda    float64
	EhKit         bool
	EstoqueMinimo int
	Componentes   []ComponenteInput
}

// ProdutoDetalhe devolve o produto com o estoque derivado e o custo médio
type ProdutoDetalhe struct {
	Produto           *produtodomain.Produto         `json:"produto"`
	EstoqueDisponivel int                            `json:"estoque_disponivel"`
	CustoMedio        float64                        `json:"custo_medio"`
	Lotes             []produtodomain.Lote           `json:"lotes,omitempty"`
	Componentes       []produtodomain.ComponenteKit  `json:"componentes,omitempty"`
}

// GerirProdutoUseCase concentra as operações de catálogo: criação com
// validação de composição, edição parcial, exclusão e consultas com estoque
// derivado
type GerirProdutoUseCase struct {
	produtos produtodomain.Repository
	logger   logger.Logger
}

// NovoGerirProdutoUseCase cria uma nova instância do caso de uso
func NovoGerirProdutoUseCase(produtos produtodomain.Repository, logger logger.Logger) *GerirProdutoUseCase {
	return &GerirProdutoUseCase{produtos: produtos, logger: logger}
}

// Criar cria um produto simples ou um kit. A composição do kit é validada
// contra auto-referência e ciclos antes de qualquer escrita; com preço de
// venda zerado, o preço do kit é derivado dos preços de componente.
func (uc *GerirProdutoUseCase) Criar(ctx context.Context, input CriarProdutoInput) (*produtodomain.Produto, error) {
	var componentes []produtodomain.ComponenteKit

	if input.EhKit {
		for _, c := range input.Componentes {
			existe, err := uc.produtos.Existe(ctx, c.ProdutoID)
			if err != nil {
				return nil, fmt.Errorf("erro ao verificar componente: %w", err)
			}
			if !existe {
				return nil, fmt.Errorf("componente %s: produto não encontrado", c.ProdutoID)
			}
			componentes = append(componentes, produtodomain.ComponenteKit{
				ProdutoID:       c.ProdutoID,
				Quantidade:      c.Quantidade,
				PrecoComponente: c.PrecoComponente,
			})
		}

		if input.PrecoVenda == 0 {
			input.PrecoVenda = produtodomain.PrecoKitSugerido(componentes)
		}
	}

	p, err := produtodomain.NovoProduto(input.Nome, input.PrecoVenda, input.EhKit, input.EstoqueMinimo)
	if err != nil {
		return nil, err
	}
	p.CategoriaID = input.CategoriaID
	p.FabricanteID = input.FabricanteID

	if input.EhKit {
		for i := range componentes {
			componentes[i].KitID = p.ID
		}
		err := produtodomain.ValidarComposicao(p.ID, componentes, func(id string) ([]produtodomain.ComponenteKit, error) {
			return uc.produtos.BuscarComponentes(ctx, id)
		})
		if err != nil {
			return nil, err
		}
	}

	if err := uc.produtos.Criar(ctx, p, componentes); err != nil {
		uc.logger.Error("erro ao criar produto", "nome", input.Nome, "error", err)
		return nil, err
	}

	uc.logger.Info("produto criado", "produto_id", p.ID, "eh_kit", p.EhKit)
	return p, nil
}

// Atualizar aplica um patch parcial ao produto
func (uc *GerirProdutoUseCase) Atualizar(ctx context.Context, id string, patch produtodomain.Patch) (*produtodomain.Produto, error) {
	p, err := uc.produtos.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.Aplicar(patch); err != nil {
		return nil, err
	}

	if err := uc.produtos.Atualizar(ctx, p); err != nil {
		uc.logger.Error("erro ao atualizar produto", "produto_id", id, "error", err)
		return nil, err
	}
	return p, nil
}

// Excluir remove o produto; com vínculos existentes o produto é desativado
func (uc *GerirProdutoUseCase) Excluir(ctx context.Context, id string) error {
	return uc.produtos.Excluir(ctx, id)
}

// Detalhar devolve o produto com o estoque disponível, o custo médio e os
// lotes (ou a composição, para kits)
func (uc *GerirProdutoUseCase) Detalhar(ctx context.Context, id string) (*ProdutoDetalhe, error) {
	p, err := uc.produtos.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}

	disponivel, err := uc.produtos.EstoqueDisponivel(ctx, id)
	if err != nil {
		return nil, err
	}

	detalhe := &ProdutoDetalhe{Produto: p, EstoqueDisponivel: disponivel}

	if p.EhKit {
		componentes, err := uc.produtos.BuscarComponentes(ctx, id)
		if err != nil {
			return nil, err
		}
		detalhe.Componentes = componentes
		return detalhe, nil
	}

	lotes, err := uc.produtos.BuscarLotes(ctx, id)
	if err != nil {
		return nil, err
	}
	detalhe.Lotes = lotes
	detalhe.CustoMedio = produtodomain.CustoMedio(lotes)
	return detalhe, nil
}

// Listar lista os produtos com o estoque disponível de cada um
func (uc *GerirProdutoUseCase) Listar(ctx context.Context, filtro produtodomain.Filtro, limit, offset int) ([]*ProdutoDetalhe, error) {
	produtos, err := uc.produtos.Listar(ctx, filtro, limit, offset)
	if err != nil {
		return nil, err
	}

	detalhes := make([]*ProdutoDetalhe, 0, len(produtos))
	for _, p := range produtos {
		disponivel, err := uc.produtos.EstoqueDisponivel(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		detalhes = append(detalhes, &ProdutoDetalhe{Produto: p, EstoqueDisponivel: disponivel})
	}
	return detalhes, nil
}
