package produto

import (
	"context"
)

// Filtro restringe a listagem de produtos
type Filtro struct {
	Nome        string
	CategoriaID string
	Status      Status
	ApenasKits  bool
}

// Repository define a interface para operações de repositório de produtos e lotes
type Repository interface {
	// Criar cria um novo produto; para kits, grava também a composição
	Criar(ctx context.Context, p *Produto, componentes []ComponenteKit) error

	// BuscarPorID busca um produto pelo ID
	BuscarPorID(ctx context.Context, id string) (*Produto, error)

	// Listar lista os produtos com paginação
	Listar(ctx context.Context, filtro Filtro, limit, offset int) ([]*Produto, error)

	// Atualizar atualiza os dados de um produto existente
	Atualizar(ctx context.Context, p *Produto) error

	// Excluir remove um produto; em caso de vínculos existentes o produto é
	// apenas desativado
	Excluir(ctx context.Context, id string) error

	// Existe verifica se um produto existe
	Existe(ctx context.Context, id string) (bool, error)

	// BuscarComponentes retorna a composição direta de um kit
	BuscarComponentes(ctx context.Context, kitID string) ([]ComponenteKit, error)

	// BuscarLotes retorna todos os lotes de um produto
	BuscarLotes(ctx context.Context, produtoID string) ([]Lote, error)

	// EstoqueFisico retorna a soma das quantidades dos lotes do produto,
	// inclusive negativas
	EstoqueFisico(ctx context.Context, produtoID string) (int, error)

	// EstoqueDisponivel retorna o estoque derivado do produto: soma dos lotes
	// para produtos simples, regra do gargalo para kits
	EstoqueDisponivel(ctx context.Context, produtoID string) (int, error)
}
