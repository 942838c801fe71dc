package produto

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNomeVazio          = errors.New("nome não pode ser vazio")
	ErrPrecoInvalido      = errors.New("preço de venda deve ser maior ou igual a zero")
	ErrQuantidadeInvalida = errors.New("quantidade deve ser maior que zero")
	ErrComposicaoVazia    = errors.New("kit deve possuir ao menos um componente")
	ErrComposicaoCiclica  = errors.New("composição de kit não pode conter ciclos")
	ErrComposicaoProfunda = errors.New("composição de kit excede a profundidade máxima")
)

// LimiteEstoqueBaixo é o total de unidades a partir do qual uma notificação
// de estoque baixo é emitida
const LimiteEstoqueBaixo = 3

// LimiarEstoqueBaixo devolve o limiar de alerta do produto: o estoque mínimo
// cadastrado prevalece quando for maior que o piso global
func LimiarEstoqueBaixo(estoqueMinimo int) int {
	if estoqueMinimo > LimiteEstoqueBaixo {
		return estoqueMinimo
	}
	return LimiteEstoqueBaixo
}

// ProfundidadeMaxComposicao limita a recursão na expansão de kits
const ProfundidadeMaxComposicao = 8

// Status representa o estado do produto
type Status string

const (
	StatusAtivo   Status = "ATIVO"
	StatusInativo Status = "INATIVO"
)

// Produto representa um item do catálogo. O estoque nunca é armazenado no
// produto: é sempre derivado dos lotes (ou dos componentes, no caso de kits).
type Produto struct {
	ID            string     `json:"id"`
	Nome          string     `json:"nome"`
	CategoriaID   *string    `json:"categoria_id"`
	FabricanteID  *string    `json:"fabricante_id"`
	PrecoVenda    float64    `json:"preco_venda"`
	EhKit         bool       `json:"eh_kit"`
	EstoqueMinimo int        `json:"estoque_minimo"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Lote representa uma partida física de estoque de um produto, com custo e
// validade próprios. A quantidade é inteira com sinal: saldo negativo modela
// venda sob encomenda.
type Lote struct {
	ID            string     `json:"id"`
	ProdutoID     string     `json:"produto_id"`
	Quantidade    int        `json:"quantidade"`
	Validade      *time.Time `json:"validade"`
	CustoUnitario float64    `json:"custo_unitario"`
	CompraID      *string    `json:"compra_id"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ComponenteKit é a aresta de composição entre um kit e um produto componente
type ComponenteKit struct {
	KitID           string  `json:"kit_id"`
	ProdutoID       string  `json:"produto_id"`
	Quantidade      int     `json:"quantidade"`
	PrecoComponente float64 `json:"preco_componente"`
}

// NovoProduto cria um novo produto
func NovoProduto(nome string, precoVenda float64, ehKit bool, estoqueMinimo int) (*Produto, error) {
	if nome == "" {
		return nil, ErrNomeVazio
	}
	if precoVenda < 0 {
		return nil, ErrPrecoInvalido
	}
	if estoqueMinimo < 0 {
		estoqueMinimo = 0
	}

	now := time.Now()
	return &Produto{
		ID:            uuid.New().String(),
		Nome:          nome,
		PrecoVenda:    precoVenda,
		EhKit:         ehKit,
		EstoqueMinimo: estoqueMinimo,
		Status:        StatusAtivo,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// NovoLote cria um novo lote para o produto informado
func NovoLote(produtoID string, quantidade int, custoUnitario float64, validade *time.Time, compraID *string) *Lote {
	return &Lote{
		ID:            uuid.New().String(),
		ProdutoID:     produtoID,
		Quantidade:    quantidade,
		Validade:      validade,
		CustoUnitario: custoUnitario,
		CompraID:      compraID,
		CreatedAt:     time.Now(),
	}
}

// EstaAtivo verifica se o produto está ativo
func (p *Produto) EstaAtivo() bool {
	return p.Status == StatusAtivo
}

// Ativar ativa o produto
func (p *Produto) Ativar() {
	p.Status = StatusAtivo
	p.UpdatedAt = time.Now()
}

// Desativar desativa o produto
func (p *Produto) Desativar() {
	p.Status = StatusInativo
	p.UpdatedAt = time.Now()
}

// Patch lista os campos mutáveis de um produto. Campos de identidade e
// derivados (ID, EhKit, estoque) ficam de fora de propósito.
type Patch struct {
	Nome          *string
	CategoriaID   *string
	FabricanteID  *string
	PrecoVenda    *float64
	EstoqueMinimo *int
}

// Aplicar aplica um patch parcial ao produto
func (p *Produto) Aplicar(patch Patch) error {
	if patch.Nome != nil {
		if *patch.Nome == "" {
			return ErrNomeVazio
		}
		p.Nome = *patch.Nome
	}
	if patch.CategoriaID != nil {
		p.CategoriaID = patch.CategoriaID
	}
	if patch.FabricanteID != nil {
		p.FabricanteID = patch.FabricanteID
	}
	if patch.PrecoVenda != nil {
		if *patch.PrecoVenda < 0 {
			return ErrPrecoInvalido
		}
		p.PrecoVenda = *patch.PrecoVenda
	}
	if patch.EstoqueMinimo != nil && *patch.EstoqueMinimo >= 0 {
		p.EstoqueMinimo = *patch.EstoqueMinimo
	}
	p.UpdatedAt = time.Now()
	return nil
}

// PrecoKitSugerido calcula o preço do kit a partir dos preços de componente
// informados na composição. Usado apenas na criação do kit.
func PrecoKitSugerido(componentes []ComponenteKit) float64 {
	var total float64
	for _, c := range componentes {
		total += c.PrecoComponente * float64(c.Quantidade)
	}
	return total
}

// ValidarComposicao percorre a composição de um kit com profundidade limitada
// e rejeita auto-referências e ciclos, diretos ou transitivos. A função
// buscar deve retornar os componentes diretos de um produto (vazio para
// produtos simples).
func ValidarComposicao(kitID string, componentes []ComponenteKit, buscar func(id string) ([]ComponenteKit, error)) error {
	if len(componentes) == 0 {
		return ErrComposicaoVazia
	}
	for _, c := range componentes {
		if c.Quantidade <= 0 {
			return ErrQuantidadeInvalida
		}
	}

	caminho := map[string]bool{kitID: true}
	return validarComponentes(componentes, caminho, 1, buscar)
}

func validarComponentes(componentes []ComponenteKit, caminho map[string]bool, nivel int, buscar func(id string) ([]ComponenteKit, error)) error {
	if nivel > ProfundidadeMaxComposicao {
		return ErrComposicaoProfunda
	}

	for _, c := range componentes {
		if caminho[c.ProdutoID] {
			return ErrComposicaoCiclica
		}

		filhos, err := buscar(c.ProdutoID)
		if err != nil {
			return err
		}
		if len(filhos) == 0 {
			continue
		}

		caminho[c.ProdutoID] = true
		if err := validarComponentes(filhos, caminho, nivel+1, buscar); err != nil {
			return err
		}
		delete(caminho, c.ProdutoID)
	}

	return nil
}
