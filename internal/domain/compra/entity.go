package compra

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSemItens             = errors.New("a compra deve possuir ao menos um item")
	ErrQuantidadeInvalida   = errors.New("quantidade do item deve ser maior que zero")
	ErrCustoInvalido        = errors.New("custo unitário deve ser maior ou igual a zero")
	ErrParcelasInvalidas    = errors.New("número de parcelas deve ser maior que zero")
	ErrReducaoAbaixoVendido = errors.New("redução de quantidade excede o estoque disponível do produto")
	ErrEstoqueAbaixoDoLote  = errors.New("estoque atual é menor que a quantidade do lote da compra")
)

// ItemCompra é uma linha da compra; cada item gera exatamente um lote
type ItemCompra struct {
	ID            string     `json:"id"`
	CompraID      string     `json:"compra_id"`
	ProdutoID     string     `json:"produto_id"`
	Quantidade    int        `json:"quantidade"`
	CustoUnitario float64    `json:"custo_unitario"`
	Validade      *time.Time `json:"validade"`
}

// Compra representa uma entrada de mercadoria de um fornecedor
type Compra struct {
	ID           string       `json:"id"`
	FornecedorID string       `json:"fornecedor_id"`
	NotaFiscal   string       `json:"nota_fiscal"`
	Data         time.Time    `json:"data"`
	Total        float64      `json:"total"`
	Observacoes  string       `json:"observacoes"`
	Itens        []ItemCompra `json:"itens"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NovaCompra cria uma nova compra com o total derivado dos itens
func NovaCompra(fornecedorID, notaFiscal string, data time.Time, itens []ItemCompra) (*Compra, error) {
	if len(itens) == 0 {
		return nil, ErrSemItens
	}

	var total float64
	for i := range itens {
		if itens[i].Quantidade <= 0 {
			return nil, ErrQuantidadeInvalida
		}
		if itens[i].CustoUnitario < 0 {
			return nil, ErrCustoInvalido
		}
		if itens[i].ID == "" {
			itens[i].ID = uuid.New().String()
		}
		total += float64(itens[i].Quantidade) * itens[i].CustoUnitario
	}

	now := time.Now()
	c := &Compra{
		ID:           uuid.New().String(),
		FornecedorID: fornecedorID,
		NotaFiscal:   notaFiscal,
		Data:         data,
		Total:        total,
		Itens:        itens,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i := range c.Itens {
		c.Itens[i].CompraID = c.ID
	}
	return c, nil
}

// Parcela é uma parcela a pagar gerada por uma compra
type Parcela struct {
	Numero     int       `json:"numero"`
	Valor      float64   `json:"valor"`
	Vencimento time.Time `json:"vencimento"`
}

// GerarParcelas divide o total da compra em n parcelas iguais a partir da
// primeira data, espaçadas pelo intervalo em dias ou em meses. A última
// parcela absorve a sobra de arredondamento para que a soma feche no total.
func GerarParcelas(total float64, n int, intervalo int, emMeses bool, primeira time.Time) ([]Parcela, error) {
	if n <= 0 {
		return nil, ErrParcelasInvalidas
	}
	if total <= 0 {
		return nil, ErrCustoInvalido
	}

	valorParcela := math.Floor(total/float64(n)*100) / 100
	parcelas := make([]Parcela, 0, n)
	vencimento := primeira
	var acumulado float64

	for i := 1; i <= n; i++ {
		valor := valorParcela
		if i == n {
			valor = math.Round((total-acumulado)*100) / 100
		}
		parcelas = append(parcelas, Parcela{
			Numero:     i,
			Valor:      valor,
			Vencimento: vencimento,
		})
		acumulado += valor

		if emMeses {
			vencimento = vencimento.AddDate(0, intervalo, 0)
		} else {
			vencimento = vencimento.AddDate(0, 0, intervalo)
		}
	}

	return parcelas, nil
}

// Reducao é a diminuição líquida de quantidade de um produto entre a versão
// original e a editada de uma compra
type Reducao struct {
	ProdutoID  string
	Quantidade int
}

// CalcularReducoes compara os itens originais com os editados, por produto, e
// devolve as reduções líquidas. Itens removidos contam com a quantidade
// integral; aumentos não geram redução.
func CalcularReducoes(originais, editados []ItemCompra) []Reducao {
	novos := make(map[string]int, len(editados))
	for _, item := range editados {
		novos[item.ProdutoID] += item.Quantidade
	}

	antigos := make(map[string]int, len(originais))
	ordem := make([]string, 0, len(originais))
	for _, item := range originais {
		if _, visto := antigos[item.ProdutoID]; !visto {
			ordem = append(ordem, item.ProdutoID)
		}
		antigos[item.ProdutoID] += item.Quantidade
	}

	var reducoes []Reducao
	for _, produtoID := range ordem {
		diferenca := antigos[produtoID] - novos[produtoID]
		if diferenca > 0 {
			reducoes = append(reducoes, Reducao{ProdutoID: produtoID, Quantidade: diferenca})
		}
	}
	return reducoes
}
