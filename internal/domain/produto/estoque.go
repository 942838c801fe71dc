package produto

import "sort"

// DebitoLote é o débito planejado sobre um lote específico
type DebitoLote struct {
	LoteID     string
	Quantidade int
}

// PlanoConsumo é o resultado do planejamento FEFO: os débitos por lote e o
// restante que não coube em nenhum lote com saldo (a ser lançado como saldo
// negativo no lote mais recente).
type PlanoConsumo struct {
	Debitos  []DebitoLote
	Restante int
}

// OrdenarFEFO ordena os lotes por validade crescente; lotes sem validade vão
// para o final (consumidos por último). Empates são resolvidos pela data de
// criação.
func OrdenarFEFO(lotes []Lote) []Lote {
	ordenados := make([]Lote, len(lotes))
	copy(ordenados, lotes)

	sort.SliceStable(ordenados, func(i, j int) bool {
		a, b := ordenados[i], ordenados[j]
		switch {
		case a.Validade == nil && b.Validade == nil:
			return a.CreatedAt.Before(b.CreatedAt)
		case a.Validade == nil:
			return false
		case b.Validade == nil:
			return true
		case a.Validade.Equal(*b.Validade):
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.Validade.Before(*b.Validade)
		}
	})

	return ordenados
}

// PlanejarConsumoFEFO distribui a quantidade pedida entre os lotes com saldo
// positivo, na ordem FEFO, zerando lote a lote. O que não couber é devolvido
// em Restante; o consumo nunca falha por falta de estoque físico.
func PlanejarConsumoFEFO(lotes []Lote, quantidade int) PlanoConsumo {
	plano := PlanoConsumo{}
	if quantidade <= 0 {
		return plano
	}

	restante := quantidade
	for _, l := range OrdenarFEFO(lotes) {
		if restante == 0 {
			break
		}
		if l.Quantidade <= 0 {
			continue
		}

		debito := l.Quantidade
		if debito > restante {
			debito = restante
		}
		plano.Debitos = append(plano.Debitos, DebitoLote{LoteID: l.ID, Quantidade: debito})
		restante -= debito
	}

	plano.Restante = restante
	return plano
}

// EscolherLoteFallback devolve o lote mais recente do produto (ordem de
// inserção), usado para receber o saldo negativo quando os lotes se esgotam.
// Retorna nil quando o produto não tem lote algum.
func EscolherLoteFallback(lotes []Lote) *Lote {
	var escolhido *Lote
	for i := range lotes {
		l := &lotes[i]
		if escolhido == nil {
			escolhido = l
			continue
		}
		if l.CreatedAt.After(escolhido.CreatedAt) ||
			(l.CreatedAt.Equal(escolhido.CreatedAt) && l.ID > escolhido.ID) {
			escolhido = l
		}
	}
	return escolhido
}

// EscolherLoteReposicao devolve o lote que recebe unidades devolvidas em um
// cancelamento: validade mais distante primeiro (sem validade conta como a
// mais distante), depois id decrescente.
func EscolherLoteReposicao(lotes []Lote) *Lote {
	var escolhido *Lote
	for i := range lotes {
		l := &lotes[i]
		if escolhido == nil {
			escolhido = l
			continue
		}
		if validadeDepois(l, escolhido) {
			escolhido = l
		}
	}
	return escolhido
}

func validadeDepois(a, b *Lote) bool {
	switch {
	case a.Validade == nil && b.Validade == nil:
		return a.ID > b.ID
	case a.Validade == nil:
		return true
	case b.Validade == nil:
		return false
	case a.Validade.Equal(*b.Validade):
		return a.ID > b.ID
	default:
		return a.Validade.After(*b.Validade)
	}
}

// EstoqueTotal soma as quantidades de todos os lotes, inclusive negativas
func EstoqueTotal(lotes []Lote) int {
	total := 0
	for _, l := range lotes {
		total += l.Quantidade
	}
	return total
}

// EstoqueKit calcula o estoque disponível de um kit pela regra do gargalo:
// o mínimo de floor(estoque do componente / quantidade exigida).
func EstoqueKit(componentes []ComponenteKit, estoquePorProduto map[string]int) int {
	if len(componentes) == 0 {
		return 0
	}

	menor := -1
	for _, c := range componentes {
		if c.Quantidade <= 0 {
			return 0
		}
		disponivel := estoquePorProduto[c.ProdutoID] / c.Quantidade
		if disponivel < 0 {
			disponivel = 0
		}
		if menor < 0 || disponivel < menor {
			menor = disponivel
		}
	}
	return menor
}

// CustoMedio calcula o custo médio ponderado pelas quantidades positivas dos
// lotes. Sem estoque positivo o custo é zero.
func CustoMedio(lotes []Lote) float64 {
	var soma float64
	var quantidade int
	for _, l := range lotes {
		if l.Quantidade <= 0 {
			continue
		}
		soma += float64(l.Quantidade) * l.CustoUnitario
		quantidade += l.Quantidade
	}
	if quantidade == 0 {
		return 0
	}
	return soma / float64(quantidade)
}
