package financeiro

import "sort"

// Alocacao é a fatia de um pagamento aplicada a um lançamento específico
type Alocacao struct {
	LancamentoID string  `json:"lancamento_id"`
	Valor        float64 `json:"valor"`
	Quitado      bool    `json:"quitado"`
}

// ResultadoAlocacao é o resultado da distribuição FIFO de um pagamento
type ResultadoAlocacao struct {
	Alocacoes     []Alocacao `json:"alocacoes"`
	ValorAplicado float64    `json:"valor_aplicado"`
	CreditoGerado float64    `json:"credito_gerado"`
}

// OrdenarPorVencimento ordena os lançamentos do vencimento mais antigo para o
// mais novo; lançamentos sem vencimento vão para o final. Empates são
// resolvidos pela data de criação.
func OrdenarPorVencimento(lancamentos []Lancamento) []Lancamento {
	ordenados := make([]Lancamento, len(lancamentos))
	copy(ordenados, lancamentos)

	sort.SliceStable(ordenados, func(i, j int) bool {
		a, b := ordenados[i], ordenados[j]
		switch {
		case a.Vencimento == nil && b.Vencimento == nil:
			return a.CreatedAt.Before(b.CreatedAt)
		case a.Vencimento == nil:
			return false
		case b.Vencimento == nil:
			return true
		case a.Vencimento.Equal(*b.Vencimento):
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.Vencimento.Before(*b.Vencimento)
		}
	})

	return ordenados
}

// AlocarPagamentoFIFO distribui um pagamento entre os lançamentos na ordem do
// vencimento, quitando cada um até onde o valor alcançar. Lançamentos já
// quitados (saldo dentro da tolerância) são pulados; o que sobrar depois de
// todos os saldos vira crédito gerado.
func AlocarPagamentoFIFO(lancamentos []Lancamento, valor float64) ResultadoAlocacao {
	resultado := ResultadoAlocacao{}
	if valor <= 0 {
		return resultado
	}

	restante := valor
	for _, l := range OrdenarPorVencimento(lancamentos) {
		if restante <= Tolerancia {
			break
		}

		saldo := l.SaldoRestante()
		if saldo <= Tolerancia {
			continue
		}

		aplicado := saldo
		if aplicado > restante {
			aplicado = restante
		}

		resultado.Alocacoes = append(resultado.Alocacoes, Alocacao{
			LancamentoID: l.ID,
			Valor:        aplicado,
			Quitado:      saldo-aplicado <= Tolerancia,
		})
		resultado.ValorAplicado += aplicado
		restante -= aplicado
	}

	if restante > Tolerancia {
		resultado.CreditoGerado = restante
	}
	return resultado
}
