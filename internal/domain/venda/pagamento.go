package venda

import "errors"

var (
	// ErrMetodoNaoProcessavel é retornado para métodos que não movem dinheiro
	// no ato da venda (fiado) e por isso não passam pelo processamento
	ErrMetodoNaoProcessavel = errors.New("método de pagamento não possui processamento")
)

// MetodoPagamento enumera os métodos de pagamento aceitos
type MetodoPagamento string

const (
	MetodoDinheiro    MetodoPagamento = "DINHEIRO"
	MetodoDebito      MetodoPagamento = "DEBITO"
	MetodoCredito     MetodoPagamento = "CREDITO"
	MetodoPix         MetodoPagamento = "PIX"
	MetodoCreditoLoja MetodoPagamento = "CREDITO_LOJA"
	MetodoFiado       MetodoPagamento = "FIADO"
)

// MetodoValido verifica se o método informado é conhecido
func MetodoValido(m MetodoPagamento) bool {
	switch m {
	case MetodoDinheiro, MetodoDebito, MetodoCredito, MetodoPix, MetodoCreditoLoja, MetodoFiado:
		return true
	}
	return false
}

// Taxas das operadoras de cartão
const (
	taxaDebito        = 0.0199
	taxaCreditoAVista = 0.035
)

// StatusProcessamento é o resultado do processamento de um pagamento
type StatusProcessamento string

const (
	ProcessamentoAprovado StatusProcessamento = "APROVADO"
	// ProcessamentoPendente indica que a aprovação depende de uma verificação
	// de saldo feita dentro da transação de persistência
	ProcessamentoPendente StatusProcessamento = "PENDENTE_VALIDACAO"
)

// ResultadoPagamento carrega o efeito financeiro de um pagamento processado
type ResultadoPagamento struct {
	Metodo       MetodoPagamento     `json:"metodo"`
	Status       StatusProcessamento `json:"status"`
	Taxa         float64             `json:"taxa"`
	ValorLiquido float64             `json:"valor_liquido"`
	Troco        float64             `json:"troco"`
	Mensagem     string              `json:"mensagem"`
}

// ProcessarPagamento calcula taxa, valor líquido e troco de um pagamento,
// sem efeito colateral algum. O switch é exaustivo sobre os métodos; FIADO
// não processa dinheiro e retorna ErrMetodoNaoProcessavel.
func ProcessarPagamento(p Pagamento) (ResultadoPagamento, error) {
	switch p.Metodo {
	case MetodoDinheiro:
		recebido := p.ValorRecebido
		if recebido == 0 {
			recebido = p.Valor
		}
		if recebido < p.Valor-Tolerancia {
			return ResultadoPagamento{}, ErrPagamentoInsuficiente
		}
		return ResultadoPagamento{
			Metodo:       MetodoDinheiro,
			Status:       ProcessamentoAprovado,
			ValorLiquido: p.Valor,
			Troco:        recebido - p.Valor,
			Mensagem:     "pagamento em dinheiro aprovado",
		}, nil

	case MetodoDebito:
		taxa := p.Valor * taxaDebito
		return ResultadoPagamento{
			Metodo:       MetodoDebito,
			Status:       ProcessamentoAprovado,
			Taxa:         taxa,
			ValorLiquido: p.Valor - taxa,
			Mensagem:     "pagamento em débito aprovado",
		}, nil

	case MetodoCredito:
		// À vista a loja absorve a taxa; parcelado o acréscimo é repassado
		// ao cliente fora do sistema e a loja recebe o valor integral
		if p.Parcelas <= 1 {
			taxa := p.Valor * taxaCreditoAVista
			return ResultadoPagamento{
				Metodo:       MetodoCredito,
				Status:       ProcessamentoAprovado,
				Taxa:         taxa,
				ValorLiquido: p.Valor - taxa,
				Mensagem:     "pagamento em crédito à vista aprovado",
			}, nil
		}
		return ResultadoPagamento{
			Metodo:       MetodoCredito,
			Status:       ProcessamentoAprovado,
			ValorLiquido: p.Valor,
			Mensagem:     "pagamento em crédito parcelado aprovado",
		}, nil

	case MetodoPix:
		return ResultadoPagamento{
			Metodo:       MetodoPix,
			Status:       ProcessamentoAprovado,
			ValorLiquido: p.Valor,
			Mensagem:     "pagamento via PIX aprovado",
		}, nil

	case MetodoCreditoLoja:
		// A suficiência do saldo só pode ser conferida com leitura do banco,
		// dentro da transação da venda
		return ResultadoPagamento{
			Metodo:       MetodoCreditoLoja,
			Status:       ProcessamentoPendente,
			ValorLiquido: p.Valor,
			Mensagem:     "crédito de loja aguardando validação de saldo",
		}, nil

	case MetodoFiado:
		return ResultadoPagamento{}, ErrMetodoNaoProcessavel

	default:
		return ResultadoPagamento{}, ErrMetodoInvalido
	}
}
