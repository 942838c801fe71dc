package dto

import (
	"github.com/matheusprado/erp-suplementos/internal/domain/venda"
	usecase "github.com/matheusprado/erp-suplementos/internal/usecase/venda"
)

// ItemVendaRequest representa um item do carrinho
type ItemVendaRequest struct {
	ProdutoID  string `json:"produto_id" binding:"required"`
	Quantidade int    `json:"quantidade" binding:"required,min=1"`
}

// PagamentoRequest representa um pagamento da venda
type PagamentoRequest struct {
	Metodo        string  `json:"metodo" binding:"required"`
	Valor         float64 `json:"valor" binding:"required,gt=0"`
	Parcelas      int     `json:"parcelas"`
	ValorRecebido float64 `json:"valor_recebido"`
}

// VendaRequest representa a requisição de registro de venda
type VendaRequest struct {
	ClienteID      *string            `json:"cliente_id"`
	Itens          []ItemVendaRequest `json:"itens" binding:"required,min=1"`
	Pagamentos     []PagamentoRequest `json:"pagamentos" binding:"required,min=1"`
	DescontoManual float64            `json:"desconto_manual"`
	PontosUsados   int                `json:"pontos_usados"`
	DestinoTroco   string             `json:"destino_troco"`
}

// ToRegistrarVendaInput converte a requisição para a entrada do caso de uso
func (r VendaRequest) ToRegistrarVendaInput(usuarioID string) usecase.RegistrarVendaInput {
	input := usecase.RegistrarVendaInput{
		ClienteID:      r.ClienteID,
		UsuarioID:      usuarioID,
		DescontoManual: r.DescontoManual,
		PontosUsados:   r.PontosUsados,
		DestinoTroco:   venda.DestinoTroco(r.DestinoTroco),
	}
	for _, item := range r.Itens {
		input.Itens = append(input.Itens, usecase.ItemInput{
			ProdutoID:  item.ProdutoID,
			Quantidade: item.Quantidade,
		})
	}
	for _, p := range r.Pagamentos {
		input.Pagamentos = append(input.Pagamentos, usecase.PagamentoInput{
			Metodo:        venda.MetodoPagamento(p.Metodo),
			Valor:         p.Valor,
			Parcelas:      p.Parcelas,
			ValorRecebido: p.ValorRecebido,
		})
	}
	return input
}

// VendaResponse representa a resposta do registro de venda
type VendaResponse struct {
	Venda      *venda.Venda               `json:"venda"`
	Pagamentos []venda.ResultadoPagamento `json:"pagamentos,omitempty"`
}

// VendaListResponse representa a resposta de lista de vendas
type VendaListResponse struct {
	Items []*venda.Venda `json:"items"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}
