package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/dto"
	"github.com/matheusprado/erp-suplementos/internal/adapter/repository"
	financeirodomain "github.com/matheusprado/erp-suplementos/internal/domain/financeiro"
	usecase "github.com/matheusprado/erp-suplementos/internal/usecase/financeiro"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// FinanceiroController gerencia as requisições de lançamentos financeiros
type FinanceiroController struct {
	financeiro financeirodomain.Repository
	pagar      *usecase.PagarLancamentoUseCase
	pagarTodas *usecase.PagarTodasPendenciasUseCase
	logger     logger.Logger
}

// NewFinanceiroController cria uma nova instância de FinanceiroController
func NewFinanceiroController(
	financeiro financeirodomain.Repository,
	pagar *usecase.PagarLancamentoUseCase,
	pagarTodas *usecase.PagarTodasPendenciasUseCase,
	logger logger.Logger,
) *FinanceiroController {
	return &FinanceiroController{
		financeiro: financeiro,
		pagar:      pagar,
		pagarTodas: pagarTodas,
		logger:     logger,
	}
}

// Create cria um lançamento avulso
// @Summary Criar lançamento
// @Description Cria uma receita ou despesa avulsa, com recorrência opcional
// @Tags financeiro
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param lancamento body dto.LancamentoRequest true "Dados do lançamento"
// @Success 201 {object} financeiro.Lancamento
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financeiro [post]
func (c *FinanceiroController) Create(ctx *gin.Context) {
	var req dto.LancamentoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	l, err := financeirodomain.NovoLancamento(financeirodomain.Tipo(req.Tipo), req.Descricao, req.Valor, req.Vencimento)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "lançamento inválido", err.Error()))
		return
	}
	l.ClienteID = req.ClienteID
	if req.Recorrencia != "" {
		l.Recorrencia = financeirodomain.Recorrencia(req.Recorrencia)
	}

	if err := c.financeiro.Criar(ctx, l); err != nil {
		c.logger.Error("erro ao criar lançamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar lançamento", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, l)
}

// Get retorna um lançamento pelo ID
// @Summary Buscar lançamento
// @Description Retorna um lançamento financeiro pelo ID
// @Tags financeiro
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do lançamento"
// @Success 200 {object} financeiro.Lancamento
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financeiro/{id} [get]
func (c *FinanceiroController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	l, err := c.financeiro.BuscarPorID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLancamentoNaoEncontrado) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "lançamento não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar lançamento", "lancamento_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar lançamento", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, l)
}

// List retorna a lista de lançamentos
// @Summary Listar lançamentos
// @Description Retorna os lançamentos filtrados por tipo, status, cliente e período de vencimento
// @Tags financeiro
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Param tipo query string false "RECEITA ou DESPESA"
// @Param status query string false "PENDENTE ou PAGO"
// @Param cliente_id query string false "Filtro por cliente"
// @Param data_inicio query string false "Vencimento inicial (RFC3339)"
// @Param data_fim query string false "Vencimento final (RFC3339)"
// @Success 200 {object} dto.LancamentoListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financeiro [get]
func (c *FinanceiroController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	filtro := financeirodomain.Filtro{
		Tipo:      financeirodomain.Tipo(ctx.Query("tipo")),
		Status:    financeirodomain.Status(ctx.Query("status")),
		ClienteID: ctx.Query("cliente_id"),
	}
	if inicio, err := time.Parse(time.RFC3339, ctx.Query("data_inicio")); err == nil {
		filtro.DataInicio = &inicio
	}
	if fim, err := time.Parse(time.RFC3339, ctx.Query("data_fim")); err == nil {
		filtro.DataFim = &fim
	}

	lancamentos, err := c.financeiro.Listar(ctx, filtro, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar lançamentos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar lançamentos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.LancamentoListResponse{
		Items: lancamentos,
		Page:  pagination.Page,
		Size:  pagination.PageSize,
	})
}

// Pay registra um pagamento em um lançamento
// @Summary Pagar lançamento
// @Description Aplica um pagamento parcial ou total; sem valor informado quita o saldo restante
// @Tags financeiro
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do lançamento"
// @Param pagamento body dto.PagamentoLancamentoRequest true "Dados do pagamento"
// @Success 200 {object} financeiro.Lancamento
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financeiro/{id}/pagar [patch]
func (c *FinanceiroController) Pay(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.PagamentoLancamentoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	l, err := c.pagar.Executar(ctx, usecase.PagarLancamentoInput{
		LancamentoID:   id,
		Valor:          req.Valor,
		FormaPagamento: req.FormaPagamento,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrLancamentoNaoEncontrado):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "lançamento não encontrado", err.Error()))
		case errors.Is(err, financeirodomain.ErrValorInvalido):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "pagamento inválido", err.Error()))
		case errors.Is(err, financeirodomain.ErrLancamentoPago),
			errors.Is(err, financeirodomain.ErrPagamentoExcedente):
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "pagamento rejeitado", err.Error()))
		default:
			c.logger.Error("erro ao pagar lançamento", "lancamento_id", id, "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao pagar lançamento", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusOK, l)
}

// PayAll quita as pendências de um cliente em lote
// @Summary Quitar pendências do cliente
// @Description Distribui um valor único entre as receitas pendentes do cliente, da mais antiga para a mais nova; a sobra vira crédito de loja
// @Tags financeiro
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param cliente_id path string true "ID do cliente"
// @Param pagamento body dto.PagarTodasRequest true "Valor e forma de pagamento"
// @Success 200 {object} financeiro.PagarTodasPendenciasOutput
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financeiro/clientes/{cliente_id}/pagar [post]
func (c *FinanceiroController) PayAll(ctx *gin.Context) {
	clienteID := ctx.Param("cliente_id")

	var req dto.PagarTodasRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	output, err := c.pagarTodas.Executar(ctx, usecase.PagarTodasPendenciasInput{
		ClienteID:      clienteID,
		Valor:          req.Valor,
		FormaPagamento: req.FormaPagamento,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrClienteNaoEncontrado):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", err.Error()))
		case errors.Is(err, financeirodomain.ErrValorInvalido),
			errors.Is(err, financeirodomain.ErrFormaInvalida):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "pagamento inválido", err.Error()))
		default:
			c.logger.Error("erro ao quitar pendências", "cliente_id", clienteID, "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao quitar pendências", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusOK, output)
}

// History retorna o histórico de pagamentos de um lançamento
// @Summary Histórico de pagamentos
// @Description Retorna os pagamentos já aplicados a um lançamento
// @Tags financeiro
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do lançamento"
// @Success 200 {array} financeiro.HistoricoPagamento
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financeiro/{id}/historico [get]
func (c *FinanceiroController) History(ctx *gin.Context) {
	id := ctx.Param("id")

	historico, err := c.financeiro.Historico(ctx, id)
	if err != nil {
		c.logger.Error("erro ao buscar histórico", "lancamento_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar histórico", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, historico)
}
