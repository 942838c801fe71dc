package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/dto"
	"github.com/matheusprado/erp-suplementos/internal/adapter/repository"
	clientedomain "github.com/matheusprado/erp-suplementos/internal/domain/cliente"
	vendadomain "github.com/matheusprado/erp-suplementos/internal/domain/venda"
	usecase "github.com/matheusprado/erp-suplementos/internal/usecase/venda"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// VendaController gerencia as requisições relacionadas a vendas
type VendaController struct {
	registrar *usecase.RegistrarVendaUseCase
	cancelar  *usecase.CancelarVendaUseCase
	vendas    vendadomain.Repository
	logger    logger.Logger
}

// NewVendaController cria uma nova instância de VendaController
func NewVendaController(
	registrar *usecase.RegistrarVendaUseCase,
	cancelar *usecase.CancelarVendaUseCase,
	vendas vendadomain.Repository,
	logger logger.Logger,
) *VendaController {
	return &VendaController{
		registrar: registrar,
		cancelar:  cancelar,
		vendas:    vendas,
		logger:    logger,
	}
}

// Create registra uma nova venda
// @Summary Registrar venda
// @Description Registra uma venda com itens, pagamentos e efeitos de estoque em uma única transação
// @Tags vendas
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param venda body dto.VendaRequest true "Dados da venda"
// @Success 201 {object} dto.VendaResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /vendas [post]
func (c *VendaController) Create(ctx *gin.Context) {
	var req dto.VendaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	usuarioID := ctx.GetString("user_id")
	output, err := c.registrar.Executar(ctx, req.ToRegistrarVendaInput(usuarioID))
	if err != nil {
		c.responderErroVenda(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.VendaResponse{
		Venda:      output.Venda,
		Pagamentos: output.Resultados,
	})
}

func (c *VendaController) responderErroVenda(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, vendadomain.ErrSemPagamentos),
		errors.Is(err, vendadomain.ErrSemItens),
		errors.Is(err, vendadomain.ErrQuantidadeInvalida),
		errors.Is(err, vendadomain.ErrMetodoInvalido),
		errors.Is(err, vendadomain.ErrPontosSemCliente),
		errors.Is(err, vendadomain.ErrFiadoSemCliente),
		errors.Is(err, vendadomain.ErrCreditoSemCliente):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "venda inválida", err.Error()))
	case errors.Is(err, vendadomain.ErrPagamentoInsuficiente),
		errors.Is(err, vendadomain.ErrCaixaFechado),
		errors.Is(err, clientedomain.ErrSaldoCreditoInsuficiente),
		errors.Is(err, clientedomain.ErrPontosInsuficientes):
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "venda rejeitada", err.Error()))
	case errors.Is(err, repository.ErrProdutoNaoEncontrado),
		errors.Is(err, repository.ErrClienteNaoEncontrado):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "registro não encontrado", err.Error()))
	default:
		c.logger.Error("erro ao registrar venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao registrar venda", err.Error()))
	}
}

// Cancel cancela uma venda
// @Summary Cancelar venda
// @Description Cancela uma venda concluída, devolvendo estoque e estornando pontos
// @Tags vendas
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /vendas/{id}/cancelar [patch]
func (c *VendaController) Cancel(ctx *gin.Context) {
	id := ctx.Param("id")

	err := c.cancelar.Executar(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrVendaNaoEncontrada):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", err.Error()))
		case errors.Is(err, vendadomain.ErrVendaCancelada):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "venda já cancelada", err.Error()))
		case errors.Is(err, clientedomain.ErrPontosInsuficientes):
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "estorno de pontos rejeitado", err.Error()))
		default:
			c.logger.Error("erro ao cancelar venda", "venda_id", id, "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao cancelar venda", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("venda cancelada", nil))
}

// Get retorna uma venda pelo ID
// @Summary Buscar venda
// @Description Retorna uma venda com itens e pagamentos
// @Tags vendas
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.VendaResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /vendas/{id} [get]
func (c *VendaController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	v, err := c.vendas.BuscarPorID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVendaNaoEncontrada) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar venda", "venda_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.VendaResponse{Venda: v})
}

// List retorna a lista de vendas
// @Summary Listar vendas
// @Description Retorna as vendas filtradas por período, status, cliente ou prefixo de ID
// @Tags vendas
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Param data_inicio query string false "Data inicial (RFC3339)"
// @Param data_fim query string false "Data final (RFC3339)"
// @Param status query string false "Status da venda"
// @Param cliente query string false "Nome do cliente"
// @Param venda_id query string false "Prefixo do ID da venda"
// @Success 200 {object} dto.VendaListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /vendas [get]
func (c *VendaController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	filtro := vendadomain.Filtro{
		Status:      vendadomain.Status(ctx.Query("status")),
		ClienteNome: ctx.Query("cliente"),
		VendaID:     ctx.Query("venda_id"),
	}
	if inicio, err := time.Parse(time.RFC3339, ctx.Query("data_inicio")); err == nil {
		filtro.DataInicio = &inicio
	}
	if fim, err := time.Parse(time.RFC3339, ctx.Query("data_fim")); err == nil {
		filtro.DataFim = &fim
	}

	vendas, err := c.vendas.Listar(ctx, filtro, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar vendas", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.VendaListResponse{
		Items: vendas,
		Page:  pagination.Page,
		Size:  pagination.PageSize,
	})
}
