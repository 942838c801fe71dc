package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/dto"
	"github.com/matheusprado/erp-suplementos/internal/adapter/repository"
	compradomain "github.com/matheusprado/erp-suplementos/internal/domain/compra"
	usecase "github.com/matheusprado/erp-suplementos/internal/usecase/compra"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// CompraController gerencia as requisições de entrada de mercadoria
type CompraController struct {
	registrar *usecase.RegistrarCompraUseCase
	editar    *usecase.EditarCompraUseCase
	excluir   *usecase.ExcluirCompraUseCase
	compras   compradomain.Repository
	logger    logger.Logger
}

// NewCompraController cria uma nova instância de CompraController
func NewCompraController(
	registrar *usecase.RegistrarCompraUseCase,
	editar *usecase.EditarCompraUseCase,
	excluir *usecase.ExcluirCompraUseCase,
	compras compradomain.Repository,
	logger logger.Logger,
) *CompraController {
	return &CompraController{
		registrar: registrar,
		editar:    editar,
		excluir:   excluir,
		compras:   compras,
		logger:    logger,
	}
}

// Create registra uma compra
// @Summary Registrar compra
// @Description Registra uma entrada de mercadoria: um lote por item e as parcelas a pagar
// @Tags compras
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param compra body dto.CompraRequest true "Dados da compra"
// @Success 201 {object} compra.Compra
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /compras [post]
func (c *CompraController) Create(ctx *gin.Context) {
	var req dto.CompraRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	data := req.Data
	if data.IsZero() {
		data = time.Now()
	}
	condicao := req.Condicao.ToCondicao()

	itens := make([]usecase.ItemCompraInput, 0, len(req.Itens))
	for _, item := range req.Itens {
		itens = append(itens, usecase.ItemCompraInput{
			ProdutoID:     item.ProdutoID,
			Quantidade:    item.Quantidade,
			CustoUnitario: item.CustoUnitario,
			Validade:      item.Validade,
		})
	}

	compra, err := c.registrar.Executar(ctx, usecase.RegistrarCompraInput{
		FornecedorID: req.FornecedorID,
		NotaFiscal:   req.NotaFiscal,
		Data:         data,
		Observacoes:  req.Observacoes,
		Itens:        itens,
		Parcelas:     condicao.Parcelas,
		Intervalo:    condicao.Intervalo,
		EmMeses:      condicao.EmMeses,
	})
	if err != nil {
		c.responderErroCompra(ctx, err, "erro ao registrar compra")
		return
	}

	ctx.JSON(http.StatusCreated, compra)
}

func (c *CompraController) responderErroCompra(ctx *gin.Context, err error, mensagem string) {
	switch {
	case errors.Is(err, repository.ErrCompraNaoEncontrada):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "compra não encontrada", err.Error()))
	case errors.Is(err, repository.ErrFornecedorNaoEncontrado),
		errors.Is(err, repository.ErrProdutoNaoEncontrado):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "registro não encontrado", err.Error()))
	case errors.Is(err, compradomain.ErrSemItens),
		errors.Is(err, compradomain.ErrQuantidadeInvalida),
		errors.Is(err, compradomain.ErrCustoInvalido),
		errors.Is(err, compradomain.ErrParcelasInvalidas):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "compra inválida", err.Error()))
	case errors.Is(err, compradomain.ErrReducaoAbaixoVendido),
		errors.Is(err, compradomain.ErrEstoqueAbaixoDoLote):
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "compra rejeitada", err.Error()))
	default:
		c.logger.Error(mensagem, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, mensagem, err.Error()))
	}
}

// Get retorna uma compra pelo ID
// @Summary Buscar compra
// @Description Retorna uma compra com seus itens
// @Tags compras
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da compra"
// @Success 200 {object} compra.Compra
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /compras/{id} [get]
func (c *CompraController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	compra, err := c.compras.BuscarPorID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompraNaoEncontrada) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "compra não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar compra", "compra_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar compra", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, compra)
}

// List retorna a lista de compras
// @Summary Listar compras
// @Description Retorna as compras paginadas, filtrando por fornecedor
// @Tags compras
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Param fornecedor_id query string false "Filtro por fornecedor"
// @Success 200 {object} dto.CompraListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /compras [get]
func (c *CompraController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	compras, err := c.compras.Listar(ctx, ctx.Query("fornecedor_id"), pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar compras", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar compras", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.CompraListResponse{
		Items: compras,
		Page:  pagination.Page,
		Size:  pagination.PageSize,
	})
}

// Update edita uma compra registrada
// @Summary Editar compra
// @Description Reescreve a compra: lotes recriados a partir dos novos itens e pagáveis pendentes regenerados
// @Tags compras
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da compra"
// @Param compra body dto.CompraRequest true "Dados da compra"
// @Success 200 {object} compra.Compra
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /compras/{id} [put]
func (c *CompraController) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.CompraRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	data := req.Data
	if data.IsZero() {
		data = time.Now()
	}
	condicao := req.Condicao.ToCondicao()

	itens := make([]usecase.ItemCompraInput, 0, len(req.Itens))
	for _, item := range req.Itens {
		itens = append(itens, usecase.ItemCompraInput{
			ProdutoID:     item.ProdutoID,
			Quantidade:    item.Quantidade,
			CustoUnitario: item.CustoUnitario,
			Validade:      item.Validade,
		})
	}

	compra, err := c.editar.Executar(ctx, usecase.EditarCompraInput{
		CompraID:    id,
		NotaFiscal:  req.NotaFiscal,
		Data:        data,
		Observacoes: req.Observacoes,
		Itens:       itens,
		Parcelas:    condicao.Parcelas,
		Intervalo:   condicao.Intervalo,
		EmMeses:     condicao.EmMeses,
	})
	if err != nil {
		c.responderErroCompra(ctx, err, "erro ao editar compra")
		return
	}

	ctx.JSON(http.StatusOK, compra)
}

// Delete reverte uma compra
// @Summary Excluir compra
// @Description Reverte a compra: remove os lotes, cancela os pagáveis pendentes e apaga o cabeçalho
// @Tags compras
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da compra"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /compras/{id} [delete]
func (c *CompraController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.excluir.Executar(ctx, id); err != nil {
		c.responderErroCompra(ctx, err, "erro ao excluir compra")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("compra excluída", nil))
}
