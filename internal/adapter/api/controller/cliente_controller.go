package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/dto"
	"github.com/matheusprado/erp-suplementos/internal/adapter/repository"
	clientedomain "github.com/matheusprado/erp-suplementos/internal/domain/cliente"
	usecase "github.com/matheusprado/erp-suplementos/internal/usecase/cliente"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// ClienteController gerencia as requisições relacionadas a clientes, crédito
// e fidelidade
type ClienteController struct {
	clientes clientedomain.Repository
	credito  *usecase.GerirCreditoUseCase
	logger   logger.Logger
}

// NewClienteController cria uma nova instância de ClienteController
func NewClienteController(clientes clientedomain.Repository, credito *usecase.GerirCreditoUseCase, logger logger.Logger) *ClienteController {
	return &ClienteController{clientes: clientes, credito: credito, logger: logger}
}

// Create cria um novo cliente
// @Summary Criar cliente
// @Description Cria um novo cliente no sistema
// @Tags clientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param cliente body dto.ClienteRequest true "Dados do cliente"
// @Success 201 {object} cliente.Cliente
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clientes [post]
func (c *ClienteController) Create(ctx *gin.Context) {
	var req dto.ClienteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	cl, err := clientedomain.NovoCliente(req.Nome, req.CPF, req.Telefone, req.Email)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "cliente inválido", err.Error()))
		return
	}
	cl.Endereco = req.Endereco
	cl.Observacao = req.Observacao

	if err := c.clientes.Criar(ctx, cl); err != nil {
		c.logger.Error("erro ao criar cliente", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, cl)
}

// Get retorna um cliente pelo ID
// @Summary Buscar cliente
// @Description Retorna os dados de um cliente pelo ID
// @Tags clientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} cliente.Cliente
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clientes/{id} [get]
func (c *ClienteController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	cl, err := c.clientes.BuscarPorID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClienteNaoEncontrado) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar cliente", "cliente_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, cl)
}

// List retorna a lista de clientes
// @Summary Listar clientes
// @Description Retorna a lista de clientes paginada, filtrando por nome
// @Tags clientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Param nome query string false "Filtro por nome"
// @Success 200 {object} dto.ClienteListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clientes [get]
func (c *ClienteController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	clientes, err := c.clientes.Listar(ctx, ctx.Query("nome"), pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar clientes", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar clientes", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ClienteListResponse{
		Items: clientes,
		Page:  pagination.Page,
		Size:  pagination.PageSize,
	})
}

// Update atualiza um cliente
// @Summary Atualizar cliente
// @Description Aplica uma edição parcial a um cliente existente
// @Tags clientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param cliente body dto.ClientePatchRequest true "Campos a atualizar"
// @Success 200 {object} cliente.Cliente
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clientes/{id} [patch]
func (c *ClienteController) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.ClientePatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	cl, err := c.clientes.BuscarPorID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClienteNaoEncontrado) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar cliente", "cliente_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", err.Error()))
		return
	}

	if err := cl.Aplicar(req.ToPatch()); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "cliente inválido", err.Error()))
		return
	}

	if err := c.clientes.Atualizar(ctx, cl); err != nil {
		c.logger.Error("erro ao atualizar cliente", "cliente_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, cl)
}

// Delete remove um cliente
// @Summary Excluir cliente
// @Description Remove o cliente; com histórico de vendas o cliente é apenas desativado
// @Tags clientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clientes/{id} [delete]
func (c *ClienteController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.clientes.Excluir(ctx, id); err != nil {
		if errors.Is(err, repository.ErrClienteNaoEncontrado) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao excluir cliente", "cliente_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("cliente excluído", nil))
}

// Credito retorna o extrato de crédito do cliente
// @Summary Extrato de crédito
// @Description Retorna o razão de crédito do cliente com o saldo atual
// @Tags clientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} cliente.ExtratoCredito
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clientes/{id}/credito [get]
func (c *ClienteController) Credito(ctx *gin.Context) {
	id := ctx.Param("id")

	extrato, err := c.credito.Extrato(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClienteNaoEncontrado) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar extrato de crédito", "cliente_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar extrato", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, extrato)
}

// AjustarCredito registra um movimento manual no razão de crédito
// @Summary Ajustar crédito
// @Description Acrescenta uma entrada ou saída manual ao razão de crédito do cliente
// @Tags clientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param ajuste body dto.AjusteCreditoRequest true "Dados do ajuste"
// @Success 201 {object} cliente.MovimentoCredito
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clientes/{id}/credito [post]
func (c *ClienteController) AjustarCredito(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.AjusteCreditoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	m, err := c.credito.Ajustar(ctx, id, clientedomain.TipoMovimentoCredito(req.Tipo), req.Valor, req.Descricao)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrClienteNaoEncontrado):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", err.Error()))
		case errors.Is(err, clientedomain.ErrSaldoCreditoInsuficiente):
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "saldo insuficiente", err.Error()))
		case errors.Is(err, clientedomain.ErrValorInvalido):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "ajuste inválido", err.Error()))
		default:
			c.logger.Error("erro ao ajustar crédito", "cliente_id", id, "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao ajustar crédito", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusCreated, m)
}

// Fidelidade retorna o saldo de pontos do cliente
// @Summary Fidelidade do cliente
// @Description Retorna o perfil de pontos de fidelidade do cliente
// @Tags clientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} cliente.Fidelizacao
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clientes/{id}/fidelidade [get]
func (c *ClienteController) Fidelidade(ctx *gin.Context) {
	id := ctx.Param("id")

	f, err := c.credito.Fidelidade(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClienteNaoEncontrado) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar fidelidade", "cliente_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar fidelidade", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, f)
}
