package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/dto"
	"github.com/matheusprado/erp-suplementos/internal/adapter/repository"
	fornecedordomain "github.com/matheusprado/erp-suplementos/internal/domain/fornecedor"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// FornecedorController gerencia as requisições relacionadas a fornecedores
type FornecedorController struct {
	fornecedores fornecedordomain.Repository
	logger       logger.Logger
}

// NewFornecedorController cria uma nova instância de FornecedorController
func NewFornecedorController(fornecedores fornecedordomain.Repository, logger logger.Logger) *FornecedorController {
	return &FornecedorController{fornecedores: fornecedores, logger: logger}
}

// Create cria um novo fornecedor
// @Summary Criar fornecedor
// @Description Cria um novo fornecedor no sistema
// @Tags fornecedores
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param fornecedor body dto.FornecedorRequest true "Dados do fornecedor"
// @Success 201 {object} fornecedor.Fornecedor
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /fornecedores [post]
func (c *FornecedorController) Create(ctx *gin.Context) {
	var req dto.FornecedorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	f, err := fornecedordomain.NovoFornecedor(req.Nome, req.CNPJ, req.Telefone, req.Email)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "fornecedor inválido", err.Error()))
		return
	}

	if err := c.fornecedores.Criar(ctx, f); err != nil {
		c.logger.Error("erro ao criar fornecedor", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar fornecedor", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, f)
}

// Get retorna um fornecedor pelo ID
// @Summary Buscar fornecedor
// @Description Retorna os dados de um fornecedor pelo ID
// @Tags fornecedores
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do fornecedor"
// @Success 200 {object} fornecedor.Fornecedor
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /fornecedores/{id} [get]
func (c *FornecedorController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	f, err := c.fornecedores.BuscarPorID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFornecedorNaoEncontrado) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "fornecedor não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar fornecedor", "fornecedor_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar fornecedor", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, f)
}

// List retorna a lista de fornecedores
// @Summary Listar fornecedores
// @Description Retorna a lista de fornecedores paginada, filtrando por nome
// @Tags fornecedores
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Param nome query string false "Filtro por nome"
// @Success 200 {object} dto.FornecedorListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /fornecedores [get]
func (c *FornecedorController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	fornecedores, err := c.fornecedores.Listar(ctx, ctx.Query("nome"), pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar fornecedores", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar fornecedores", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.FornecedorListResponse{
		Items: fornecedores,
		Page:  pagination.Page,
		Size:  pagination.PageSize,
	})
}

// Update atualiza um fornecedor
// @Summary Atualizar fornecedor
// @Description Aplica uma edição parcial a um fornecedor existente
// @Tags fornecedores
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do fornecedor"
// @Param fornecedor body dto.FornecedorPatchRequest true "Campos a atualizar"
// @Success 200 {object} fornecedor.Fornecedor
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /fornecedores/{id} [patch]
func (c *FornecedorController) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.FornecedorPatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	f, err := c.fornecedores.BuscarPorID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFornecedorNaoEncontrado) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "fornecedor não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar fornecedor", "fornecedor_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar fornecedor", err.Error()))
		return
	}

	if err := f.Aplicar(req.ToPatch()); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "fornecedor inválido", err.Error()))
		return
	}

	if err := c.fornecedores.Atualizar(ctx, f); err != nil {
		c.logger.Error("erro ao atualizar fornecedor", "fornecedor_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar fornecedor", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, f)
}

// Delete remove um fornecedor
// @Summary Excluir fornecedor
// @Description Remove o fornecedor; com compras registradas o fornecedor é apenas desativado
// @Tags fornecedores
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do fornecedor"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /fornecedores/{id} [delete]
func (c *FornecedorController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.fornecedores.Excluir(ctx, id); err != nil {
		if errors.Is(err, repository.ErrFornecedorNaoEncontrado) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "fornecedor não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao excluir fornecedor", "fornecedor_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir fornecedor", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("fornecedor excluído", nil))
}
