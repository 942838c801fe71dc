package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/dto"
	"github.com/matheusprado/erp-suplementos/internal/adapter/repository"
	produtodomain "github.com/matheusprado/erp-suplementos/internal/domain/produto"
	usecase "github.com/matheusprado/erp-suplementos/internal/usecase/produto"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// ProdutoController gerencia as requisições relacionadas a produtos e kits
type ProdutoController struct {
	produtos *usecase.GerirProdutoUseCase
	logger   logger.Logger
}

// NewProdutoController cria uma nova instância de ProdutoController
func NewProdutoController(produtos *usecase.GerirProdutoUseCase, logger logger.Logger) *ProdutoController {
	return &ProdutoController{produtos: produtos, logger: logger}
}

// Create cria um novo produto ou kit
// @Summary Criar produto
// @Description Cria um produto simples ou um kit com composição validada
// @Tags produtos
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param produto body dto.ProdutoRequest true "Dados do produto"
// @Success 201 {object} produto.Produto
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /produtos [post]
func (c *ProdutoController) Create(ctx *gin.Context) {
	var req dto.ProdutoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	p, err := c.produtos.Criar(ctx, req.ToCriarProdutoInput())
	if err != nil {
		switch {
		case errors.Is(err, produtodomain.ErrNomeVazio),
			errors.Is(err, produtodomain.ErrPrecoInvalido),
			errors.Is(err, produtodomain.ErrQuantidadeInvalida),
			errors.Is(err, produtodomain.ErrComposicaoVazia),
			errors.Is(err, produtodomain.ErrComposicaoCiclica),
			errors.Is(err, produtodomain.ErrComposicaoProfunda):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "produto inválido", err.Error()))
		default:
			c.logger.Error("erro ao criar produto", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar produto", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusCreated, p)
}

// Get retorna um produto pelo ID com estoque derivado
// @Summary Buscar produto
// @Description Retorna o produto com estoque disponível, custo médio e lotes ou composição
// @Tags produtos
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Success 200 {object} produto.ProdutoDetalhe
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /produtos/{id} [get]
func (c *ProdutoController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	detalhe, err := c.produtos.Detalhar(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProdutoNaoEncontrado) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "produto não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar produto", "produto_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar produto", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, detalhe)
}

// List retorna a lista de produtos
// @Summary Listar produtos
// @Description Retorna os produtos com o estoque disponível de cada um
// @Tags produtos
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Param nome query string false "Filtro por nome"
// @Param categoria_id query string false "Filtro por categoria"
// @Param status query string false "Filtro por status"
// @Param kits query bool false "Apenas kits"
// @Success 200 {object} dto.ProdutoListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /produtos [get]
func (c *ProdutoController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	filtro := produtodomain.Filtro{
		Nome:        ctx.Query("nome"),
		CategoriaID: ctx.Query("categoria_id"),
		Status:      produtodomain.Status(ctx.Query("status")),
		ApenasKits:  ctx.Query("kits") == "true",
	}

	detalhes, err := c.produtos.Listar(ctx, filtro, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar produtos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar produtos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ProdutoListResponse{
		Items: detalhes,
		Page:  pagination.Page,
		Size:  pagination.PageSize,
	})
}

// Update atualiza um produto
// @Summary Atualizar produto
// @Description Aplica uma edição parcial a um produto existente
// @Tags produtos
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Param produto body dto.ProdutoPatchRequest true "Campos a atualizar"
// @Success 200 {object} produto.Produto
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /produtos/{id} [patch]
func (c *ProdutoController) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.ProdutoPatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	p, err := c.produtos.Atualizar(ctx, id, req.ToPatch())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProdutoNaoEncontrado):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "produto não encontrado", err.Error()))
		case errors.Is(err, produtodomain.ErrNomeVazio),
			errors.Is(err, produtodomain.ErrPrecoInvalido):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "produto inválido", err.Error()))
		default:
			c.logger.Error("erro ao atualizar produto", "produto_id", id, "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar produto", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusOK, p)
}

// Delete remove um produto
// @Summary Excluir produto
// @Description Remove o produto; com vínculos existentes o produto é apenas desativado
// @Tags produtos
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /produtos/{id} [delete]
func (c *ProdutoController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.produtos.Excluir(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProdutoNaoEncontrado) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "produto não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao excluir produto", "produto_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir produto", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("produto excluído", nil))
}
