package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/dto"
	"github.com/matheusprado/erp-suplementos/internal/adapter/repository"
	notificacaodomain "github.com/matheusprado/erp-suplementos/internal/domain/notificacao"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// NotificacaoController gerencia as requisições de notificações do sistema
type NotificacaoController struct {
	notificacoes notificacaodomain.Repository
	logger       logger.Logger
}

// NewNotificacaoController cria uma nova instância de NotificacaoController
func NewNotificacaoController(notificacoes notificacaodomain.Repository, logger logger.Logger) *NotificacaoController {
	return &NotificacaoController{notificacoes: notificacoes, logger: logger}
}

// List retorna as notificações
// @Summary Listar notificações
// @Description Retorna as notificações do sistema, da mais recente para a mais antiga
// @Tags notificacoes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Param nao_lidas query bool false "Apenas não lidas"
// @Success 200 {array} notificacao.Notificacao
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notificacoes [get]
func (c *NotificacaoController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	apenasNaoLidas := ctx.Query("nao_lidas") == "true"

	notificacoes, err := c.notificacoes.Listar(ctx, apenasNaoLidas, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar notificações", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar notificações", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, notificacoes)
}

// MarkRead marca uma notificação como lida
// @Summary Marcar notificação como lida
// @Description Marca a notificação informada como lida
// @Tags notificacoes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da notificação"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notificacoes/{id}/lida [post]
func (c *NotificacaoController) MarkRead(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.notificacoes.MarcarLida(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotificacaoNaoEncontrada) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "notificação não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao marcar notificação como lida", "notificacao_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao marcar notificação", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("notificação marcada como lida", nil))
}
