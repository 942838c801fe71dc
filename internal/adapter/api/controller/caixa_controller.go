package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/dto"
	caixadomain "github.com/matheusprado/erp-suplementos/internal/domain/caixa"
	usecase "github.com/matheusprado/erp-suplementos/internal/usecase/caixa"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// CaixaController gerencia o ciclo de vida da sessão de caixa
type CaixaController struct {
	caixa  *usecase.GerirCaixaUseCase
	logger logger.Logger
}

// NewCaixaController cria uma nova instância de CaixaController
func NewCaixaController(caixa *usecase.GerirCaixaUseCase, logger logger.Logger) *CaixaController {
	return &CaixaController{caixa: caixa, logger: logger}
}

// Open abre uma sessão de caixa
// @Summary Abrir caixa
// @Description Abre uma nova sessão de caixa; só pode haver uma aberta por vez
// @Tags caixa
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param abertura body dto.AbrirCaixaRequest true "Saldo inicial"
// @Success 201 {object} caixa.Sessao
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /caixa/abrir [post]
func (c *CaixaController) Open(ctx *gin.Context) {
	var req dto.AbrirCaixaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	usuarioID := ctx.GetString("user_id")
	sessao, err := c.caixa.Abrir(ctx, usuarioID, req.SaldoInicial)
	if err != nil {
		switch {
		case errors.Is(err, caixadomain.ErrSessaoJaAberta):
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "caixa já aberto", err.Error()))
		case errors.Is(err, caixadomain.ErrSaldoInicialNegativo):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "abertura inválida", err.Error()))
		default:
			c.logger.Error("erro ao abrir caixa", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao abrir caixa", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusCreated, sessao)
}

// Status retorna a situação atual do caixa
// @Summary Status do caixa
// @Description Retorna a sessão aberta com o saldo calculado e o razão de movimentos
// @Tags caixa
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} caixa.StatusCaixaOutput
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /caixa/status [get]
func (c *CaixaController) Status(ctx *gin.Context) {
	status, err := c.caixa.Status(ctx)
	if err != nil {
		c.logger.Error("erro ao consultar status do caixa", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao consultar caixa", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, status)
}

// Move registra um movimento avulso no caixa
// @Summary Movimentar caixa
// @Description Registra sangria, suprimento, entrada ou saída na sessão aberta
// @Tags caixa
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param movimento body dto.MovimentacaoCaixaRequest true "Dados do movimento"
// @Success 201 {object} caixa.Movimentacao
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /caixa/movimentacao [post]
func (c *CaixaController) Move(ctx *gin.Context) {
	var req dto.MovimentacaoCaixaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	m, err := c.caixa.Movimentar(ctx, caixadomain.TipoMovimentacao(req.Tipo), req.FormaPagamento, req.Valor, req.Descricao)
	if err != nil {
		switch {
		case errors.Is(err, caixadomain.ErrSessaoNaoAberta):
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "caixa fechado", err.Error()))
		case errors.Is(err, caixadomain.ErrValorInvalido),
			errors.Is(err, caixadomain.ErrTipoInvalido):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "movimento inválido", err.Error()))
		default:
			c.logger.Error("erro ao movimentar caixa", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao movimentar caixa", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusCreated, m)
}

// Close fecha a sessão de caixa aberta
// @Summary Fechar caixa
// @Description Fecha a sessão aberta registrando o saldo declarado e a divergência
// @Tags caixa
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param fechamento body dto.FecharCaixaRequest true "Saldo declarado na contagem"
// @Success 200 {object} caixa.Sessao
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /caixa/fechar [post]
func (c *CaixaController) Close(ctx *gin.Context) {
	var req dto.FecharCaixaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	sessao, err := c.caixa.Fechar(ctx, req.SaldoDeclarado)
	if err != nil {
		switch {
		case errors.Is(err, caixadomain.ErrSessaoNaoAberta),
			errors.Is(err, caixadomain.ErrSessaoFechada):
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "caixa fechado", err.Error()))
		default:
			c.logger.Error("erro ao fechar caixa", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao fechar caixa", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusOK, sessao)
}
