package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/matheusprado/erp-suplementos/docs"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/controller"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/route"
	"github.com/matheusprado/erp-suplementos/internal/adapter/repository"
	"github.com/matheusprado/erp-suplementos/internal/infrastructure/database"
	"github.com/matheusprado/erp-suplementos/internal/infrastructure/scheduler"
	caixausecase "github.com/matheusprado/erp-suplementos/internal/usecase/caixa"
	clienteusecase "github.com/matheusprado/erp-suplementos/internal/usecase/cliente"
	comprausecase "github.com/matheusprado/erp-suplementos/internal/usecase/compra"
	financeirousecase "github.com/matheusprado/erp-suplementos/internal/usecase/financeiro"
	produtousecase "github.com/matheusprado/erp-suplementos/internal/usecase/produto"
	usuariousecase "github.com/matheusprado/erp-suplementos/internal/usecase/usuario"
	vendausecase "github.com/matheusprado/erp-suplementos/internal/usecase/venda"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// App representa a aplicação e suas dependências
type App struct {
	router    *gin.Engine
	db        *pgxpool.Pool
	scheduler *scheduler.Scheduler
	logger    logger.Logger
}

// NewApp cria uma nova instância do aplicativo com todas as dependências
// montadas: banco, repositórios, casos de uso, controllers e rotas
func NewApp() (*App, error) {
	log := logger.NewLogger()

	db, err := database.NewPostgresDB()
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao banco de dados: %w", err)
	}

	// Repositórios
	produtoRepo := repository.NewProdutoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	fornecedorRepo := repository.NewFornecedorRepository(db)
	vendaRepo := repository.NewVendaRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	financeiroRepo := repository.NewFinanceiroRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	notificacaoRepo := repository.NewNotificacaoRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)

	// Casos de uso
	gerirProduto := produtousecase.NovoGerirProdutoUseCase(produtoRepo, log)
	gerirCredito := clienteusecase.NovoGerirCreditoUseCase(clienteRepo, log)
	registrarVenda := vendausecase.NovoRegistrarVendaUseCase(produtoRepo, vendaRepo, clienteRepo, caixaRepo, log)
	cancelarVenda := vendausecase.NovoCancelarVendaUseCase(vendaRepo, log)
	registrarCompra := comprausecase.NovoRegistrarCompraUseCase(compraRepo, produtoRepo, fornecedorRepo, log)
	editarCompra := comprausecase.NovoEditarCompraUseCase(compraRepo, produtoRepo, log)
	excluirCompra := comprausecase.NovoExcluirCompraUseCase(compraRepo, produtoRepo, log)
	pagarLancamento := financeirousecase.NovoPagarLancamentoUseCase(financeiroRepo, log)
	pagarTodas := financeirousecase.NovoPagarTodasPendenciasUseCase(financeiroRepo, clienteRepo, log)
	gerirCaixa := caixausecase.NovoGerirCaixaUseCase(caixaRepo, log)
	autenticar := usuariousecase.NovoAutenticarUsuarioUseCase(usuarioRepo, log)

	// Controllers
	produtoController := controller.NewProdutoController(gerirProduto, log)
	clienteController := controller.NewClienteController(clienteRepo, gerirCredito, log)
	fornecedorController := controller.NewFornecedorController(fornecedorRepo, log)
	vendaController := controller.NewVendaController(registrarVenda, cancelarVenda, vendaRepo, log)
	compraController := controller.NewCompraController(registrarCompra, editarCompra, excluirCompra, compraRepo, log)
	financeiroController := controller.NewFinanceiroController(financeiroRepo, pagarLancamento, pagarTodas, log)
	caixaController := controller.NewCaixaController(gerirCaixa, log)
	notificacaoController := controller.NewNotificacaoController(notificacaoRepo, log)
	authController := controller.NewAuthController(autenticar, log)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	route.RegisterAuthRoutes(api, authController)
	route.RegisterProdutoRoutes(api, produtoController)
	route.RegisterClienteRoutes(api, clienteController)
	route.RegisterFornecedorRoutes(api, fornecedorController)
	route.RegisterVendaRoutes(api, vendaController)
	route.RegisterCompraRoutes(api, compraController)
	route.RegisterFinanceiroRoutes(api, financeiroController)
	route.RegisterCaixaRoutes(api, caixaController)
	route.RegisterNotificacaoRoutes(api, notificacaoController)

	sched := scheduler.NewScheduler(db, notificacaoRepo, log)

	return &App{
		router:    router,
		db:        db,
		scheduler: sched,
		logger:    log,
	}, nil
}

// Start sobe o servidor HTTP e o agendador de avisos, e encerra os dois de
// forma ordenada ao receber SIGINT ou SIGTERM
func (a *App) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: a.router,
	}

	if err := a.scheduler.Start(); err != nil {
		return fmt.Errorf("erro ao iniciar agendador: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("servidor iniciado", "porta", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("erro no servidor: %w", err)
	case sig := <-quit:
		a.logger.Info("encerrando aplicação", "sinal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.scheduler.Stop()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("erro ao encerrar servidor: %w", err)
	}

	a.db.Close()
	a.logger.Info("aplicação encerrada")
	return nil
}
