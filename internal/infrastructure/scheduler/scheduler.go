package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/matheusprado/erp-suplementos/internal/domain/notificacao"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// Janelas de antecedência das varreduras
const (
	diasAvisoValidade   = 30
	diasAvisoVencimento = 7
)

// Scheduler agenda as varreduras periódicas que alimentam o painel de
// notificações: lotes perto do vencimento e contas a pagar perto do prazo
type Scheduler struct {
	cron         *cron.Cron
	db           *pgxpool.Pool
	notificacoes notificacao.Repository
	logger       logger.Logger
}

// NewScheduler cria um novo agendador de varreduras
func NewScheduler(db *pgxpool.Pool, notificacoes notificacao.Repository, logger logger.Logger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		db:           db,
		notificacoes: notificacoes,
		logger:       logger,
	}
}

// Start registra os jobs e inicia o agendador. As varreduras rodam de
// madrugada e uma vez na partida, para não esperar um dia inteiro pela
// primeira rodada.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 6 * * *", s.varrerValidades); err != nil {
		return fmt.Errorf("erro ao agendar varredura de validades: %w", err)
	}
	if _, err := s.cron.AddFunc("30 6 * * *", s.varrerVencimentos); err != nil {
		return fmt.Errorf("erro ao agendar varredura de vencimentos: %w", err)
	}

	s.cron.Start()

	go func() {
		s.varrerValidades()
		s.varrerVencimentos()
	}()

	s.logger.Info("agendador iniciado")
	return nil
}

// Stop para o agendador aguardando os jobs em andamento
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// varrerValidades notifica lotes com saldo positivo vencendo dentro da janela
func (s *Scheduler) varrerValidades() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	limite := time.Now().AddDate(0, 0, diasAvisoValidade)
	rows, err := s.db.Query(ctx,
		`SELECT l.id, l.validade, l.quantidade, p.nome
		FROM lotes l
		JOIN produtos p ON p.id = l.produto_id
		WHERE l.quantidade > 0 AND l.validade IS NOT NULL AND l.validade <= $1`,
		limite)
	if err != nil {
		s.logger.Error("erro na varredura de validades", "error", err)
		return
	}
	defer rows.Close()

	hoje := inicioDoDia(time.Now())
	for rows.Next() {
		var loteID, nome string
		var validade time.Time
		var quantidade int
		if err := rows.Scan(&loteID, &validade, &quantidade, &nome); err != nil {
			s.logger.Error("erro ao ler lote na varredura", "error", err)
			return
		}

		existe, err := s.notificacoes.ExistePara(ctx, notificacao.TipoValidadeProxima, loteID, hoje)
		if err != nil {
			s.logger.Error("erro ao verificar notificação de validade", "lote_id", loteID, "error", err)
			continue
		}
		if existe {
			continue
		}

		mensagem := fmt.Sprintf("Lote de %s vence em %s (%d unidade(s))",
			nome, validade.Format("02/01/2006"), quantidade)
		n := notificacao.Nova(notificacao.TipoValidadeProxima, mensagem, loteID)
		if err := s.notificacoes.Criar(ctx, n); err != nil {
			s.logger.Error("erro ao criar notificação de validade", "lote_id", loteID, "error", err)
		}
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("erro na varredura de validades", "error", err)
	}
}

// varrerVencimentos notifica lançamentos pendentes vencendo dentro da janela,
// vencidos inclusive
func (s *Scheduler) varrerVencimentos() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	limite := time.Now().AddDate(0, 0, diasAvisoVencimento)
	rows, err := s.db.Query(ctx,
		`SELECT id, descricao, valor, valor_pago, vencimento
		FROM lancamentos
		WHERE status = 'PENDENTE' AND vencimento IS NOT NULL AND vencimento <= $1`,
		limite)
	if err != nil {
		s.logger.Error("erro na varredura de vencimentos", "error", err)
		return
	}
	defer rows.Close()

	hoje := inicioDoDia(time.Now())
	for rows.Next() {
		var id, descricao string
		var valor, valorPago float64
		var vencimento time.Time
		if err := rows.Scan(&id, &descricao, &valor, &valorPago, &vencimento); err != nil {
			s.logger.Error("erro ao ler lançamento na varredura", "error", err)
			return
		}

		existe, err := s.notificacoes.ExistePara(ctx, notificacao.TipoContaAVencer, id, hoje)
		if err != nil {
			s.logger.Error("erro ao verificar notificação de vencimento", "lancamento_id", id, "error", err)
			continue
		}
		if existe {
			continue
		}

		mensagem := fmt.Sprintf("%s vence em %s (saldo R$ %.2f)",
			descricao, vencimento.Format("02/01/2006"), valor-valorPago)
		n := notificacao.Nova(notificacao.TipoContaAVencer, mensagem, id)
		if err := s.notificacoes.Criar(ctx, n); err != nil {
			s.logger.Error("erro ao criar notificação de vencimento", "lancamento_id", id, "error", err)
		}
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("erro na varredura de vencimentos", "error", err)
	}
}

func inicioDoDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
