package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusprado/erp-suplementos/internal/domain/cliente"
	"github.com/matheusprado/erp-suplementos/internal/domain/financeiro"
	"github.com/matheusprado/erp-suplementos/internal/domain/venda"
	"github.com/matheusprado/erp-suplementos/internal/infrastructure/database"
)

// Erros específicos do repositório de vendas
var (
	ErrVendaNaoEncontrada = errors.New("venda não encontrada")
)

// prazoFiadoDias é o vencimento padrão da pendência gerada por venda fiado
const prazoFiadoDias = 30

// VendaRepository implementa a interface venda.Repository
type VendaRepository struct {
	db *pgxpool.Pool
}

// NewVendaRepository cria uma nova instância de VendaRepository
func NewVendaRepository(db *pgxpool.Pool) venda.Repository {
	return &VendaRepository{db: db}
}

// Salvar implementa venda.Repository.Salvar: persiste a venda e todos os seus
// efeitos colaterais em uma única transação. Qualquer falha desfaz tudo;
// nunca fica venda parcial visível.
func (r *VendaRepository) Salvar(ctx context.Context, v *venda.Venda) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		if err := r.inserirCabecalho(ctx, tx, v); err != nil {
			return err
		}

		// Débito recursivo de estoque com FEFO; pode emitir notificação de
		// estoque baixo dentro da mesma transação
		estoque := &estoqueTx{tx: tx}
		for _, item := range v.Itens {
			if err := estoque.Consumir(ctx, item.ProdutoID, item.Quantidade, 0); err != nil {
				return err
			}
		}

		if v.ClienteID != nil {
			// Trava o cliente para serializar leituras de saldo de crédito e
			// pontos dentro da venda
			if err := travarCliente(ctx, tx, *v.ClienteID); err != nil {
				return err
			}
		}

		for _, p := range v.Pagamentos {
			switch p.Metodo {
			case venda.MetodoFiado:
				if err := r.gerarPendenciaFiado(ctx, tx, v, p.Valor); err != nil {
					return err
				}
			case venda.MetodoCreditoLoja:
				if err := r.debitarCreditoLoja(ctx, tx, v, p.Valor); err != nil {
					return err
				}
			}
		}

		if v.ClienteID != nil {
			// Resgate antes do acúmulo: os pontos usados são validados contra
			// o saldo anterior à própria venda
			if v.PontosUsados > 0 {
				if err := debitarPontos(ctx, tx, *v.ClienteID, v.PontosUsados); err != nil {
					return err
				}
			}
			if acumulados := v.PontosAcumulados(); acumulados > 0 {
				if err := creditarPontos(ctx, tx, *v.ClienteID, acumulados); err != nil {
					return err
				}
			}
		}

		if v.Troco > venda.Tolerancia {
			if err := r.destinarTroco(ctx, tx, v); err != nil {
				return err
			}
		}

		return r.registrarMovimentosCaixa(ctx, tx, v)
	})
}

func (r *VendaRepository) inserirCabecalho(ctx context.Context, tx pgx.Tx, v *venda.Venda) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO vendas (
			id, cliente_id, usuario_id, total_bruto, desconto_manual,
			pontos_usados, desconto_pontos, total_liquido, troco,
			destino_troco, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		v.ID, v.ClienteID, v.UsuarioID, v.TotalBruto, v.DescontoManual,
		v.PontosUsados, v.DescontoPontos, v.TotalLiquido, v.Troco,
		v.DestinoTroco, v.Status, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao inserir venda: %w", err)
	}

	for i := range v.Itens {
		item := &v.Itens[i]
		if item.ID == "" {
			item.ID = novoID()
		}
		item.VendaID = v.ID
		if _, err := tx.Exec(ctx,
			`INSERT INTO itens_venda (id, venda_id, produto_id, quantidade, preco_unitario)
			VALUES ($1, $2, $3, $4, $5)`,
			item.ID, item.VendaID, item.ProdutoID, item.Quantidade, item.PrecoUnitario); err != nil {
			return fmt.Errorf("erro ao inserir item da venda: %w", err)
		}
	}

	for i := range v.Pagamentos {
		p := &v.Pagamentos[i]
		if p.ID == "" {
			p.ID = novoID()
		}
		p.VendaID = v.ID
		if _, err := tx.Exec(ctx,
			`INSERT INTO pagamentos (id, venda_id, metodo, valor, parcelas, valor_recebido)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			p.ID, p.VendaID, p.Metodo, p.Valor, p.Parcelas, p.ValorRecebido); err != nil {
			return fmt.Errorf("erro ao inserir pagamento da venda: %w", err)
		}
	}

	return nil
}

func (r *VendaRepository) gerarPendenciaFiado(ctx context.Context, tx pgx.Tx, v *venda.Venda, valor float64) error {
	if v.ClienteID == nil {
		return venda.ErrFiadoSemCliente
	}

	vencimento := v.CreatedAt.AddDate(0, 0, prazoFiadoDias)
	l, err := financeiro.NovoLancamento(financeiro.TipoReceita,
		fmt.Sprintf("Venda fiado %s", v.ID), valor, &vencimento)
	if err != nil {
		return err
	}
	l.ClienteID = v.ClienteID
	vendaID := v.ID
	l.VendaID = &vendaID

	_, err = tx.Exec(ctx,
		`INSERT INTO lancamentos (
			id, tipo, descricao, valor, valor_pago, status, vencimento,
			forma_pagamento, cliente_id, venda_id, compra_id, recorrencia,
			origem_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		l.ID, l.Tipo, l.Descricao, l.Valor, l.ValorPago, l.Status, l.Vencimento,
		l.FormaPagamento, l.ClienteID, l.VendaID, l.CompraID, l.Recorrencia,
		l.OrigemID, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao gerar pendência de fiado: %w", err)
	}
	return nil
}

func (r *VendaRepository) debitarCreditoLoja(ctx context.Context, tx pgx.Tx, v *venda.Venda, valor float64) error {
	if v.ClienteID == nil {
		return venda.ErrCreditoSemCliente
	}

	// Releitura do saldo dentro da transação: a estratégia só devolve
	// PENDENTE_VALIDACAO, a decisão final é aqui
	var saldo float64
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(CASE WHEN tipo = 'ENTRADA' THEN valor ELSE -valor END), 0)
		FROM creditos_clientes WHERE cliente_id = $1`,
		*v.ClienteID).Scan(&saldo)
	if err != nil {
		return fmt.Errorf("erro ao apurar saldo de crédito: %w", err)
	}
	if saldo < valor-venda.Tolerancia {
		return cliente.ErrSaldoCreditoInsuficiente
	}

	m, err := cliente.NovoMovimentoCredito(*v.ClienteID, cliente.CreditoSaida, valor,
		fmt.Sprintf("Pagamento da venda %s", v.ID))
	if err != nil {
		return err
	}
	return inserirMovimentoCredito(ctx, tx, m)
}

func (r *VendaRepository) destinarTroco(ctx context.Context, tx pgx.Tx, v *venda.Venda) error {
	switch v.DestinoTroco {
	case venda.TrocoCreditoLoja:
		if v.ClienteID == nil {
			return venda.ErrCreditoSemCliente
		}
		m, err := cliente.NovoMovimentoCredito(*v.ClienteID, cliente.CreditoEntrada, v.Troco,
			fmt.Sprintf("Troco da venda %s", v.ID))
		if err != nil {
			return err
		}
		return inserirMovimentoCredito(ctx, tx, m)

	case venda.TrocoPix:
		// Troco devolvido via PIX sai do caixa da loja como despesa já paga
		l, err := financeiro.NovoLancamento(financeiro.TipoDespesa,
			fmt.Sprintf("Troco via PIX da venda %s", v.ID), v.Troco, nil)
		if err != nil {
			return err
		}
		l.ValorPago = v.Troco
		l.Status = financeiro.StatusPago
		l.FormaPagamento = string(venda.MetodoPix)
		vendaID := v.ID
		l.VendaID = &vendaID

		if _, err := tx.Exec(ctx,
			`INSERT INTO lancamentos (
				id, tipo, descricao, valor, valor_pago, status, vencimento,
				forma_pagamento, cliente_id, venda_id, compra_id, recorrencia,
				origem_id, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			l.ID, l.Tipo, l.Descricao, l.Valor, l.ValorPago, l.Status, l.Vencimento,
			l.FormaPagamento, l.ClienteID, l.VendaID, l.CompraID, l.Recorrencia,
			l.OrigemID, l.CreatedAt, l.UpdatedAt); err != nil {
			return fmt.Errorf("erro ao registrar troco via PIX: %w", err)
		}
		return nil

	default:
		// Troco em dinheiro sai da gaveta; o movimento de caixa é registrado
		// junto com os demais
		return nil
	}
}

func (r *VendaRepository) registrarMovimentosCaixa(ctx context.Context, tx pgx.Tx, v *venda.Venda) error {
	var sessaoID string
	err := tx.QueryRow(ctx,
		"SELECT id FROM caixas_sessao WHERE status = 'ABERTO' LIMIT 1").Scan(&sessaoID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Sem sessão aberta não há movimento a registrar; o caso de uso já
			// barrou venda em dinheiro nessa situação
			return nil
		}
		return fmt.Errorf("erro ao buscar sessão de caixa: %w", err)
	}

	if dinheiro := v.SomaDinheiro(); dinheiro > 0 {
		if err := inserirMovimentacao(ctx, tx, sessaoID, "ENTRADA", dinheiro,
			fmt.Sprintf("Venda %s", v.ID)); err != nil {
			return err
		}
	}

	if v.Troco > venda.Tolerancia && v.DestinoTroco == venda.TrocoDinheiro {
		if err := inserirMovimentacao(ctx, tx, sessaoID, "SAIDA", v.Troco,
			fmt.Sprintf("Troco da venda %s", v.ID)); err != nil {
			return err
		}
	}

	return nil
}

// Cancelar implementa venda.Repository.Cancelar
func (r *VendaRepository) Cancelar(ctx context.Context, id string) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		var status venda.Status
		var clienteID *string
		var totalLiquido float64
		err := tx.QueryRow(ctx,
			"SELECT status, cliente_id, total_liquido FROM vendas WHERE id = $1 FOR UPDATE",
			id).Scan(&status, &clienteID, &totalLiquido)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrVendaNaoEncontrada
			}
			return fmt.Errorf("erro ao buscar venda: %w", err)
		}
		if status == venda.StatusCancelada {
			return venda.ErrVendaCancelada
		}

		if _, err := tx.Exec(ctx,
			"UPDATE vendas SET status = $1 WHERE id = $2",
			venda.StatusCancelada, id); err != nil {
			return fmt.Errorf("erro ao cancelar venda: %w", err)
		}

		// Devolve cada item ao estoque, expandindo kits
		rows, err := tx.Query(ctx,
			"SELECT produto_id, quantidade FROM itens_venda WHERE venda_id = $1", id)
		if err != nil {
			return fmt.Errorf("erro ao buscar itens da venda: %w", err)
		}
		type itemRestoque struct {
			produtoID  string
			quantidade int
		}
		var itens []itemRestoque
		for rows.Next() {
			var item itemRestoque
			if err := rows.Scan(&item.produtoID, &item.quantidade); err != nil {
				rows.Close()
				return fmt.Errorf("erro ao ler item da venda: %w", err)
			}
			itens = append(itens, item)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("erro ao ler itens da venda: %w", err)
		}

		estoque := &estoqueTx{tx: tx}
		for _, item := range itens {
			if err := estoque.Repor(ctx, item.produtoID, item.quantidade, 0); err != nil {
				return err
			}
		}

		// Estorna os pontos acumulados pela venda; saldo insuficiente aborta
		// o cancelamento inteiro
		if clienteID != nil {
			if pontos := cliente.PontosAcumulados(totalLiquido); pontos > 0 {
				if err := debitarPontos(ctx, tx, *clienteID, pontos); err != nil {
					return err
				}
			}
		}

		// A pendência de fiado pendente é removida; o enum de status não tem
		// estado de estorno
		if _, err := tx.Exec(ctx,
			"DELETE FROM lancamentos WHERE venda_id = $1 AND status = 'PENDENTE'",
			id); err != nil {
			return fmt.Errorf("erro ao remover pendência da venda: %w", err)
		}

		return nil
	})
}

// BuscarPorID implementa venda.Repository.BuscarPorID
func (r *VendaRepository) BuscarPorID(ctx context.Context, id string) (*venda.Venda, error) {
	var v venda.Venda
	err := r.db.QueryRow(ctx,
		`SELECT id, cliente_id, usuario_id, total_bruto, desconto_manual,
			pontos_usados, desconto_pontos, total_liquido, troco,
			destino_troco, status, created_at
		FROM vendas WHERE id = $1`,
		id).Scan(
		&v.ID, &v.ClienteID, &v.UsuarioID, &v.TotalBruto, &v.DescontoManual,
		&v.PontosUsados, &v.DescontoPontos, &v.TotalLiquido, &v.Troco,
		&v.DestinoTroco, &v.Status, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVendaNaoEncontrada
		}
		return nil, fmt.Errorf("erro ao buscar venda: %w", err)
	}

	if err := r.carregarItensEPagamentos(ctx, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Listar implementa venda.Repository.Listar
func (r *VendaRepository) Listar(ctx context.Context, filtro venda.Filtro, limit, offset int) ([]*venda.Venda, error) {
	query := `SELECT v.id, v.cliente_id, v.usuario_id, v.total_bruto, v.desconto_manual,
		v.pontos_usados, v.desconto_pontos, v.total_liquido, v.troco,
		v.destino_troco, v.status, v.created_at
	FROM vendas v
	LEFT JOIN clientes c ON c.id = v.cliente_id
	WHERE 1=1`
	args := []interface{}{}

	if filtro.DataInicio != nil {
		args = append(args, *filtro.DataInicio)
		query += fmt.Sprintf(" AND v.created_at >= $%d", len(args))
	}
	if filtro.DataFim != nil {
		args = append(args, *filtro.DataFim)
		query += fmt.Sprintf(" AND v.created_at <= $%d", len(args))
	}
	if filtro.Status != "" {
		args = append(args, filtro.Status)
		query += fmt.Sprintf(" AND v.status = $%d", len(args))
	}
	if filtro.ClienteNome != "" {
		args = append(args, "%"+filtro.ClienteNome+"%")
		query += fmt.Sprintf(" AND c.nome ILIKE $%d", len(args))
	}
	if filtro.VendaID != "" {
		args = append(args, filtro.VendaID+"%")
		query += fmt.Sprintf(" AND v.id::text LIKE $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY v.created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}
	defer rows.Close()

	vendas := make([]*venda.Venda, 0)
	for rows.Next() {
		var v venda.Venda
		if err := rows.Scan(
			&v.ID, &v.ClienteID, &v.UsuarioID, &v.TotalBruto, &v.DescontoManual,
			&v.PontosUsados, &v.DescontoPontos, &v.TotalLiquido, &v.Troco,
			&v.DestinoTroco, &v.Status, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler venda: %w", err)
		}
		vendas = append(vendas, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	for _, v := range vendas {
		if err := r.carregarItensEPagamentos(ctx, v); err != nil {
			return nil, err
		}
	}
	return vendas, nil
}

func (r *VendaRepository) carregarItensEPagamentos(ctx context.Context, v *venda.Venda) error {
	rows, err := r.db.Query(ctx,
		"SELECT id, venda_id, produto_id, quantidade, preco_unitario FROM itens_venda WHERE venda_id = $1",
		v.ID)
	if err != nil {
		return fmt.Errorf("erro ao buscar itens da venda: %w", err)
	}
	for rows.Next() {
		var item venda.ItemVenda
		if err := rows.Scan(&item.ID, &item.VendaID, &item.ProdutoID, &item.Quantidade, &item.PrecoUnitario); err != nil {
			rows.Close()
			return fmt.Errorf("erro ao ler item da venda: %w", err)
		}
		v.Itens = append(v.Itens, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("erro ao ler itens: %w", err)
	}

	rows, err = r.db.Query(ctx,
		"SELECT id, venda_id, metodo, valor, parcelas, valor_recebido FROM pagamentos WHERE venda_id = $1",
		v.ID)
	if err != nil {
		return fmt.Errorf("erro ao buscar pagamentos da venda: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p venda.Pagamento
		if err := rows.Scan(&p.ID, &p.VendaID, &p.Metodo, &p.Valor, &p.Parcelas, &p.ValorRecebido); err != nil {
			return fmt.Errorf("erro ao ler pagamento da venda: %w", err)
		}
		v.Pagamentos = append(v.Pagamentos, p)
	}
	return rows.Err()
}

// travarCliente trava a linha do cliente para serializar operações de saldo
func travarCliente(ctx context.Context, tx pgx.Tx, clienteID string) error {
	var id string
	err := tx.QueryRow(ctx,
		"SELECT id FROM clientes WHERE id = $1 FOR UPDATE", clienteID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrClienteNaoEncontrado
		}
		return fmt.Errorf("erro ao travar cliente: %w", err)
	}
	return nil
}

// debitarPontos debita pontos de fidelidade com trava de linha; saldo
// insuficiente é erro duro
func debitarPontos(ctx context.Context, tx pgx.Tx, clienteID string, pontos int) error {
	var saldo int
	err := tx.QueryRow(ctx,
		"SELECT pontos FROM fidelizacao WHERE cliente_id = $1 FOR UPDATE",
		clienteID).Scan(&saldo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cliente.ErrPontosInsuficientes
		}
		return fmt.Errorf("erro ao buscar pontos do cliente: %w", err)
	}
	if saldo < pontos {
		return cliente.ErrPontosInsuficientes
	}

	if _, err := tx.Exec(ctx,
		"UPDATE fidelizacao SET pontos = pontos - $1, updated_at = $2 WHERE cliente_id = $3",
		pontos, time.Now(), clienteID); err != nil {
		return fmt.Errorf("erro ao debitar pontos: %w", err)
	}
	return nil
}

// creditarPontos acumula pontos de fidelidade, criando o perfil se preciso
func creditarPontos(ctx context.Context, tx pgx.Tx, clienteID string, pontos int) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO fidelizacao (cliente_id, pontos, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (cliente_id)
		DO UPDATE SET pontos = fidelizacao.pontos + $2, updated_at = $3`,
		clienteID, pontos, time.Now())
	if err != nil {
		return fmt.Errorf("erro ao creditar pontos: %w", err)
	}
	return nil
}

// inserirMovimentoCredito acrescenta uma linha ao razão de crédito do cliente
func inserirMovimentoCredito(ctx context.Context, tx pgx.Tx, m *cliente.MovimentoCredito) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO creditos_clientes (id, cliente_id, tipo, valor, descricao, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.ClienteID, m.Tipo, m.Valor, m.Descricao, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao registrar movimento de crédito: %w", err)
	}
	return nil
}

// inserirMovimentacao registra um movimento de caixa em dinheiro
func inserirMovimentacao(ctx context.Context, tx pgx.Tx, sessaoID, tipo string, valor float64, descricao string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO caixas_movimentacao (id, sessao_id, tipo, forma_pagamento, valor, descricao, created_at)
		VALUES ($1, $2, $3, 'DINHEIRO', $4, $5, $6)`,
		novoID(), sessaoID, tipo, valor, descricao, time.Now())
	if err != nil {
		return fmt.Errorf("erro ao registrar movimentação de caixa: %w", err)
	}
	return nil
}
