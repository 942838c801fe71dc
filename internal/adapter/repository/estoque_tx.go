package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/matheusprado/erp-suplementos/internal/domain/notificacao"
	"github.com/matheusprado/erp-suplementos/internal/domain/produto"
)

// Erros do controle de estoque em transação
var (
	ErrProdutoNaoEncontrado = errors.New("produto não encontrado")
)

// estoqueTx agrupa as operações de estoque executadas dentro da transação de
// uma venda ou de um cancelamento. Todos os lotes lidos são travados com
// FOR UPDATE para evitar débitos perdidos entre vendas concorrentes.
type estoqueTx struct {
	tx pgx.Tx
}

type produtoResumo struct {
	id            string
	nome          string
	ehKit         bool
	estoqueMinimo int
}

func (e *estoqueTx) buscarProduto(ctx context.Context, produtoID string) (*produtoResumo, error) {
	var p produtoResumo
	err := e.tx.QueryRow(ctx,
		"SELECT id, nome, eh_kit, estoque_minimo FROM produtos WHERE id = $1",
		produtoID).Scan(&p.id, &p.nome, &p.ehKit, &p.estoqueMinimo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProdutoNaoEncontrado
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}
	return &p, nil
}

func (e *estoqueTx) buscarComponentes(ctx context.Context, kitID string) ([]produto.ComponenteKit, error) {
	rows, err := e.tx.Query(ctx,
		"SELECT kit_id, produto_id, quantidade, preco_componente FROM componentes_kit WHERE kit_id = $1",
		kitID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar componentes do kit: %w", err)
	}
	defer rows.Close()

	var componentes []produto.ComponenteKit
	for rows.Next() {
		var c produto.ComponenteKit
		if err := rows.Scan(&c.KitID, &c.ProdutoID, &c.Quantidade, &c.PrecoComponente); err != nil {
			return nil, fmt.Errorf("erro ao ler componente do kit: %w", err)
		}
		componentes = append(componentes, c)
	}
	return componentes, rows.Err()
}

// lotesParaAtualizar lê e trava todos os lotes do produto
func (e *estoqueTx) lotesParaAtualizar(ctx context.Context, produtoID string) ([]produto.Lote, error) {
	rows, err := e.tx.Query(ctx,
		`SELECT id, produto_id, quantidade, validade, custo_unitario, compra_id, created_at
		FROM lotes WHERE produto_id = $1
		ORDER BY created_at ASC
		FOR UPDATE`,
		produtoID)
	if err != nil {
		return nil, fmt.Errorf("erro ao travar lotes do produto: %w", err)
	}
	defer rows.Close()

	var lotes []produto.Lote
	for rows.Next() {
		var l produto.Lote
		if err := rows.Scan(&l.ID, &l.ProdutoID, &l.Quantidade, &l.Validade, &l.CustoUnitario, &l.CompraID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler lote: %w", err)
		}
		lotes = append(lotes, l)
	}
	return lotes, rows.Err()
}

// Consumir debita a quantidade pedida do estoque do produto. Kits são
// expandidos recursivamente nos componentes; produtos simples consomem lotes
// na ordem FEFO e, esgotados os lotes, o lote mais recente recebe o saldo
// negativo. Consumir nunca falha por falta de estoque físico.
func (e *estoqueTx) Consumir(ctx context.Context, produtoID string, quantidade int, nivel int) error {
	if quantidade <= 0 {
		return nil
	}
	if nivel > produto.ProfundidadeMaxComposicao {
		return produto.ErrComposicaoProfunda
	}

	p, err := e.buscarProduto(ctx, produtoID)
	if err != nil {
		return err
	}

	if p.ehKit {
		componentes, err := e.buscarComponentes(ctx, p.id)
		if err != nil {
			return err
		}
		for _, c := range componentes {
			if err := e.Consumir(ctx, c.ProdutoID, quantidade*c.Quantidade, nivel+1); err != nil {
				return err
			}
		}
		return nil
	}

	lotes, err := e.lotesParaAtualizar(ctx, produtoID)
	if err != nil {
		return err
	}

	plano := produto.PlanejarConsumoFEFO(lotes, quantidade)
	for _, debito := range plano.Debitos {
		if _, err := e.tx.Exec(ctx,
			"UPDATE lotes SET quantidade = quantidade - $1 WHERE id = $2",
			debito.Quantidade, debito.LoteID); err != nil {
			return fmt.Errorf("erro ao debitar lote: %w", err)
		}
	}

	if plano.Restante > 0 {
		alvo := produto.EscolherLoteFallback(lotes)
		if alvo == nil {
			// Produto sem lote algum: nasce um lote zerado que assume o saldo
			// negativo
			novo := produto.NovoLote(produtoID, 0, 0, nil, nil)
			if _, err := e.tx.Exec(ctx,
				`INSERT INTO lotes (id, produto_id, quantidade, validade, custo_unitario, compra_id, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				novo.ID, novo.ProdutoID, novo.Quantidade, novo.Validade, novo.CustoUnitario, novo.CompraID, novo.CreatedAt); err != nil {
				return fmt.Errorf("erro ao criar lote para saldo negativo: %w", err)
			}
			alvo = novo
		}
		if _, err := e.tx.Exec(ctx,
			"UPDATE lotes SET quantidade = quantidade - $1 WHERE id = $2",
			plano.Restante, alvo.ID); err != nil {
			return fmt.Errorf("erro ao lançar saldo negativo: %w", err)
		}
	}

	return e.verificarEstoqueBaixo(ctx, p)
}

// Repor devolve a quantidade ao estoque do produto, usada no cancelamento de
// venda. Kits devolvem aos componentes; produtos simples devolvem ao lote de
// validade mais distante.
func (e *estoqueTx) Repor(ctx context.Context, produtoID string, quantidade int, nivel int) error {
	if quantidade <= 0 {
		return nil
	}
	if nivel > produto.ProfundidadeMaxComposicao {
		return produto.ErrComposicaoProfunda
	}

	p, err := e.buscarProduto(ctx, produtoID)
	if err != nil {
		return err
	}

	if p.ehKit {
		componentes, err := e.buscarComponentes(ctx, p.id)
		if err != nil {
			return err
		}
		for _, c := range componentes {
			if err := e.Repor(ctx, c.ProdutoID, quantidade*c.Quantidade, nivel+1); err != nil {
				return err
			}
		}
		return nil
	}

	lotes, err := e.lotesParaAtualizar(ctx, produtoID)
	if err != nil {
		return err
	}

	alvo := produto.EscolherLoteReposicao(lotes)
	if alvo == nil {
		novo := produto.NovoLote(produtoID, quantidade, 0, nil, nil)
		if _, err := e.tx.Exec(ctx,
			`INSERT INTO lotes (id, produto_id, quantidade, validade, custo_unitario, compra_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			novo.ID, novo.ProdutoID, novo.Quantidade, novo.Validade, novo.CustoUnitario, novo.CompraID, novo.CreatedAt); err != nil {
			return fmt.Errorf("erro ao criar lote de reposição: %w", err)
		}
		return nil
	}

	if _, err := e.tx.Exec(ctx,
		"UPDATE lotes SET quantidade = quantidade + $1 WHERE id = $2",
		quantidade, alvo.ID); err != nil {
		return fmt.Errorf("erro ao repor lote: %w", err)
	}
	return nil
}

// EstoqueTotal soma as quantidades de todos os lotes do produto
func (e *estoqueTx) EstoqueTotal(ctx context.Context, produtoID string) (int, error) {
	var total int
	err := e.tx.QueryRow(ctx,
		"SELECT COALESCE(SUM(quantidade), 0) FROM lotes WHERE produto_id = $1",
		produtoID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("erro ao somar estoque: %w", err)
	}
	return total, nil
}

func (e *estoqueTx) verificarEstoqueBaixo(ctx context.Context, p *produtoResumo) error {
	total, err := e.EstoqueTotal(ctx, p.id)
	if err != nil {
		return err
	}
	if total > produto.LimiarEstoqueBaixo(p.estoqueMinimo) {
		return nil
	}

	tipo := notificacao.TipoEstoqueBaixo
	mensagem := fmt.Sprintf("Estoque baixo: %s com %d unidade(s)", p.nome, total)
	if total < 0 {
		tipo = notificacao.TipoEstoqueNegativo
		mensagem = fmt.Sprintf("Estoque negativo: %s com %d unidade(s)", p.nome, total)
	}

	n := notificacao.Nova(tipo, mensagem, p.id)
	if _, err := e.tx.Exec(ctx,
		`INSERT INTO notificacoes (id, tipo, mensagem, referencia_id, lida, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.Tipo, n.Mensagem, n.ReferenciaID, n.Lida, n.CreatedAt); err != nil {
		return fmt.Errorf("erro ao registrar notificação de estoque: %w", err)
	}
	return nil
}

// novoID encurta a geração de identificadores nos repositórios
func novoID() string {
	return uuid.New().String()
}
