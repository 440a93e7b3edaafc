package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// queries is the hand-written pgx implementation behind the Database
// interfaces.
type queries struct {
	pool *pgxpool.Pool
}

func (q *queries) GetPortfolio(ctx context.Context, id string) (portfolioRow, error) {
	var row portfolioRow
	err := q.pool.QueryRow(ctx, `
		SELECT id, user_id, name, cash, starting_cash, created_at, modified_at
		FROM portfolios WHERE id = $1`, id,
	).Scan(&row.ID, &row.UserID, &row.Name, &row.Cash, &row.StartingCash, &row.CreatedAt, &row.ModifiedAt)
	if err != nil {
		return portfolioRow{}, err
	}
	return row, nil
}

func (q *queries) ListPortfolios(ctx context.Context) ([]portfolioRow, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT id, user_id, name, cash, starting_cash, created_at, modified_at
		FROM portfolios ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []portfolioRow
	for rows.Next() {
		var row portfolioRow
		if err := rows.Scan(&row.ID, &row.UserID, &row.Name, &row.Cash, &row.StartingCash, &row.CreatedAt, &row.ModifiedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (q *queries) ListPositions(ctx context.Context, portfolioID string) ([]positionRow, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT portfolio_id, symbol, name, quantity, avg_cost, last_price
		FROM positions WHERE portfolio_id = $1 ORDER BY symbol`, portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []positionRow
	for rows.Next() {
		var row positionRow
		if err := rows.Scan(&row.PortfolioID, &row.Symbol, &row.Name, &row.Quantity, &row.AvgCost, &row.LastPrice); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (q *queries) InsertPortfolio(ctx context.Context, row portfolioRow) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO portfolios (id, user_id, name, cash, starting_cash, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		row.ID, row.UserID, row.Name, row.Cash, row.StartingCash, row.CreatedAt, row.ModifiedAt)
	return err
}

// SavePortfolio replaces the portfolio row and its position set, and
// appends the trade that caused the change, in one transaction. A trade of
// nil means a price refresh.
func (q *queries) SavePortfolio(ctx context.Context, p portfolioRow, positions []positionRow, trade *tradeRow) error {
	tx, err := q.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE portfolios SET cash = $2, modified_at = $3 WHERE id = $1`,
		p.ID, p.Cash, p.ModifiedAt)
	if err != nil {
		return fmt.Errorf("update portfolio: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM positions WHERE portfolio_id = $1`, p.ID); err != nil {
		return fmt.Errorf("clear positions: %w", err)
	}
	for _, pos := range positions {
		_, err := tx.Exec(ctx, `
			INSERT INTO positions (portfolio_id, symbol, name, quantity, avg_cost, last_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			pos.PortfolioID, pos.Symbol, pos.Name, pos.Quantity, pos.AvgCost, pos.LastPrice)
		if err != nil {
			return fmt.Errorf("insert position %s: %w", pos.Symbol, err)
		}
	}

	if trade != nil {
		_, err := tx.Exec(ctx, `
			INSERT INTO trades (portfolio_id, symbol, side, quantity, price, executed_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			trade.PortfolioID, trade.Symbol, trade.Side, trade.Quantity, trade.Price, trade.ExecutedAt)
		if err != nil {
			return fmt.Errorf("insert trade: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (q *queries) ListTrades(ctx context.Context, portfolioID string) ([]tradeRow, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT id, portfolio_id, symbol, side, quantity, price, executed_at
		FROM trades WHERE portfolio_id = $1 ORDER BY executed_at`, portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tradeRow
	for rows.Next() {
		var row tradeRow
		if err := rows.Scan(&row.ID, &row.PortfolioID, &row.Symbol, &row.Side, &row.Quantity, &row.Price, &row.ExecutedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (q *queries) InsertQuizResult(ctx context.Context, row quizResultRow) error {
	scores, err := json.Marshal(row.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	_, err = q.pool.Exec(ctx, `
		INSERT INTO quiz_results (user_id, archetype, confidence, scores, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		row.UserID, row.Archetype, row.Confidence, scores, row.CreatedAt)
	return err
}

func (q *queries) LatestQuizResult(ctx context.Context, userID string) (quizResultRow, error) {
	var (
		row    quizResultRow
		scores []byte
	)
	err := q.pool.QueryRow(ctx, `
		SELECT user_id, archetype, confidence, scores, created_at
		FROM quiz_results WHERE user_id = $1
		ORDER BY created_at DESC LIMIT 1`, userID,
	).Scan(&row.UserID, &row.Archetype, &row.Confidence, &scores, &row.CreatedAt)
	if err != nil {
		return quizResultRow{}, err
	}
	if err := json.Unmarshal(scores, &row.Scores); err != nil {
		return quizResultRow{}, fmt.Errorf("unmarshal scores: %w", err)
	}
	return row, nil
}

func (q *queries) UpsertSymbol(ctx context.Context, row symbolRow) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO symbols (ticker, name, price)
		VALUES ($1, $2, $3)
		ON CONFLICT (ticker) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price`,
		row.Ticker, row.Name, row.Price)
	return err
}

func (q *queries) GetSymbol(ctx context.Context, ticker string) (symbolRow, error) {
	var row symbolRow
	err := q.pool.QueryRow(ctx, `SELECT ticker, name, price FROM symbols WHERE ticker = $1`, ticker,
	).Scan(&row.Ticker, &row.Name, &row.Price)
	if err != nil {
		return symbolRow{}, err
	}
	return row, nil
}

func (q *queries) ListSymbols(ctx context.Context) ([]symbolRow, error) {
	rows, err := q.pool.Query(ctx, `SELECT ticker, name, price FROM symbols ORDER BY ticker`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []symbolRow
	for rows.Next() {
		var row symbolRow
		if err := rows.Scan(&row.Ticker, &row.Name, &row.Price); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
