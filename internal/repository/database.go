package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Global error declarations.
var (
	ErrPortfolioNotFound  = errors.New("portfolio not found in datasource")
	ErrQuizResultNotFound = errors.New("quiz result not found in datasource")
	ErrSymbolNotFound     = errors.New("symbol not found in datasource")
)

type portfolioRow struct {
	ID           string
	UserID       string
	Name         string
	Cash         decimal.Decimal
	StartingCash decimal.Decimal
	CreatedAt    time.Time
	ModifiedAt   time.Time
}

type positionRow struct {
	PortfolioID string
	Symbol      string
	Name        string
	Quantity    decimal.Decimal
	AvgCost     decimal.Decimal
	LastPrice   decimal.Decimal
}

type tradeRow struct {
	ID          int
	PortfolioID string
	Symbol      string
	Side        string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	ExecutedAt  time.Time
}

type quizResultRow struct {
	UserID     string
	Archetype  string
	Confidence float64
	Scores     map[string]float64
	CreatedAt  time.Time
}

type symbolRow struct {
	Ticker string
	Name   string
	Price  decimal.Decimal
}

type portfolioQueries interface {
	GetPortfolio(ctx context.Context, id string) (portfolioRow, error)
	ListPortfolios(ctx context.Context) ([]portfolioRow, error)
	ListPositions(ctx context.Context, portfolioID string) ([]positionRow, error)
	InsertPortfolio(ctx context.Context, row portfolioRow) error
	SavePortfolio(ctx context.Context, p portfolioRow, positions []positionRow, trade *tradeRow) error
	ListTrades(ctx context.Context, portfolioID string) ([]tradeRow, error)
}

type quizQueries interface {
	InsertQuizResult(ctx context.Context, row quizResultRow) error
	LatestQuizResult(ctx context.Context, userID string) (quizResultRow, error)
}

type symbolQueries interface {
	UpsertSymbol(ctx context.Context, row symbolRow) error
	GetSymbol(ctx context.Context, ticker string) (symbolRow, error)
	ListSymbols(ctx context.Context) ([]symbolRow, error)
}

// Database struct that holds the database connection and queries.
type Database struct {
	portfolios portfolioQueries
	quiz       quizQueries
	symbols    symbolQueries
	conn       *pgxpool.Pool
}

// NewDatabase creates a new Database instance and verifies connectivity.
func NewDatabase(dbURL string) (Database, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return Database{}, fmt.Errorf("parse config: %w", err)
	}
	// Register shopspring decimal
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	conn, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return Database{}, err
	}
	// Ensure the connection is established.
	if err := conn.Ping(context.Background()); err != nil {
		return Database{}, err
	}

	q := &queries{pool: conn}
	return Database{
		portfolios: q,
		quiz:       q,
		symbols:    q,
		conn:       conn,
	}, nil
}

func (db *Database) Close() {
	if db.conn != nil {
		db.conn.Close()
	}
}
