package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"papertrade/types"
)

// MemoryStore keeps everything in process memory. It backs demo mode when
// no database URL is configured, and doubles as the store in handler tests.
type MemoryStore struct {
	mu          sync.RWMutex
	portfolios  map[string]*types.Portfolio
	trades      map[string][]types.TradeRecord
	quizResults map[string][]types.QuizResult
	symbols     map[string]types.Quote
	nextTradeID int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		portfolios:  make(map[string]*types.Portfolio),
		trades:      make(map[string][]types.TradeRecord),
		quizResults: make(map[string][]types.QuizResult),
		symbols:     make(map[string]types.Quote),
		nextTradeID: 1,
	}
}

func (m *MemoryStore) GetPortfolio(id string, _ context.Context) (*types.Portfolio, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.portfolios[id]
	if !ok {
		return nil, fmt.Errorf("portfolio %s: %w", id, ErrPortfolioNotFound)
	}
	return p.Clone(), nil
}

func (m *MemoryStore) ListPortfolios(_ context.Context) ([]*types.Portfolio, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*types.Portfolio, 0, len(m.portfolios))
	for _, p := range m.portfolios {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryStore) CreatePortfolio(p *types.Portfolio, _ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.portfolios[p.ID] = p.Clone()
	return nil
}

func (m *MemoryStore) SavePortfolio(p *types.Portfolio, trade *types.TradeRecord, _ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.portfolios[p.ID]; !ok {
		return fmt.Errorf("portfolio %s: %w", p.ID, ErrPortfolioNotFound)
	}
	m.portfolios[p.ID] = p.Clone()
	if trade != nil {
		t := *trade
		t.ID = m.nextTradeID
		m.nextTradeID++
		m.trades[p.ID] = append(m.trades[p.ID], t)
	}
	return nil
}

func (m *MemoryStore) ListTrades(portfolioID string, _ context.Context) ([]types.TradeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.TradeRecord, len(m.trades[portfolioID]))
	copy(out, m.trades[portfolioID])
	return out, nil
}

func (m *MemoryStore) SaveQuizResult(userID string, result types.QuizResult, _ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	result.Scores = result.Scores.Clone()
	m.quizResults[userID] = append(m.quizResults[userID], result)
	return nil
}

func (m *MemoryStore) LatestQuizResult(userID string, _ context.Context) (types.QuizResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := m.quizResults[userID]
	if len(history) == 0 {
		return types.QuizResult{}, fmt.Errorf("user %s: %w", userID, ErrQuizResultNotFound)
	}
	latest := history[len(history)-1]
	latest.Scores = latest.Scores.Clone()
	return latest, nil
}

func (m *MemoryStore) UpsertSymbol(symbol, name string, quote types.Quote, _ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	quote.Symbol = symbol
	quote.Name = name
	m.symbols[symbol] = quote
	return nil
}

func (m *MemoryStore) GetSymbol(ticker string, _ context.Context) (types.Quote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q, ok := m.symbols[ticker]
	if !ok {
		return types.Quote{}, fmt.Errorf("symbol %s: %w", ticker, ErrSymbolNotFound)
	}
	return q, nil
}

func (m *MemoryStore) ListSymbols(_ context.Context) ([]types.Quote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Quote, 0, len(m.symbols))
	for _, q := range m.symbols {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}
