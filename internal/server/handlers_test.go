package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"papertrade/internal/marketdata"
	"papertrade/internal/quiz"
	"papertrade/internal/repository"

	"github.com/shopspring/decimal"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := marketdata.DefaultServiceConfig()
	cfg.MinInterval = 0
	quotes, err := marketdata.NewService(cfg, logger,
		marketdata.NewStaticProvider(marketdata.DefaultStaticQuotes()))
	if err != nil {
		t.Fatal(err)
	}

	store := repository.NewMemoryStore()
	for _, q := range marketdata.DefaultStaticQuotes() {
		if err := store.UpsertSymbol(q.Symbol, q.Name, q, context.Background()); err != nil {
			t.Fatal(err)
		}
	}

	serverCfg := DefaultConfig()
	serverCfg.StartingCash = decimal.NewFromInt(100000)
	return NewServer(serverCfg, store, quotes, logger)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s.Handler(), http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
}

func TestQuizFlow(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/api/quiz/sessions", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: got %d, want 201", w.Code)
	}
	sessionID := decode(t, w)["sessionId"].(string)

	// Completing before answering anything is rejected.
	w = doJSON(t, h, http.MethodPost, "/api/quiz/sessions/"+sessionID+"/complete", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("premature complete: got %d, want 400", w.Code)
	}

	// Answer every question with its most conservative option.
	for _, q := range quiz.DefaultQuestions {
		w = doJSON(t, h, http.MethodPost, "/api/quiz/sessions/"+sessionID+"/answers", map[string]any{
			"questionId": q.ID,
			"optionIds":  []string{q.Options[0].ID},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("answer %s: got %d, body %s", q.ID, w.Code, w.Body.String())
		}
	}

	w = doJSON(t, h, http.MethodPost, "/api/quiz/sessions/"+sessionID+"/complete",
		map[string]any{"userId": "user-1"})
	if w.Code != http.StatusOK {
		t.Fatalf("complete: got %d, body %s", w.Code, w.Body.String())
	}
	result := decode(t, w)
	if result["archetype"] != "conservative" {
		t.Errorf("archetype: got %v, want conservative", result["archetype"])
	}
	confidence := result["confidence"].(float64)
	if confidence <= 0 || confidence > 100 {
		t.Errorf("confidence out of range: %v", confidence)
	}

	// The saved result is retrievable by user.
	w = doJSON(t, h, http.MethodGet, "/api/users/user-1/archetype", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("user archetype: got %d, body %s", w.Code, w.Body.String())
	}
	if decode(t, w)["archetype"] != "conservative" {
		t.Errorf("stored archetype: got %v, want conservative", decode(t, w)["archetype"])
	}
}

func TestUserArchetypeNotFound(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s.Handler(), http.MethodGet, "/api/users/nobody/archetype", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", w.Code)
	}
}

func TestAnswerUnknownOption(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	sessionID := decode(t, doJSON(t, h, http.MethodPost, "/api/quiz/sessions", nil))["sessionId"].(string)
	w := doJSON(t, h, http.MethodPost, "/api/quiz/sessions/"+sessionID+"/answers", map[string]any{
		"questionId": "risk-tolerance",
		"optionIds":  []string{"made-up"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", w.Code)
	}
}

func TestListArchetypes(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s.Handler(), http.MethodGet, "/api/archetypes", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	archetypes := decode(t, w)["archetypes"].([]any)
	if len(archetypes) != 4 {
		t.Fatalf("archetypes: got %d, want 4", len(archetypes))
	}

	w = doJSON(t, s.Handler(), http.MethodGet, "/api/archetypes/nonsense", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown archetype: got %d, want 404", w.Code)
	}
}

func TestPortfolioTradeFlow(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/api/portfolios", map[string]any{
		"userId": "user-1",
		"name":   "Demo",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d, body %s", w.Code, w.Body.String())
	}
	portfolioID := decode(t, w)["id"].(string)

	w = doJSON(t, h, http.MethodPost, "/api/portfolios/"+portfolioID+"/buy", map[string]any{
		"symbol":   "AAPL",
		"quantity": "10",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("buy: got %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, h, http.MethodGet, "/api/portfolios/"+portfolioID, nil)
	view := decode(t, w)
	positions := view["positions"].(map[string]any)
	if _, ok := positions["AAPL"]; !ok {
		t.Fatal("expected AAPL position after buy")
	}

	w = doJSON(t, h, http.MethodPost, "/api/portfolios/"+portfolioID+"/sell", map[string]any{
		"symbol":   "AAPL",
		"quantity": "10",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("sell: got %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, h, http.MethodGet, "/api/portfolios/"+portfolioID+"/trades", nil)
	trades := decode(t, w)["trades"].([]any)
	if len(trades) != 2 {
		t.Fatalf("trades: got %d, want 2", len(trades))
	}
}

func TestBuyRejectsOverspend(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	portfolioID := decode(t, doJSON(t, h, http.MethodPost, "/api/portfolios", map[string]any{
		"userId": "user-1",
		"name":   "Demo",
	}))["id"].(string)

	w := doJSON(t, h, http.MethodPost, "/api/portfolios/"+portfolioID+"/buy", map[string]any{
		"symbol":   "AAPL",
		"quantity": "1000000",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d, want 422", w.Code)
	}

	// The failed buy must not have changed anything.
	view := decode(t, doJSON(t, h, http.MethodGet, "/api/portfolios/"+portfolioID, nil))
	if view["cash"].(string) != "100000" {
		t.Errorf("cash: got %v, want 100000", view["cash"])
	}
}

func TestSellUnknownPosition(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	portfolioID := decode(t, doJSON(t, h, http.MethodPost, "/api/portfolios", map[string]any{
		"userId": "user-1",
		"name":   "Demo",
	}))["id"].(string)

	w := doJSON(t, h, http.MethodPost, "/api/portfolios/"+portfolioID+"/sell", map[string]any{
		"symbol":   "MSFT",
		"quantity": "1",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", w.Code)
	}
}

func TestGetPortfolioNotFound(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s.Handler(), http.MethodGet, "/api/portfolios/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", w.Code)
	}
}

func TestListSymbols(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s.Handler(), http.MethodGet, "/api/symbols", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	symbols := decode(t, w)["symbols"].([]any)
	if len(symbols) == 0 {
		t.Fatal("expected seeded symbols")
	}

	w = doJSON(t, s.Handler(), http.MethodGet, "/api/symbols/AAPL", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get symbol: got %d, want 200", w.Code)
	}
	if decode(t, w)["name"] != "Apple Inc." {
		t.Errorf("name: got %v, want Apple Inc.", decode(t, w)["name"])
	}

	w = doJSON(t, s.Handler(), http.MethodGet, "/api/symbols/ZZZZ", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown symbol: got %d, want 404", w.Code)
	}
}

func TestGetQuote(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s.Handler(), http.MethodGet, "/api/quotes/AAPL", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	quote := decode(t, w)
	if quote["symbol"] != "AAPL" {
		t.Errorf("symbol: got %v, want AAPL", quote["symbol"])
	}
}

func TestLeaderboard(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	for _, name := range []string{"First", "Second"} {
		w := doJSON(t, h, http.MethodPost, "/api/portfolios", map[string]any{
			"userId": "user-1",
			"name":   name,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create %s: got %d", name, w.Code)
		}
	}

	w := doJSON(t, h, http.MethodGet, "/api/leaderboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	entries := decode(t, w)["leaderboard"].([]any)
	if len(entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(entries))
	}
}

func TestProgress(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	portfolioID := decode(t, doJSON(t, h, http.MethodPost, "/api/portfolios", map[string]any{
		"userId": "user-1",
		"name":   "Demo",
	}))["id"].(string)

	w := doJSON(t, h, http.MethodPost, "/api/portfolios/"+portfolioID+"/buy", map[string]any{
		"symbol":   "AAPL",
		"quantity": "5",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("buy: got %d", w.Code)
	}

	w = doJSON(t, h, http.MethodGet, "/api/portfolios/"+portfolioID+"/progress", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("progress: got %d, body %s", w.Code, w.Body.String())
	}
	progress := decode(t, w)
	// portfolio_created + first_trade + position_added.
	if xp := progress["xp"].(float64); xp != 150 {
		t.Errorf("xp: got %v, want 150", xp)
	}
	badges := progress["badges"].([]any)
	if len(badges) != 1 {
		t.Fatalf("badges: got %d, want 1", len(badges))
	}
}
