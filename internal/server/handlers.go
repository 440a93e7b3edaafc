package server

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"papertrade/internal/gamification"
	"papertrade/internal/ledger"
	"papertrade/internal/quiz"
	"papertrade/types"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func newID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

// --- quiz ---

func (s *Server) handleListQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": quiz.DefaultQuestions})
}

func (s *Server) handleCreateSession(c *gin.Context) {
	session := quiz.NewSession(quiz.DefaultQuestions)
	id := newID()

	s.sessionMu.Lock()
	s.sessions[id] = session
	s.sessionMu.Unlock()

	c.JSON(http.StatusCreated, gin.H{
		"sessionId":     id,
		"state":         session.State(),
		"question":      session.Current(),
		"questionCount": len(session.Questions()),
	})
}

func (s *Server) session(id string) (*quiz.Session, bool) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *Server) handleGetSession(c *gin.Context) {
	session, ok := s.session(c.Param("id"))
	if !ok {
		s.abortWithError(c, errSessionNotFound)
		return
	}

	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"state":         session.State(),
		"cursor":        session.Cursor(),
		"question":      session.Current(),
		"answered":      session.AnsweredCount(),
		"questionCount": len(session.Questions()),
	})
}

type answerRequest struct {
	QuestionID string   `json:"questionId" binding:"required"`
	OptionIDs  []string `json:"optionIds" binding:"required"`
}

func (s *Server) handleAnswer(c *gin.Context) {
	session, ok := s.session(c.Param("id"))
	if !ok {
		s.abortWithError(c, errSessionNotFound)
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	if err := session.Answer(req.QuestionID, req.OptionIDs); err != nil {
		s.abortWithError(c, err)
		return
	}
	// Advance past the question just answered so the client always sees
	// the next open one.
	if session.Current().ID == req.QuestionID {
		_ = session.Next()
	}

	c.JSON(http.StatusOK, gin.H{
		"state":         session.State(),
		"cursor":        session.Cursor(),
		"question":      session.Current(),
		"answered":      session.AnsweredCount(),
		"questionCount": len(session.Questions()),
	})
}

type completeRequest struct {
	UserID string `json:"userId"`
}

func (s *Server) handleComplete(c *gin.Context) {
	session, ok := s.session(c.Param("id"))
	if !ok {
		s.abortWithError(c, errSessionNotFound)
		return
	}

	var req completeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	s.sessionMu.Lock()
	result, err := session.Complete()
	s.sessionMu.Unlock()
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	if req.UserID != "" {
		if err := s.store.SaveQuizResult(req.UserID, result, c.Request.Context()); err != nil {
			s.abortWithError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"archetype":       result.Archetype,
		"profile":         quiz.Profiles[result.Archetype],
		"confidence":      result.Confidence,
		"confidenceLevel": quiz.ConfidenceLevel(result.Confidence),
		"scores":          result.Scores,
	})
}

func (s *Server) handleListArchetypes(c *gin.Context) {
	profiles := make([]types.ArchetypeProfile, 0, len(types.ArchetypePriority))
	for _, archetype := range types.ArchetypePriority {
		profiles = append(profiles, quiz.Profiles[archetype])
	}
	c.JSON(http.StatusOK, gin.H{"archetypes": profiles})
}

// handleUserArchetype returns the user's most recent quiz outcome with
// the matching profile attached.
func (s *Server) handleUserArchetype(c *gin.Context) {
	result, err := s.store.LatestQuizResult(c.Param("id"), c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"archetype":       result.Archetype,
		"profile":         quiz.Profiles[result.Archetype],
		"confidence":      result.Confidence,
		"confidenceLevel": quiz.ConfidenceLevel(result.Confidence),
		"scores":          result.Scores,
	})
}

func (s *Server) handleGetArchetype(c *gin.Context) {
	profile, ok := quiz.Profiles[types.Archetype(c.Param("id"))]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown archetype"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// --- portfolios ---

type createPortfolioRequest struct {
	UserID string `json:"userId" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

func (s *Server) handleCreatePortfolio(c *gin.Context) {
	var req createPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := types.NewPortfolio(newID(), req.UserID, req.Name, s.startingCash)
	if err := s.store.CreatePortfolio(p, c.Request.Context()); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ledger.Snapshot(p, s.startingCash, time.Now()))
}

func (s *Server) handleGetPortfolio(c *gin.Context) {
	p, err := s.store.GetPortfolio(c.Param("id"), c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledger.Snapshot(p, s.startingCash, time.Now()))
}

type tradeRequest struct {
	Symbol   string          `json:"symbol" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

func (s *Server) handleBuy(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	p, err := s.store.GetPortfolio(c.Param("id"), ctx)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	quote, err := s.quotes.GetQuote(ctx, req.Symbol)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	updated, err := ledger.Buy(p, quote.Symbol, quote.Name, req.Quantity, quote.Price)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	trade := &types.TradeRecord{
		PortfolioID: updated.ID,
		Symbol:      quote.Symbol,
		Side:        types.SideTypeBuy,
		Quantity:    req.Quantity,
		Price:       quote.Price,
		ExecutedAt:  time.Now().UTC(),
	}
	if err := s.store.SavePortfolio(updated, trade, ctx); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"portfolio": ledger.Snapshot(updated, s.startingCash, time.Now()),
		"trade":     trade,
	})
}

func (s *Server) handleSell(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	p, err := s.store.GetPortfolio(c.Param("id"), ctx)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	quote, err := s.quotes.GetQuote(ctx, req.Symbol)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	updated, err := ledger.Sell(p, quote.Symbol, req.Quantity, quote.Price)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	trade := &types.TradeRecord{
		PortfolioID: updated.ID,
		Symbol:      quote.Symbol,
		Side:        types.SideTypeSell,
		Quantity:    req.Quantity,
		Price:       quote.Price,
		ExecutedAt:  time.Now().UTC(),
	}
	if err := s.store.SavePortfolio(updated, trade, ctx); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"portfolio": ledger.Snapshot(updated, s.startingCash, time.Now()),
		"trade":     trade,
	})
}

func (s *Server) handleRefresh(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := s.store.GetPortfolio(c.Param("id"), ctx)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	symbols := make([]string, 0, len(p.Positions))
	for symbol := range p.Positions {
		symbols = append(symbols, symbol)
	}
	prices, err := s.quotes.GetQuotes(ctx, symbols)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	updated := ledger.RefreshPrices(p, prices)
	if err := s.store.SavePortfolio(updated, nil, ctx); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledger.Snapshot(updated, s.startingCash, time.Now()))
}

func (s *Server) handleListTrades(c *gin.Context) {
	trades, err := s.store.ListTrades(c.Param("id"), c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trades": trades})
}

// handleProgress reports the gamification state derived from the
// portfolio: XP, level, and earned badges.
func (s *Server) handleProgress(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := s.store.GetPortfolio(c.Param("id"), ctx)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	trades, err := s.store.ListTrades(p.ID, ctx)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	view := ledger.Snapshot(p, s.startingCash, time.Now())
	badges := gamification.EvaluateBadges(view, len(trades))
	xp := portfolioXP(view, trades)
	level := gamification.LevelFor(xp)

	c.JSON(http.StatusOK, gin.H{
		"xp":       xp,
		"level":    level,
		"progress": gamification.ProgressWithinLevel(xp),
		"badges":   badges,
	})
}

// portfolioXP replays the XP table against the portfolio's current state.
func portfolioXP(view types.PortfolioView, trades []types.TradeRecord) int {
	total := 0
	add := func(action string) {
		if r, err := gamification.RewardFor(action); err == nil {
			total += r.Amount
		}
	}

	add("portfolio_created")
	if len(trades) > 0 {
		add("first_trade")
	}
	for _, trade := range trades {
		if trade.Side == types.SideTypeBuy {
			add("position_added")
		}
	}
	if len(view.Positions) >= 5 {
		add("diversification_5")
	}
	if view.ReturnPercent.IsPositive() {
		add("portfolio_positive")
	}
	for pct, action := range map[int64]string{
		5:  "milestone_5percent",
		10: "milestone_10percent",
		25: "milestone_25percent",
	} {
		if view.ReturnPercent.GreaterThanOrEqual(decimal.NewFromInt(pct)) {
			add(action)
		}
	}
	return total
}

// --- symbols / quotes / leaderboard ---

// handleListSymbols returns the tradable universe.
func (s *Server) handleListSymbols(c *gin.Context) {
	symbols, err := s.store.ListSymbols(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbols": symbols})
}

func (s *Server) handleGetSymbol(c *gin.Context) {
	symbol, err := s.store.GetSymbol(c.Param("ticker"), c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, symbol)
}

func (s *Server) handleGetQuote(c *gin.Context) {
	quote, err := s.quotes.GetQuote(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	portfolios, err := s.store.ListPortfolios(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	now := time.Now()
	views := make([]types.PortfolioView, 0, len(portfolios))
	for _, p := range portfolios {
		views = append(views, ledger.Snapshot(p, s.startingCash, now))
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": ledger.Leaderboard(views)})
}
