package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"papertrade/internal/quiz"
	"papertrade/types"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Store is the persistence surface the handlers need.
type Store interface {
	GetPortfolio(id string, ctx context.Context) (*types.Portfolio, error)
	ListPortfolios(ctx context.Context) ([]*types.Portfolio, error)
	CreatePortfolio(p *types.Portfolio, ctx context.Context) error
	SavePortfolio(p *types.Portfolio, trade *types.TradeRecord, ctx context.Context) error
	ListTrades(portfolioID string, ctx context.Context) ([]types.TradeRecord, error)
	SaveQuizResult(userID string, result types.QuizResult, ctx context.Context) error
	LatestQuizResult(userID string, ctx context.Context) (types.QuizResult, error)
	GetSymbol(ticker string, ctx context.Context) (types.Quote, error)
	ListSymbols(ctx context.Context) ([]types.Quote, error)
}

// QuoteService resolves live or demo market quotes.
type QuoteService interface {
	GetQuote(ctx context.Context, symbol string) (*types.Quote, error)
	GetQuotes(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)
}

type Config struct {
	Host         string
	Port         int
	Debug        bool
	StartingCash decimal.Decimal
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8080,
		StartingCash: decimal.NewFromInt(100000),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

type Server struct {
	engine     *gin.Engine
	httpServer *http.Server

	store  Store
	quotes QuoteService
	logger *slog.Logger

	startingCash decimal.Decimal

	sessionMu sync.Mutex
	sessions  map[string]*quiz.Session

	startTime time.Time
}

func NewServer(cfg Config, store Store, quotes QuoteService, logger *slog.Logger) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"}
	engine.Use(cors.New(corsConfig))

	s := &Server{
		engine:       engine,
		store:        store,
		quotes:       quotes,
		logger:       logger,
		startingCash: cfg.StartingCash,
		sessions:     make(map[string]*quiz.Session),
		startTime:    time.Now(),
	}
	s.registerRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")

	api.GET("/health", s.handleHealth)

	q := api.Group("/quiz")
	{
		q.GET("/questions", s.handleListQuestions)
		q.POST("/sessions", s.handleCreateSession)
		q.GET("/sessions/:id", s.handleGetSession)
		q.POST("/sessions/:id/answers", s.handleAnswer)
		q.POST("/sessions/:id/complete", s.handleComplete)
	}

	api.GET("/archetypes", s.handleListArchetypes)
	api.GET("/archetypes/:id", s.handleGetArchetype)
	api.GET("/users/:id/archetype", s.handleUserArchetype)

	p := api.Group("/portfolios")
	{
		p.POST("", s.handleCreatePortfolio)
		p.GET("/:id", s.handleGetPortfolio)
		p.POST("/:id/buy", s.handleBuy)
		p.POST("/:id/sell", s.handleSell)
		p.POST("/:id/refresh", s.handleRefresh)
		p.GET("/:id/trades", s.handleListTrades)
		p.GET("/:id/progress", s.handleProgress)
	}

	api.GET("/symbols", s.handleListSymbols)
	api.GET("/symbols/:ticker", s.handleGetSymbol)
	api.GET("/quotes/:symbol", s.handleGetQuote)
	api.GET("/leaderboard", s.handleLeaderboard)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks serving HTTP until Shutdown is called or the listener
// fails.
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
