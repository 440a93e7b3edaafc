package server

import (
	"errors"
	"net/http"

	"papertrade/internal/ledger"
	"papertrade/internal/marketdata"
	"papertrade/internal/quiz"
	"papertrade/internal/repository"

	"github.com/gin-gonic/gin"
)

var errSessionNotFound = errors.New("quiz session not found")

// statusFor maps core sentinel errors onto HTTP statuses. Anything
// unmapped is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrPortfolioNotFound),
		errors.Is(err, repository.ErrQuizResultNotFound),
		errors.Is(err, repository.ErrSymbolNotFound),
		errors.Is(err, ledger.ErrPositionNotFound),
		errors.Is(err, marketdata.ErrQuoteNotFound),
		errors.Is(err, errSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrInsufficientShares):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrInvalidQuantity),
		errors.Is(err, ledger.ErrInvalidPrice),
		errors.Is(err, quiz.ErrUnknownQuestion),
		errors.Is(err, quiz.ErrUnknownOption),
		errors.Is(err, quiz.ErrNoOptions),
		errors.Is(err, quiz.ErrQuizIncomplete),
		errors.Is(err, marketdata.ErrEmptySymbol):
		return http.StatusBadRequest
	case errors.Is(err, quiz.ErrQuizCompleted):
		return http.StatusConflict
	case errors.Is(err, marketdata.ErrProviderFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
