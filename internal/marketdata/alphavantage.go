package marketdata

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"papertrade/types"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const alphaVantageBaseURL = "https://www.alphavantage.co/query"

var ErrAPILimit = errors.New("alpha vantage rate limit reached")

// AlphaVantageProvider fetches GLOBAL_QUOTE snapshots. The free tier is
// heavily rate limited, which is why the service caches aggressively and
// falls back to the next provider on ErrAPILimit.
type AlphaVantageProvider struct {
	client *resty.Client
	apiKey string
}

func NewAlphaVantageProvider(apiKey string) *AlphaVantageProvider {
	return &AlphaVantageProvider{
		client: resty.New().
			SetBaseURL(alphaVantageBaseURL).
			SetTimeout(10 * time.Second),
		apiKey: apiKey,
	}
}

func (a *AlphaVantageProvider) Name() string { return "alphavantage" }

type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol        string `json:"01. symbol"`
		Price         string `json:"05. price"`
		Volume        string `json:"06. volume"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
	Note         string `json:"Note"`
	ErrorMessage string `json:"Error Message"`
}

func (a *AlphaVantageProvider) GetQuote(ctx context.Context, symbol string) (*types.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	var body globalQuoteResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "GLOBAL_QUOTE",
			"symbol":   symbol,
			"apikey":   a.apiKey,
		}).
		SetResult(&body).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("alpha vantage %s: %w", symbol, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("alpha vantage %s: status %s", symbol, resp.Status())
	}
	if body.Note != "" {
		return nil, fmt.Errorf("alpha vantage %s: %w", symbol, ErrAPILimit)
	}
	if body.ErrorMessage != "" {
		return nil, fmt.Errorf("alpha vantage %s: %s", symbol, body.ErrorMessage)
	}
	if body.GlobalQuote.Symbol == "" {
		return nil, fmt.Errorf("alpha vantage %s: %w", symbol, ErrQuoteNotFound)
	}

	price, err := decimal.NewFromString(body.GlobalQuote.Price)
	if err != nil {
		return nil, fmt.Errorf("alpha vantage %s: parse price %q: %w", symbol, body.GlobalQuote.Price, err)
	}
	change, err := decimal.NewFromString(body.GlobalQuote.Change)
	if err != nil {
		change = decimal.Zero
	}
	changePct, err := decimal.NewFromString(strings.TrimSuffix(body.GlobalQuote.ChangePercent, "%"))
	if err != nil {
		changePct = decimal.Zero
	}
	volume, _ := strconv.ParseInt(body.GlobalQuote.Volume, 10, 64)

	return &types.Quote{
		Symbol: body.GlobalQuote.Symbol,
		// GLOBAL_QUOTE does not carry the company name.
		Name:          body.GlobalQuote.Symbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePct,
		Volume:        volume,
		Timestamp:     time.Now().UTC(),
	}, nil
}
