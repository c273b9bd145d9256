package yahoo

import (
	"context"
	"net/http"
	"time"

	"stocklab/internal/domain"
)

// Client is the market data surface the rest of the toolkit consumes.
// Quote and DailyHistory ride the finance-go bindings; Statements and
// Profile hit the raw endpoints directly.
type Client interface {
	Quote(ctx context.Context, symbol string) (*domain.Quote, error)
	DailyHistory(ctx context.Context, symbol string, start, end time.Time) (domain.History, error)
	Statements(ctx context.Context, symbol string, period domain.StatementPeriod) (*domain.Statements, error)
	Profile(ctx context.Context, symbol string) (*domain.Profile, error)
}

type clientHandler struct {
	HttpClient *http.Client
	BaseUrl    string
}

const defaultBaseUrl = "https://query1.finance.yahoo.com"

// stock browser UA - the quote endpoints reject Go's default agent
const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0"

func NewClient() Client {
	return &clientHandler{
		HttpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		BaseUrl: defaultBaseUrl,
	}
}

// NewClientWithBaseUrl exists for tests that stand up a local server.
func NewClientWithBaseUrl(httpClient *http.Client, baseUrl string) Client {
	return &clientHandler{
		HttpClient: httpClient,
		BaseUrl:    baseUrl,
	}
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
