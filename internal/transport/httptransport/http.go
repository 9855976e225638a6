package httptransport

import (
	"context"
	"log"
	"net/http"
	"time"

	"log/slog"

	"github.com/NastyaGoryachaya/token-price-notifier/internal/domain"
	"github.com/NastyaGoryachaya/token-price-notifier/internal/ports/errcode"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const livenessText = "Bot is running!"

// ReportService - расчёт текущей цены без рассылки
type ReportService interface {
	CurrentReport(ctx context.Context) (domain.PriceReport, error)
}

// Price - DTO ответа /price
type Price struct {
	Symbol                    string    `json:"symbol"`
	PriceUSD                  string    `json:"price_usd"`
	PriceIntermediate         string    `json:"price_intermediate"`
	IntermediatePriceInStable string    `json:"intermediate_price_usd"`
	TotalSupply               string    `json:"total_supply"`
	MarketCap                 string    `json:"market_cap"`
	MarketCapFormatted        string    `json:"market_cap_formatted"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

func makePrice(r domain.PriceReport) Price {
	return Price{
		Symbol:                    r.Symbol,
		PriceUSD:                  r.TokenPriceInStable,
		PriceIntermediate:         r.TokenPriceInIntermediate,
		IntermediatePriceInStable: r.IntermediatePriceInStable,
		TotalSupply:               r.TotalSupply,
		MarketCap:                 r.MarketCap.StringFixed(2),
		MarketCapFormatted:        r.MarketCapFormatted,
		UpdatedAt:                 r.UpdatedAt,
	}
}

// PriceHandler - HTTP‑handler живости и текущей цены.
type PriceHandler struct {
	logger  *slog.Logger
	svc     ReportService
	timeout time.Duration
}

func NewPriceHandler(logger *slog.Logger, svc ReportService, timeout time.Duration) *PriceHandler {
	if logger == nil {
		log.Fatal("nil logger")
	}
	if svc == nil {
		log.Fatal("nil service")
	}
	// Задаём таймаут по умолчанию, если он не задан
	if timeout <= 0 {
		timeout = time.Second * 10
	}
	return &PriceHandler{
		logger:  logger,
		svc:     svc,
		timeout: timeout,
	}
}

func (h *PriceHandler) RegisterRoutes(r interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}) {
	r.GET("/", h.Liveness)
	r.GET("/healthz", h.Health)
	r.GET("/price", h.GetPrice)
	r.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// Liveness - процесс жив, сеть не трогаем
func (h *PriceHandler) Liveness(c echo.Context) error {
	return c.String(http.StatusOK, livenessText)
}

func (h *PriceHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// GetPrice - считает отчёт по запросу, в чаты ничего не уходит
func (h *PriceHandler) GetPrice(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	report, err := h.svc.CurrentReport(ctx)
	if err != nil {
		code := FromServiceError(err)
		h.logger.Error("CurrentReport failed",
			slog.String("op", "GetPrice"),
			slog.String("code", string(code)),
			slog.String("error", err.Error()),
		)
		switch code {
		case errcode.Timeout:
			return c.JSON(http.StatusGatewayTimeout, echo.Map{
				"error": "chain_timeout",
			})
		case errcode.ChainRead:
			return c.JSON(http.StatusBadGateway, echo.Map{
				"error": "chain_read_failed",
			})
		case errcode.InvalidQuote:
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "invalid_quote",
			})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "internal_server_error",
			})
		}
	}

	return c.JSON(http.StatusOK, makePrice(report))
}
