package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/NastyaGoryachaya/token-price-notifier/internal/domain"
	"github.com/NastyaGoryachaya/token-price-notifier/internal/metrics"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

// Этапы цикла, попадают в лог атрибутом stage
const (
	StageRead   = "read"
	StageFormat = "format"
	StageNotify = "notify"
)

// ErrNoNotifiers - ни один канал уведомлений не настроен
var ErrNoNotifiers = errors.New("no notifiers configured")

// StageError - ошибка с этапом цикла, на котором она случилась
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return e.Stage + ": " + e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

// StageOf - этап из цепочки ошибок, пустая строка если его нет
func StageOf(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

type Service interface {
	// FetchAndNotify - один полный цикл: чтение, расчёт, рассылка
	FetchAndNotify(ctx context.Context) error
	// CurrentReport - чтение и расчёт без рассылки
	CurrentReport(ctx context.Context) (domain.PriceReport, error)
}

type QuoteReader interface {
	ReadQuotes(ctx context.Context) (domain.QuoteBundle, error)
}

type ReportBuilder interface {
	BuildReport(b domain.QuoteBundle) (domain.PriceReport, error)
}

type Notifier interface {
	Name() string
	Send(ctx context.Context, n domain.Notification) error
}

// Renderer - отчёт в сообщение для чата
type Renderer func(r domain.PriceReport) domain.Notification

type notifyService struct {
	reader    QuoteReader
	builder   ReportBuilder
	render    Renderer
	notifiers []Notifier
	logger    *slog.Logger
}

// NewService - конструктор цикла уведомлений
func NewService(reader QuoteReader, builder ReportBuilder, render Renderer, notifiers []Notifier, logger *slog.Logger) Service {
	return &notifyService{
		reader:    reader,
		builder:   builder,
		render:    render,
		notifiers: notifiers,
		logger:    logger,
	}
}

func (s *notifyService) CurrentReport(ctx context.Context) (domain.PriceReport, error) {
	bundle, err := s.reader.ReadQuotes(ctx)
	if err != nil {
		return domain.PriceReport{}, &StageError{Stage: StageRead, Err: err}
	}
	report, err := s.builder.BuildReport(bundle)
	if err != nil {
		return domain.PriceReport{}, &StageError{Stage: StageFormat, Err: err}
	}
	return report, nil
}

// FetchAndNotify - при ошибке чтения или расчёта не уходит ни одно сообщение.
// Каналы обходятся все, ошибки собираются в одну.
func (s *notifyService) FetchAndNotify(ctx context.Context) error {
	if len(s.notifiers) == 0 {
		return &StageError{Stage: StageNotify, Err: ErrNoNotifiers}
	}

	report, err := s.CurrentReport(ctx)
	if err != nil {
		return err
	}
	msg := s.render(report)

	var errs []error
	for _, n := range s.notifiers {
		started := time.Now()
		if err := n.Send(ctx, msg); err != nil {
			metrics.Notifications.WithLabelValues(n.Name(), "error").Inc()
			s.logger.Warn("notification failed", slog.String("notifier", n.Name()), slog.Any("err", err))
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
			continue
		}
		metrics.Notifications.WithLabelValues(n.Name(), "ok").Inc()
		s.logger.Info("notification sent",
			slog.String("notifier", n.Name()),
			slog.String("symbol", report.Symbol),
			slog.Duration("took", time.Since(started)),
		)
	}
	if len(errs) > 0 {
		return &StageError{Stage: StageNotify, Err: errors.Join(errs...)}
	}
	return nil
}
