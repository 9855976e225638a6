package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/NastyaGoryachaya/token-price-notifier/internal/metrics"
	"github.com/NastyaGoryachaya/token-price-notifier/internal/service/notify"
)

const defaultInterval = 5 * time.Minute

var errPanic = errors.New("panic in notify cycle")

type Options struct {
	Interval     time.Duration
	CycleTimeout time.Duration
	RunOnStart   bool
}

type Scheduler struct {
	notifyService notify.Service
	opts          Options
	logger        *slog.Logger
}

// NewScheduler - конструктор планировщика рассылки цены
func NewScheduler(notifyService notify.Service, opts Options, logger *slog.Logger) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	return &Scheduler{
		notifyService: notifyService,
		opts:          opts,
		logger:        logger,
	}
}

// Start - запускает периодическое выполнение цикла до остановки контекста.
// Циклы идут строго друг за другом: следующий тик не начнётся, пока не закончен текущий.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("scheduler started",
		slog.Duration("interval", s.opts.Interval),
		slog.Duration("cycle_timeout", s.opts.CycleTimeout),
	)

	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	// первый запуск сразу
	if s.opts.RunOnStart {
		s.RunOnce(ctx)
	}

	for {
		select {
		case <-ticker.C:
			s.RunOnce(ctx)
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		}
	}
}

// RunOnce - одна итерация и единственная граница ошибок: всё, что случилось в цикле,
// логируется и гасится здесь, включая панику
func (s *Scheduler) RunOnce(ctx context.Context) {
	started := time.Now()
	s.logger.Debug("tick: running notify cycle")

	err := s.safeRun(ctx)
	metrics.CycleDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		stage := notify.StageOf(err)
		switch {
		case errors.Is(err, errPanic):
			stage = "panic"
			metrics.Cycles.WithLabelValues("panic").Inc()
		case stage == "":
			stage = "unknown"
			metrics.Cycles.WithLabelValues("error").Inc()
		default:
			metrics.Cycles.WithLabelValues(stage + "_error").Inc()
		}
		s.logger.Error("tick: notify cycle failed",
			slog.String("stage", stage),
			slog.Any("err", err),
			slog.Duration("duration", time.Since(started)),
		)
		return
	}

	metrics.Cycles.WithLabelValues("ok").Inc()
	metrics.LastSuccess.SetToCurrentTime()
	s.logger.Info("tick: notify cycle completed", slog.Duration("duration", time.Since(started)))
}

func (s *Scheduler) safeRun(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errPanic, r)
		}
	}()

	if s.opts.CycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.CycleTimeout)
		defer cancel()
	}
	return s.notifyService.FetchAndNotify(ctx)
}
