package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NastyaGoryachaya/token-price-notifier/internal/metrics"
	"github.com/NastyaGoryachaya/token-price-notifier/internal/service/notify"
	notifymocks "github.com/NastyaGoryachaya/token-price-notifier/internal/service/notify/mocks"
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Ошибка цикла не выходит за пределы RunOnce
func TestRunOnce_SwallowsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := notifymocks.NewMockService(ctrl)
	svc.EXPECT().FetchAndNotify(gomock.Any()).
		Return(&notify.StageError{Stage: notify.StageRead, Err: errors.New("rpc down")}).
		Times(1)

	before := testutil.ToFloat64(metrics.Cycles.WithLabelValues("read_error"))

	s := NewScheduler(svc, Options{Interval: time.Hour}, slog.Default())
	s.RunOnce(context.Background())

	if got := testutil.ToFloat64(metrics.Cycles.WithLabelValues("read_error")) - before; got != 1 {
		t.Fatalf("expected read_error counter +1, got %v", got)
	}
}

// Паника в цикле тоже гасится
func TestRunOnce_RecoversPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := notifymocks.NewMockService(ctrl)
	svc.EXPECT().FetchAndNotify(gomock.Any()).
		DoAndReturn(func(context.Context) error { panic("nil map") }).
		Times(1)
	before := testutil.ToFloat64(metrics.Cycles.WithLabelValues("panic"))

	s := NewScheduler(svc, Options{Interval: time.Hour}, slog.Default())
	s.RunOnce(context.Background())

	if got := testutil.ToFloat64(metrics.Cycles.WithLabelValues("panic")) - before; got != 1 {
		t.Fatalf("expected panic counter +1, got %v", got)
	}
}

// Успешный цикл двигает отметку последнего успеха
func TestRunOnce_SuccessUpdatesLastSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := notifymocks.NewMockService(ctrl)
	svc.EXPECT().FetchAndNotify(gomock.Any()).Return(nil).Times(1)

	s := NewScheduler(svc, Options{Interval: time.Hour}, slog.Default())
	s.RunOnce(context.Background())

	if testutil.ToFloat64(metrics.LastSuccess) <= 0 {
		t.Fatal("last success timestamp must be set")
	}
}

// Цикл получает контекст с дедлайном
func TestRunOnce_AppliesCycleTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := notifymocks.NewMockService(ctrl)
	svc.EXPECT().FetchAndNotify(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("cycle context must have a deadline")
			}
			return nil
		}).
		Times(1)

	s := NewScheduler(svc, Options{Interval: time.Hour, CycleTimeout: time.Second}, slog.Default())
	s.RunOnce(context.Background())
}

// Первый запуск сразу, дальше по тикеру, остановка по контексту
func TestStart_RunsImmediatelyAndOnTicks(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := notifymocks.NewMockService(ctrl)

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	svc.EXPECT().FetchAndNotify(gomock.Any()).
		DoAndReturn(func(context.Context) error {
			if calls.Add(1) == 3 {
				cancel()
			}
			return errors.New("still failing")
		}).
		MinTimes(3)

	s := NewScheduler(svc, Options{Interval: 10 * time.Millisecond, RunOnStart: true}, slog.Default())

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		cancel()
		t.Fatal("scheduler did not stop")
	}
	if calls.Load() < 3 {
		t.Fatalf("expected at least 3 cycles, got %d", calls.Load())
	}
}

func TestStart_NoRunOnStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := notifymocks.NewMockService(ctrl)
	svc.EXPECT().FetchAndNotify(gomock.Any()).Times(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScheduler(svc, Options{Interval: time.Hour}, slog.Default())
	s.Start(ctx)
}
