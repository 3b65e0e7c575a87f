package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Spok95/telegram-challenge-bot/internal/ctxutil"
)

type Job func(ctx context.Context) error

type Runner struct {
	ctx context.Context
	log *zap.SugaredLogger
}

func New(ctx context.Context, log *zap.SugaredLogger) *Runner {
	return &Runner{ctx: ctx, log: log}
}

// Every — запускает задачу сразу и дальше по тикеру. Пока задача работает,
// следующий тик ждёт: одна задача — не больше одного экземпляра в полёте.
func (r *Runner) Every(interval time.Duration, name string, fn Job) {
	go func() {
		r.run(name, fn)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-t.C:
				r.run(name, fn)
			}
		}
	}()
}

func (r *Runner) run(name string, fn Job) {
	// имя операции уходит в контекст — хранилище подмешивает его в ошибки
	ctx := ctxutil.WithOp(r.ctx, name)
	start := time.Now()
	if err := fn(ctx); err != nil {
		jobErrors.WithLabelValues(name).Inc()
		r.log.Errorw("фоновая задача упала", "job", name, "err", err)
	}
	jobRuns.WithLabelValues(name).Inc()
	jobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}
