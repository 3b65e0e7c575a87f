package ctxutil

import (
	"context"
	"time"
)

// приватный ключ, чтобы исключить коллизии
type key int

const keyOpName key = iota

// WithOp /Op — имя операции (для логов/трейса)
func WithOp(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, keyOpName, name)
}

func Op(ctx context.Context) (string, bool) {
	v := ctx.Value(keyOpName)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Таймауты: для БД и для внешних HTTP-вызовов.
var (
	DefaultDBTimeout   = 5 * time.Second
	DefaultHTTPTimeout = 30 * time.Second
)

// WithDBTimeout — стандартный таймаут для БД; если у родителя дедлайн ближе,
// берём остаток.
func WithDBTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return withBudget(parent, DefaultDBTimeout)
}

// WithHTTPTimeout — то же для исходящих HTTP-запросов.
func WithHTTPTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return withBudget(parent, DefaultHTTPTimeout)
}

func withBudget(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		if remain := time.Until(dl); remain < d {
			return context.WithTimeout(parent, remain)
		}
	}
	return context.WithTimeout(parent, d)
}
