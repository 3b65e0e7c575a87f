package ctxutil

import (
	"context"
	"testing"
	"time"
)

func TestOpRoundTrip(t *testing.T) {
	ctx := context.Background()
	if _, ok := Op(ctx); ok {
		t.Fatal("в чистом контексте имени операции быть не должно")
	}

	ctx = WithOp(ctx, "strava_sync")
	op, ok := Op(ctx)
	if !ok || op != "strava_sync" {
		t.Fatalf("имя операции: %q, %v", op, ok)
	}
}

func TestWithDBTimeoutRespectsParentDeadline(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	ctx, cancel2 := WithDBTimeout(parent)
	defer cancel2()

	dl, ok := ctx.Deadline()
	if !ok {
		t.Fatal("дедлайн должен быть установлен")
	}
	if time.Until(dl) > 150*time.Millisecond {
		t.Fatalf("дедлайн родителя ближе и должен был победить: %v", time.Until(dl))
	}
}
