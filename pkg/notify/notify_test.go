package notify

import (
	"context"
	"testing"

	"github.com/yukselticaret/trendyshop-backend/pkg/logger"
)

func TestSinkWritesToRequestBuffer(t *testing.T) {
	t.Parallel()

	ctx, buf := WithBuffer(context.Background())
	sink := NewSink(logger.Nop())

	sink.Success(ctx, "Ürün sepete eklendi")
	sink.Error(ctx, "Fiyat bilgisi alınamadı")
	sink.Info(ctx, "")

	got := buf.Notices()
	if len(got) != 2 {
		t.Fatalf("expected 2 notices, got %+v", got)
	}
	if got[0].Level != LevelSuccess || got[1].Level != LevelError {
		t.Fatalf("unexpected levels: %+v", got)
	}
	if FromContext(ctx) != buf {
		t.Fatal("expected buffer from context")
	}
}

func TestSinkWithoutBuffer(t *testing.T) {
	t.Parallel()

	var sink *Sink
	sink.Info(context.Background(), "no buffer")
	NewSink(nil).Success(context.Background(), "still fine")

	if FromContext(context.Background()).Notices() != nil {
		t.Fatal("expected no notices without a buffer")
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	var n Notifier = Discard{}
	n.Success(context.Background(), "ignored")
}
