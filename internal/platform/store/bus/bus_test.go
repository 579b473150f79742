package bus

import (
	"context"
	"os"
	"testing"
	"time"

	"gracewell/internal/platform/logger"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

func TestStreamConfig(t *testing.T) {
	sc := StreamConfig(Config{Stream: "GRACEWELL", Subjects: []string{"gracewell.>"}})
	if sc.Name != "GRACEWELL" || len(sc.Subjects) != 1 || sc.Storage != jetstream.FileStorage {
		t.Fatalf("stream config = %+v", sc)
	}
}

func TestOpen_RequiresURL(t *testing.T) {
	if _, err := Open(context.Background(), Config{}, logger.New(logger.Options{})); err == nil {
		t.Fatalf("expected error without url")
	}
}

func TestPublish_Core(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("requires NATS_URL")
	}
	n, err := Open(context.Background(), Config{URL: url, Name: "bus-test"}, logger.New(logger.Options{}))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = n.Close() })

	sub, err := n.nc.SubscribeSync("gracewell.test.bus")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := n.Publish(context.Background(), "gracewell.test.bus", []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	var msg *nats.Msg
	if msg, err = sub.NextMsg(2 * time.Second); err != nil {
		t.Fatalf("NextMsg: %v", err)
	}
	if string(msg.Data) != `{"ok":true}` {
		t.Fatalf("data = %s", msg.Data)
	}
}
