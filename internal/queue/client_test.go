package queue

import (
	"testing"

	"github.com/shoplite/internal/config"
)

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("disabled client should report disabled")
	}
	if err := client.EnqueueCartRemoteClear(CartRemoteClearPayload{UserID: "1"}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestCartRemoteClearTaskPayload(t *testing.T) {
	task, err := NewCartRemoteClearTask(CartRemoteClearPayload{UserID: "42", ReceiptNo: "r-1"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskCartRemoteClear {
		t.Fatalf("unexpected task type %s", task.Type())
	}
	payload, err := ParseCartRemoteClearPayload(task.Payload())
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.UserID != "42" || payload.ReceiptNo != "r-1" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected addr %s", opt.Addr)
	}
	if cfg.Concurrency != 10 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected server config %+v", cfg)
	}

	opt, cfg = BuildServerConfig(&config.QueueConfig{Host: "redis", Port: 6380, DB: 2, Concurrency: 3})
	if opt.Addr != "redis:6380" || opt.DB != 2 || cfg.Concurrency != 3 {
		t.Fatalf("unexpected custom config %+v %+v", opt, cfg)
	}
}
