package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/qeeqez/snowid/clog"
)

// TestNew 测试创建 Meter 实例
func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		opts    []Option
		wantErr bool
	}{
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: true,
		},
		{
			name: "disabled returns noop",
			cfg: &Config{
				Enabled: false,
			},
			wantErr: false,
		},
		{
			name: "enabled minimal config",
			cfg: &Config{
				Enabled:     true,
				ServiceName: "test-service",
				Version:     "v1.0.0",
			},
			wantErr: false,
		},
		{
			name: "with logger option",
			cfg: &Config{
				Enabled:     true,
				ServiceName: "test-service",
				Version:     "v1.0.0",
			},
			opts: func() []Option {
				logger, _ := clog.New(&clog.Config{Level: "debug"})
				return []Option{WithLogger(logger)}
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meter, err := New(tt.cfg, tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if meter == nil {
					t.Error("New() returned nil meter")
					return
				}

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := meter.Shutdown(ctx); err != nil {
					t.Errorf("Shutdown() error = %v", err)
				}
			}
		})
	}
}

// TestMeterInstruments 测试 Meter 创建的各类指标可用
func TestMeterInstruments(t *testing.T) {
	meter, err := New(&Config{
		Enabled:     true,
		ServiceName: "test-service",
		Version:     "v0.0.1",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer meter.Shutdown(context.Background())

	ctx := context.Background()

	counter, err := meter.Counter("tsid_generated_total", "TSID 生成总数")
	if err != nil {
		t.Fatalf("Counter() error = %v", err)
	}
	counter.Inc(ctx, L("node_id", "1"))
	counter.Add(ctx, 5, L("node_id", "1"))

	gauge, err := meter.Gauge("tsid_active_generators", "活跃生成器数量")
	if err != nil {
		t.Fatalf("Gauge() error = %v", err)
	}
	gauge.Set(ctx, 3)
	gauge.Inc(ctx)
	gauge.Dec(ctx)

	histogram, err := meter.Histogram("tsid_generate_duration_seconds", "单次生成耗时", WithUnit("s"))
	if err != nil {
		t.Fatalf("Histogram() error = %v", err)
	}
	histogram.Record(ctx, 0.000001)
}

// TestDiscard 测试 Discard 函数
func TestDiscard(t *testing.T) {
	meter := Discard()
	if meter == nil {
		t.Fatal("Discard() returned nil")
	}

	ctx := context.Background()

	// 所有操作都应该正常但不产生任何效果
	counter, err := meter.Counter("test", "test")
	if err != nil {
		t.Errorf("Counter() error = %v", err)
	}
	counter.Inc(ctx)
	counter.Add(ctx, 10)

	gauge, err := meter.Gauge("test", "test")
	if err != nil {
		t.Errorf("Gauge() error = %v", err)
	}
	gauge.Set(ctx, 1)

	histogram, err := meter.Histogram("test", "test")
	if err != nil {
		t.Errorf("Histogram() error = %v", err)
	}
	histogram.Record(ctx, 0.5)

	if err := meter.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

// TestLabelKey 测试标签键生成
func TestLabelKey(t *testing.T) {
	if key := labelKey(nil); key != "" {
		t.Errorf("labelKey(nil) = %q, want empty", key)
	}

	key := labelKey([]Label{L("a", "1"), L("b", "2")})
	if key != "a=1|b=2" {
		t.Errorf("labelKey = %q, want %q", key, "a=1|b=2")
	}
}
