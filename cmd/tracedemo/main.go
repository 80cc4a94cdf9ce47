// Command tracedemo drives a simulated inference-request stream through a
// TraceManager against an in-process fake host, to exercise the sampler,
// the TRITON-mode JSON writer, and a hot configuration update end to end
// without a real model-serving runtime to attach to.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelserving/tracing/activity"
	"github.com/modelserving/tracing/config"
	"github.com/modelserving/tracing/internal/hostsim"
	"github.com/modelserving/tracing/manager"
	"github.com/modelserving/tracing/metric"
	"github.com/modelserving/tracing/tracer"
	"github.com/modelserving/tracing/tracesetting"
)

type stdLogger struct{}

func (stdLogger) Info(args ...interface{})  { log.Println(append([]interface{}{"INFO:"}, args...)...) }
func (stdLogger) Error(args ...interface{}) { log.Println(append([]interface{}{"ERROR:"}, args...)...) }

var activityTimeline = []activity.Kind{
	activity.RequestStart,
	activity.QueueStart,
	activity.ComputeStart,
	activity.ComputeInputEnd,
	activity.ComputeOutputStart,
	activity.ComputeEnd,
	activity.RequestEnd,
}

func main() {
	filepath := flag.String("out", "tracedemo.json", "TRITON-mode trace output path")
	requests := flag.Int("requests", 200, "number of simulated requests to fire")
	rate := flag.Uint64("rate", 4, "sampling rate (1-in-N)")
	addr := flag.String("addr", "", "if set, serve a /status endpoint on this address")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	metricsEnabled := true
	metricsProvider, err := metric.NewProvider(
		metric.WithContext(ctx),
		metric.WithLogger(stdLogger{}),
		metric.WithConfig(&config.MetricsConfig{Enabled: &metricsEnabled}),
	)
	if err != nil {
		log.Fatalf("tracedemo: failed to init metrics provider: %v", err)
	}
	recorder, err := metricsProvider.Recorder()
	if err != nil {
		log.Fatalf("tracedemo: failed to init self-observability recorder: %v", err)
	}

	host := hostsim.New()
	m := manager.NewTraceManager(host, tracesetting.Config{
		Level:    activity.LevelTimestamps,
		Rate:     *rate,
		Count:    -1,
		Filepath: *filepath,
		Mode:     activity.ModeTriton,
	}, manager.WithLogger(stdLogger{}), manager.WithRecorder(recorder))

	log.Printf("tracedemo: sampling 1-in-%d requests to %s", *rate, *filepath)

	var srv *http.Server
	if *addr != "" {
		srv = &http.Server{Addr: *addr, Handler: tracer.NewHTTPHandler("tracedemo.status", statusHandler(m))}
		go func() {
			log.Printf("tracedemo: serving /status on %s", *addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("tracedemo: status server: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	var monotonicNs uint64
	for i := 0; i < *requests; i++ {
		select {
		case <-ctx.Done():
			log.Println("tracedemo: interrupted, shutting down")
			return
		default:
		}

		model := "resnet50"
		if i%3 == 0 {
			model = "bert-base"
		}

		if i == *requests/2 {
			log.Println("tracedemo: halving resnet50's sampling rate")
			if err := m.UpdateTraceSetting("resnet50", tracesetting.Update{
				Rate: tracesetting.Set(*rate / 2),
			}); err != nil {
				log.Printf("tracedemo: update rejected: %v", err)
			}
		}

		fireRequest(ctx, m, model, &monotonicNs)
	}

	if err := metricsProvider.Shutdown(context.Background()); err != nil {
		log.Printf("tracedemo: metrics provider shutdown: %v", err)
	}

	log.Println("tracedemo: done")
}

// statusHandler reports the effective trace setting for a model named by
// the "model" query parameter (global setting if omitted), demonstrating
// that an OTEL-instrumented control-plane endpoint can sit alongside the
// inference request path without any special-casing in TraceManager.
func statusHandler(m *manager.TraceManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.GetTraceSetting(r.URL.Query().Get("model"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":    s.ModelName(),
			"mode":     s.Mode(),
			"level":    s.Level(),
			"rate":     s.Rate(),
			"count":    s.Count(),
			"filepath": s.Filepath(),
		})
	})
}

func fireRequest(ctx context.Context, m *manager.TraceManager, modelName string, monotonicNs *uint64) {
	tr := m.SampleTrace(ctx, modelName, 1, *monotonicNs)

	for _, kind := range activityTimeline {
		*monotonicNs += uint64(time.Duration(1+rand.Intn(5)) * time.Millisecond)
		if tr == nil {
			continue
		}
		m.TraceActivity(ctx, tr.TraceID(), kind, *monotonicNs, tr)
	}

	if tr != nil {
		m.TraceRelease(ctx, tr.TraceID(), tr)
	}
}
