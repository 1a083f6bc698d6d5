// internal/handlers/health.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/warehouse-be/internal/core/ports"
	"github.com/ammerola/warehouse-be/internal/pkg/config"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
)

// poolReporter is implemented by stores that expose connection pool stats
type poolReporter interface {
	Health(ctx context.Context) map[string]any
}

// probe checks one dependency. details may be nil.
type probe struct {
	name  string
	ready bool // also gates /ready
	check func(ctx context.Context) (details map[string]any, err error)
}

// HealthHandler serves /health and /ready
type HealthHandler struct {
	responder
	probes  []probe
	version string
	env     string
	started time.Time
}

// NewHealthHandler creates a health handler. storage, redisClient and
// inspector are optional.
func NewHealthHandler(
	store ports.HealthPinger,
	storage ports.HealthPinger,
	redisClient *redis.Client,
	inspector *asynq.Inspector,
	cfg *config.Config,
	logger *slog.Logger,
) *HealthHandler {
	h := &HealthHandler{
		responder: responder{logger: logger.With(slog.String("handler", "health"))},
		version:   cfg.App.Version,
		env:       cfg.App.Environment,
		started:   time.Now(),
	}

	h.probes = append(h.probes, probe{name: "database", ready: true, check: storeProbe(store, cfg.Documents.Driver)})
	if redisClient != nil {
		h.probes = append(h.probes, probe{name: "redis", ready: true, check: redisProbe(redisClient)})
	}
	if storage != nil {
		h.probes = append(h.probes, probe{name: "storage", check: func(ctx context.Context) (map[string]any, error) {
			return nil, storage.Ping(ctx)
		}})
	}
	if inspector != nil {
		h.probes = append(h.probes, probe{name: "asynq", check: queueProbe(inspector)})
	}
	return h
}

// HealthStatus is the /health response body
type HealthStatus struct {
	Status      string                 `json:"status"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment"`
	Uptime      string                 `json:"uptime"`
	Timestamp   time.Time              `json:"timestamp"`
	Services    map[string]ServiceInfo `json:"services"`
	Runtime     RuntimeInfo            `json:"runtime"`
}

// ServiceInfo is the result of one dependency probe
type ServiceInfo struct {
	Status       string         `json:"status"`
	Message      string         `json:"message,omitempty"`
	ResponseTime string         `json:"response_time,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
}

// RuntimeInfo reports process level stats
type RuntimeInfo struct {
	GoVersion     string `json:"go_version"`
	Goroutines    int    `json:"goroutines"`
	HeapAllocMB   uint64 `json:"heap_alloc_mb"`
	SysMB         uint64 `json:"sys_mb"`
	NumGC         uint32 `json:"num_gc"`
	LastGCPauseUs uint64 `json:"last_gc_pause_us"`
}

// Health handles GET /health. Any failing probe yields 503 "degraded".
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	results := h.run(ctx, h.probes)

	body := HealthStatus{
		Status:      statusHealthy,
		Version:     h.version,
		Environment: h.env,
		Uptime:      time.Since(h.started).Round(time.Second).String(),
		Timestamp:   time.Now().UTC(),
		Services:    results,
		Runtime:     readRuntime(),
	}
	code := http.StatusOK
	for _, res := range results {
		if res.Status != statusHealthy {
			body.Status = statusDegraded
			code = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Cache-Control", "no-store")
	h.respondJSON(w, code, body)
}

// Readiness handles GET /ready using only the store and redis probes
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	var gating []probe
	for _, p := range h.probes {
		if p.ready {
			gating = append(gating, p)
		}
	}

	ready := true
	details := make(map[string]string, len(gating))
	for name, res := range h.run(ctx, gating) {
		details[name] = "ready"
		if res.Status != statusHealthy {
			details[name] = "not ready"
			ready = false
		}
	}

	code := http.StatusOK
	if !ready {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-store")
	h.respondJSON(w, code, map[string]any{"ready": ready, "details": details})
}

// run executes probes concurrently
func (h *HealthHandler) run(ctx context.Context, probes []probe) map[string]ServiceInfo {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]ServiceInfo, len(probes))
	)
	for _, p := range probes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			details, err := p.check(ctx)

			info := ServiceInfo{Status: statusHealthy, Details: details}
			if err != nil {
				info = ServiceInfo{Status: statusUnhealthy, Message: err.Error()}
				h.logger.ErrorContext(ctx, "health probe failed",
					slog.String("service", p.name),
					slog.String("error", err.Error()))
			} else {
				info.ResponseTime = time.Since(start).String()
			}

			mu.Lock()
			results[p.name] = info
			mu.Unlock()
		}()
	}
	wg.Wait()
	return results
}

func storeProbe(store ports.HealthPinger, driver string) func(context.Context) (map[string]any, error) {
	return func(ctx context.Context) (map[string]any, error) {
		if err := store.Ping(ctx); err != nil {
			return nil, err
		}
		details := map[string]any{"driver": driver}
		if pr, ok := store.(poolReporter); ok {
			for k, v := range pr.Health(ctx) {
				details[k] = v
			}
		}
		return details, nil
	}
}

func redisProbe(client *redis.Client) func(context.Context) (map[string]any, error) {
	return func(ctx context.Context) (map[string]any, error) {
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		stats := client.PoolStats()
		return map[string]any{
			"total_conns": stats.TotalConns,
			"idle_conns":  stats.IdleConns,
			"timeouts":    stats.Timeouts,
		}, nil
	}
}

func queueProbe(inspector *asynq.Inspector) func(context.Context) (map[string]any, error) {
	return func(context.Context) (map[string]any, error) {
		names, err := inspector.Queues()
		if err != nil {
			return nil, err
		}
		queues := make(map[string]any, len(names))
		for _, name := range names {
			q, err := inspector.GetQueueInfo(name)
			if err != nil {
				continue
			}
			queues[name] = map[string]int{
				"pending":  q.Pending,
				"active":   q.Active,
				"retry":    q.Retry,
				"archived": q.Archived,
			}
		}
		details := map[string]any{"queues": queues}
		if servers, err := inspector.Servers(); err == nil {
			details["servers"] = len(servers)
		}
		return details, nil
	}
}

func readRuntime() RuntimeInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeInfo{
		GoVersion:     runtime.Version(),
		Goroutines:    runtime.NumGoroutine(),
		HeapAllocMB:   m.HeapAlloc >> 20,
		SysMB:         m.Sys >> 20,
		NumGC:         m.NumGC,
		LastGCPauseUs: m.PauseNs[(m.NumGC+255)%256] / 1000,
	}
}
