package main

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// healthHandler reports liveness plus a host snapshot for dashboards.
type healthHandler struct {
	started time.Time
}

func newHealthHandler() *healthHandler {
	return &healthHandler{started: time.Now()}
}

func (h *healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		body["memory_used_percent"] = vm.UsedPercent
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		body["cpu_percent"] = percents[0]
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}
