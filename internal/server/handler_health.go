package server

import (
	"net/http"
	"runtime"
	"time"
)

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
	Store     string `json:"store"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "healthy",
		Version:   "0.1.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Store:     "ok",
	}
	status := http.StatusOK

	if err := s.store.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Store = "unreachable: " + err.Error()
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}
