package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"queue_depth":    s.orchestrator.QueueDepth(),
		"max_queue_size": s.cfg.MaxQueueSize,
		"workers":        s.cfg.WorkerCount,
		"jobs":           s.orchestrator.JobCounts(),
		"themes":         len(s.orchestrator.Themes().Names()),
		"render":         s.orchestrator.Stats(),
	})
}
