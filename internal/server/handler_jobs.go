package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/me/patrol/pkg/model"
)

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.rec.ListJobs(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, model.ErrStoreUnavailable) {
			status = http.StatusServiceUnavailable
		}
		s.logger.Error("list jobs failed",
			"error", err,
			"request_id", RequestIDFromContext(r.Context()),
		)
		writeJSON(w, status, model.JobsResponse{
			Success: false,
			Message: "Failed to retrieve jobs.",
			Jobs:    []model.JobSummary{},
		})
		return
	}

	writeJSON(w, http.StatusOK, model.JobsResponse{
		Success: true,
		Message: "Jobs successfully retrieved.",
		Jobs:    jobs,
	})
}

func (s *Server) handleStartJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.respondMutation(w, "Job started successfully", s.rec.StartJob(r.Context(), id))
}

func (s *Server) handlePauseJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.respondMutation(w, "Job paused successfully", s.rec.PauseJob(r.Context(), id))
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	raw := r.URL.Query().Get("time_interval")
	if raw == "" {
		respondStatus(w, http.StatusBadRequest, false, "time_interval query parameter is required")
		return
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		respondStatus(w, http.StatusBadRequest, false, "time_interval must be an integer")
		return
	}

	s.respondMutation(w, "Job updated successfully", s.rec.UpdateInterval(r.Context(), id, minutes))
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.respondMutation(w, "Job deleted successfully", s.rec.DeleteJob(r.Context(), id))
}

// respondMutation maps a reconciler result onto the {success, message}
// contract. A partial failure reports success, because the live
// schedule did change; the stale_metadata flag and the message both
// carry the drift.
func (s *Server) respondMutation(w http.ResponseWriter, okMessage string, err error) {
	var pf *model.PartialFailureError

	switch {
	case err == nil:
		respondStatus(w, http.StatusOK, true, okMessage)
	case errors.As(err, &pf):
		writeJSON(w, http.StatusOK, model.StatusResponse{
			Success:       true,
			Message:       okMessage + " (metadata write failed, stored configuration is stale)",
			StaleMetadata: true,
		})
	case errors.Is(err, model.ErrNotFound):
		respondStatus(w, http.StatusNotFound, false, "Job not found")
	case errors.Is(err, model.ErrInvalidInterval):
		respondStatus(w, http.StatusBadRequest, false, "time_interval must be a positive number of minutes")
	default:
		respondStatus(w, http.StatusInternalServerError, false, "internal error")
	}
}
