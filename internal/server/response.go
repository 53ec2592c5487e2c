package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/patrol/pkg/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondStatus writes the {success, message} shape shared by all
// mutating endpoints.
func respondStatus(w http.ResponseWriter, status int, success bool, message string) {
	writeJSON(w, status, model.StatusResponse{Success: success, Message: message})
}
