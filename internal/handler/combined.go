package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/students-rooms-api/internal/service"
)

// CombinedHandler serves the joined rooms+students view.
type CombinedHandler struct {
	service *service.CombinedService
	logger  *slog.Logger
}

func NewCombinedHandler(svc *service.CombinedService, logger *slog.Logger) *CombinedHandler {
	return &CombinedHandler{service: svc, logger: logger}
}

// HandleList returns every room with its students embedded.
//
// HTTP: GET /api/combined
//
// RESPONSE FORMAT:
//
//	[
//	  {"id": 1, "name": "Room #1", "students": [{"id": 5, "name": "Alice"}]},
//	  {"id": 2, "name": "Room #2", "students": []}
//	]
func (h *CombinedHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	combined, err := h.service.Combined(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, combined)
}
