package handler

import (
	"net/http"
	"time"

	"github.com/dangerclosesec/crmboard/internal/service"
)

// ActivityHandler serves the organization's change history
type ActivityHandler struct {
	activity *service.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activity *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

type ActivityResponse struct {
	Logs  interface{} `json:"logs"`
	Total int64       `json:"total"`
}

// List handles requests to retrieve activity with filtering
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	query := service.ActivityQuery{
		ActorID:    q.Get("actorId"),
		Action:     q.Get("action"),
		EntityType: q.Get("entityType"),
		EntityID:   q.Get("entityId"),
		Limit:      queryInt(r, "limit", 0),
		Offset:     queryInt(r, "offset", 0),
	}

	if startTimeStr := q.Get("startTime"); startTimeStr != "" {
		startTime, err := time.Parse(time.RFC3339, startTimeStr)
		if err == nil {
			query.StartTime = startTime
		}
	}

	if endTimeStr := q.Get("endTime"); endTimeStr != "" {
		endTime, err := time.Parse(time.RFC3339, endTimeStr)
		if err == nil {
			query.EndTime = endTime
		}
	}

	logs, total, err := h.activity.Query(r.Context(), orgID, query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ActivityResponse{Logs: logs, Total: total})
}
