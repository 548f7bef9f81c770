package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/dangerclosesec/crmboard/internal/service"
	"github.com/go-chi/chi/v5"
)

type CalendarHandler struct {
	calendar *service.CalendarService
}

func NewCalendarHandler(calendar *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// List returns events overlapping ?start and ?end (RFC3339). Without a range
// it covers the current month.
func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	if raw := r.URL.Query().Get("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid start")
			return
		}
		from = t
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid end")
			return
		}
		to = t
	}

	events, err := h.calendar.ListEvents(r.Context(), orgID, from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, events)
}

// Create accepts a single event object or an array of them. The response
// mirrors the shape of the request.
func (h *CalendarHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	body = bytes.TrimSpace(body)

	var inputs []service.CreateEventInput
	single := len(body) > 0 && body[0] == '{'
	if single {
		var input service.CreateEventInput
		err = json.Unmarshal(body, &input)
		inputs = append(inputs, input)
	} else {
		err = json.Unmarshal(body, &inputs)
	}
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	events, err := h.calendar.CreateEvents(r.Context(), orgID, inputs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if single {
		respondWithJSON(w, http.StatusCreated, events[0])
		return
	}
	respondWithJSON(w, http.StatusCreated, events)
}

func (h *CalendarHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, chi.URLParam(r, "id"), "event id")
	if !ok {
		return
	}

	var input service.UpdateEventInput
	if !decodeJSON(w, r, &input) {
		return
	}

	event, err := h.calendar.UpdateEvent(r.Context(), orgID, id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, event)
}

func (h *CalendarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, chi.URLParam(r, "id"), "event id")
	if !ok {
		return
	}

	if err := h.calendar.DeleteEvent(r.Context(), orgID, id); err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, DeleteResponse{BaseResponse: BaseResponse{Ok: true}, ID: id.String()})
}
