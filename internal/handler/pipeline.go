package handler

import (
	"net/http"

	"github.com/dangerclosesec/crmboard/internal/service"
	"github.com/go-chi/chi/v5"
)

type PipelineHandler struct {
	pipelines *service.PipelineService
	cards     *service.CardService
}

func NewPipelineHandler(pipelines *service.PipelineService, cards *service.CardService) *PipelineHandler {
	return &PipelineHandler{
		pipelines: pipelines,
		cards:     cards,
	}
}

type DeleteResponse struct {
	BaseResponse
	ID string `json:"id"`
}

// List returns the organization's pipelines, each with its stages in order.
func (h *PipelineHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	pipelines, err := h.pipelines.ListPipelines(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pipelines)
}

func (h *PipelineHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	var input service.CreatePipelineInput
	if !decodeJSON(w, r, &input) {
		return
	}

	pipeline, err := h.pipelines.CreatePipeline(r.Context(), orgID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, pipeline)
}

func (h *PipelineHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	var input service.UpdatePipelineInput
	if !decodeJSON(w, r, &input) {
		return
	}

	pipeline, err := h.pipelines.UpdatePipeline(r.Context(), orgID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pipeline)
}

func (h *PipelineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r.URL.Query().Get("id"), "pipeline id")
	if !ok {
		return
	}

	if err := h.pipelines.DeletePipeline(r.Context(), orgID, id); err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, DeleteResponse{BaseResponse: BaseResponse{Ok: true}, ID: id.String()})
}

// Board returns a pipeline with its stages and their cards.
func (h *PipelineHandler) Board(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, chi.URLParam(r, "pipelineId"), "pipeline id")
	if !ok {
		return
	}

	board, err := h.pipelines.GetBoard(r.Context(), orgID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, board)
}

// Move moves a card inside the pipeline named in the path and reports the
// client linked when the move closed the deal.
func (h *PipelineHandler) Move(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}
	pipelineID, ok := uuidParam(w, chi.URLParam(r, "pipelineId"), "pipeline id")
	if !ok {
		return
	}

	var req moveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	input := req.input()
	input.PipelineID = pipelineID

	result, err := h.cards.MoveCard(r.Context(), orgID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// Batch deletes and updates a mixed list of stages and cards.
func (h *PipelineHandler) Batch(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	var input service.BatchInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.pipelines.ApplyBatch(r.Context(), orgID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}
