package handler

import (
	"net/http"
	"strconv"

	"github.com/dangerclosesec/crmboard/internal/service"
)

type StageHandler struct {
	pipelines *service.PipelineService
}

func NewStageHandler(pipelines *service.PipelineService) *StageHandler {
	return &StageHandler{pipelines: pipelines}
}

func (h *StageHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}
	pipelineID, ok := uuidParam(w, r.URL.Query().Get("pipelineId"), "pipelineId")
	if !ok {
		return
	}

	stages, err := h.pipelines.ListStages(r.Context(), orgID, pipelineID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stages)
}

func (h *StageHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	var input service.CreateStageInput
	if !decodeJSON(w, r, &input) {
		return
	}

	stage, err := h.pipelines.CreateStage(r.Context(), orgID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, stage)
}

// CreateBatch appends several stages atomically.
func (h *StageHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	var input service.CreateStagesInput
	if !decodeJSON(w, r, &input) {
		return
	}

	stages, err := h.pipelines.CreateStages(r.Context(), orgID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, stages)
}

func (h *StageHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	var input service.UpdateStageInput
	if !decodeJSON(w, r, &input) {
		return
	}

	stage, err := h.pipelines.UpdateStage(r.Context(), orgID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stage)
}

func (h *StageHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	var input service.ReorderStageInput
	if !decodeJSON(w, r, &input) {
		return
	}

	stages, err := h.pipelines.ReorderStage(r.Context(), orgID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stages)
}

type DeleteStageResponse struct {
	BaseResponse
	*service.DeleteStageResult
}

// Delete removes a stage and its cards. ?withCards=true deletes the cards
// explicitly and reports how many were removed.
func (h *StageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r.URL.Query().Get("id"), "stage id")
	if !ok {
		return
	}
	withCards, _ := strconv.ParseBool(r.URL.Query().Get("withCards"))

	result, err := h.pipelines.DeleteStage(r.Context(), orgID, id, withCards)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, DeleteStageResponse{BaseResponse: BaseResponse{Ok: true}, DeleteStageResult: result})
}
