package handler

import (
	"net/http"

	"github.com/dangerclosesec/crmboard/internal/service"
	"github.com/google/uuid"
)

type CardHandler struct {
	cards *service.CardService
}

func NewCardHandler(cards *service.CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

// moveRequest accepts both the board's {id, stageId, position} and the
// dedicated endpoint's {cardId, newStageId, newPosition} spellings.
type moveRequest struct {
	ID          uuid.UUID `json:"id"`
	CardID      uuid.UUID `json:"cardId"`
	StageID     uuid.UUID `json:"stageId"`
	NewStageID  uuid.UUID `json:"newStageId"`
	Position    *int      `json:"position"`
	NewPosition *int      `json:"newPosition"`
}

func (m moveRequest) input() service.MoveCardInput {
	in := service.MoveCardInput{CardID: m.CardID, StageID: m.NewStageID}
	if in.CardID == uuid.Nil {
		in.CardID = m.ID
	}
	if in.StageID == uuid.Nil {
		in.StageID = m.StageID
	}
	switch {
	case m.NewPosition != nil:
		in.Position = *m.NewPosition
	case m.Position != nil:
		in.Position = *m.Position
	}
	return in
}

// List filters cards by ?pipelineId, ?stageId and ?clientId.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	var filter service.CardFilter
	if filter.PipelineID, ok = optionalUUID(w, q.Get("pipelineId"), "pipelineId"); !ok {
		return
	}
	if filter.StageID, ok = optionalUUID(w, q.Get("stageId"), "stageId"); !ok {
		return
	}
	if filter.ClientID, ok = optionalUUID(w, q.Get("clientId"), "clientId"); !ok {
		return
	}

	cards, err := h.cards.ListCards(r.Context(), orgID, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, cards)
}

func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	var input service.CreateCardInput
	if !decodeJSON(w, r, &input) {
		return
	}

	card, err := h.cards.CreateCard(r.Context(), orgID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, card)
}

func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	var input service.UpdateCardInput
	if !decodeJSON(w, r, &input) {
		return
	}

	card, err := h.cards.UpdateCard(r.Context(), orgID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, card)
}

// Move serves both PATCH /cards and PATCH /cards/move and answers with the
// moved card.
func (h *CardHandler) Move(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	var req moveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.cards.MoveCard(r.Context(), orgID, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result.Card)
}

func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r.URL.Query().Get("id"), "card id")
	if !ok {
		return
	}

	if _, err := h.cards.DeleteCard(r.Context(), orgID, id); err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, DeleteResponse{BaseResponse: BaseResponse{Ok: true}, ID: id.String()})
}
