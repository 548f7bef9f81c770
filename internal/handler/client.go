package handler

import (
	"net/http"

	"github.com/dangerclosesec/crmboard/internal/service"
	"github.com/go-chi/chi/v5"
)

type ClientHandler struct {
	clients *service.ClientService
}

func NewClientHandler(clients *service.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

type ClientListResponse struct {
	Clients interface{} `json:"clients"`
	Total   int64       `json:"total"`
}

// List supports ?search, ?limit and ?offset.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	clients, total, err := h.clients.ListClients(r.Context(), orgID, service.ListClientsInput{
		Search: r.URL.Query().Get("search"),
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ClientListResponse{Clients: clients, Total: total})
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	var input service.CreateClientInput
	if !decodeJSON(w, r, &input) {
		return
	}

	client, err := h.clients.CreateClient(r.Context(), orgID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, chi.URLParam(r, "id"), "client id")
	if !ok {
		return
	}

	client, err := h.clients.GetClient(r.Context(), orgID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, chi.URLParam(r, "id"), "client id")
	if !ok {
		return
	}

	var input service.UpdateClientInput
	if !decodeJSON(w, r, &input) {
		return
	}

	client, err := h.clients.UpdateClient(r.Context(), orgID, id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, chi.URLParam(r, "id"), "client id")
	if !ok {
		return
	}

	if err := h.clients.DeleteClient(r.Context(), orgID, id); err != nil {
		writeError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, DeleteResponse{BaseResponse: BaseResponse{Ok: true}, ID: id.String()})
}
