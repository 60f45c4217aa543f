package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"insurance-portal/internal/middleware"
	"insurance-portal/internal/model"
	"insurance-portal/internal/service"
	"insurance-portal/pkg/apierror"
)

type ChatHandler struct {
	service *service.ChatService
}

func NewChatHandler(service *service.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Send proxies the message to the assistant. The caller's bearer token rides
// along so the assistant can call portal APIs as the user.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var payload model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	token := bearerToken(r)
	reply, err := h.service.Send(r.Context(), *identity, token, payload.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, reply, nil)
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
