package handler

import (
	"encoding/json"
	"net/http"

	"insurance-portal/internal/middleware"
	"insurance-portal/internal/model"
	"insurance-portal/internal/service"
	"insurance-portal/pkg/apierror"
)

type ClaimHandler struct {
	service *service.ClaimService
}

func NewClaimHandler(service *service.ClaimService) *ClaimHandler {
	return &ClaimHandler{service: service}
}

// Submit files a claim against one of the caller's own policies. The user id
// comes from the resolved identity, never from the request body.
func (h *ClaimHandler) Submit(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var payload model.SubmitClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	claim, err := h.service.Submit(r.Context(), identity.UserID, payload.PolicyNumber, payload.Vehicle, payload.Damage)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, claim, nil)
}

func (h *ClaimHandler) Status(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var payload model.ClaimStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	status, err := h.service.Status(r.Context(), payload.ClaimID, identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, status, nil)
}

func (h *ClaimHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	claims, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, claims, nil)
}
