package handler

import (
	"net/http"

	"insurance-portal/internal/service"
	"insurance-portal/pkg/apierror"
)

type AdminHandler struct {
	documents     *service.DocumentService
	maxUploadSize int64
}

func NewAdminHandler(documents *service.DocumentService, maxUploadSize int64) *AdminHandler {
	return &AdminHandler{documents: documents, maxUploadSize: maxUploadSize}
}

// UploadDocument accepts a single PDF for the assistant's knowledge base.
func (h *AdminHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid multipart body or file too large", "", http.StatusBadRequest))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "no file uploaded", "file", http.StatusBadRequest))
		return
	}
	defer file.Close()

	if header.Header.Get("Content-Type") != "application/pdf" {
		writeError(w, apierror.New("BAD_REQUEST", "only pdf files are allowed", header.Filename, http.StatusBadRequest))
		return
	}

	info, err := h.documents.Store(r.Context(), header.Filename, r.FormValue("description"), file)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, info, nil)
}
