package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/kharcha/kharcha/internal/utils"
)

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

func (handler *Handler) ExportData(w http.ResponseWriter, r *http.Request) {
	doc, err := handler.service.Export(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=kharcha-backup-%s.json", handler.clock.Now().Format("2006-01-02")))
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) ExportHistory(w http.ResponseWriter, r *http.Request) {
	doc, err := handler.service.ExportHistory(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=kharcha-history-%s.json", handler.clock.Now().Format("2006-01-02")))
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) ImportData(w http.ResponseWriter, r *http.Request) {
	log.Debug("Importing backup document")
	w.Header().Set("Content-Type", "application/json")

	var doc Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, fmt.Sprintf("%v: %v", ErrMalformedImport, err), http.StatusBadRequest)
		return
	}

	if err := handler.service.Import(r.Context(), doc); err != nil {
		if errors.Is(err, ErrMalformedImport) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) ClearData(w http.ResponseWriter, r *http.Request) {
	if err := handler.service.ClearAll(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
