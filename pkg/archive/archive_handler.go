package archive

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/kharcha/kharcha/internal/money"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/kharcha/kharcha/pkg/period"
	log "github.com/sirupsen/logrus"
)

type EntryDTO struct {
	Period     period.PeriodDTO     `json:"period"`
	Expenses   []expense.ExpenseDTO `json:"expenses"`
	ArchivedAt string               `json:"archivedAt"`
	TotalSpent float64              `json:"totalSpent"`
}

type NewPeriodDTO struct {
	Duration    int     `json:"duration"`
	Unit        string  `json:"unit"`
	StartDate   string  `json:"startDate"`
	BudgetLimit float64 `json:"budgetLimit"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (handler *Handler) ListArchive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	entries, err := handler.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, EntryToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	log.Debug("Starting new tracking period")
	w.Header().Set("Content-Type", "application/json")

	var dto NewPeriodDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.StartNewPeriod(r.Context(), period.NewPeriod{
		Duration:    dto.Duration,
		Unit:        period.Unit(dto.Unit),
		StartDate:   dto.StartDate,
		BudgetLimit: money.FromRupees(dto.BudgetLimit),
	})
	if err != nil {
		if errors.Is(err, period.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(period.PeriodToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) ResetPeriod(w http.ResponseWriter, r *http.Request) {
	archiveFirst := r.URL.Query().Get("archive") == "true"

	if err := handler.service.ResetCurrent(r.Context(), archiveFirst); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func EntryToDTO(e Entry) EntryDTO {
	return EntryDTO{
		Period:     period.PeriodToDTO(e.Period),
		Expenses:   expense.ExpensesToDTO(e.Expenses),
		ArchivedAt: e.ArchivedAt.Format(time.RFC3339),
		TotalSpent: e.TotalSpent.Rupees(),
	}
}
