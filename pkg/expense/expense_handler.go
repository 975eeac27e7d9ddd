package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kharcha/kharcha/internal/money"
	log "github.com/sirupsen/logrus"
)

type ExpenseDTO struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Icon        string  `json:"icon,omitempty"`
	Date        string  `json:"date"`
	Notes       string  `json:"notes,omitempty"`
	Timestamp   string  `json:"timestamp,omitempty"`
	PeriodID    int64   `json:"periodId,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// recordExpenseRequest is the intake side of the expense DTO. The amount is
// kept raw so both JSON numbers and decimal strings ("120,75") are accepted.
type recordExpenseRequest struct {
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Notes       string          `json:"notes"`
}

func (handler *Handler) RecordExpense(w http.ResponseWriter, r *http.Request) {
	log.Debug("Recording new expense")
	w.Header().Set("Content-Type", "application/json")

	var dto recordExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := parseAmount(dto.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	recorded, err := handler.service.Record(r.Context(), NewExpense{
		Description: dto.Description,
		Amount:      amount,
		Category:    Category(dto.Category),
		Date:        dto.Date,
		Notes:       dto.Notes,
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ExpenseToDTO(recorded)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) GetCurrentPeriodExpenses(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	expenses, err := handler.service.CurrentPeriodExpenses(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ExpensesToDTO(expenses)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) GetRecent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit := 5
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	expenses, err := handler.service.Recent(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ExpensesToDTO(expenses)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// parseAmount reads the raw amount field of an intake request. A missing
// amount passes through as zero and is rejected by Service.Record.
func parseAmount(raw json.RawMessage) (money.Money, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	return money.ParseDecimal(strings.Trim(string(raw), `"`))
}

func ExpenseToDTO(e Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount.Rupees(),
		Category:    string(e.Category),
		Icon:        e.Category.Icon(),
		Date:        e.Date.Format(dateLayout),
		Notes:       e.Notes,
		Timestamp:   e.Timestamp.Format(time.RFC3339),
		PeriodID:    e.PeriodID,
	}
}

func ExpensesToDTO(expenses []Expense) []ExpenseDTO {
	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, e := range expenses {
		dtos = append(dtos, ExpenseToDTO(e))
	}
	return dtos
}
