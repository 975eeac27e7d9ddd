package bills

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kharcha/kharcha/internal/money"
	log "github.com/sirupsen/logrus"
)

type BillDTO struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Amount            float64 `json:"amount"`
	Frequency         string  `json:"frequency"`
	DueDate           string  `json:"dueDate"`
	Category          string  `json:"category,omitempty"`
	IsActive          bool    `json:"isActive"`
	LastPaid          string  `json:"lastPaid,omitempty"`
	MonthlyEquivalent float64 `json:"monthlyEquivalent"`
}

type ForecastDTO struct {
	MonthlyTotal float64 `json:"monthlyTotal"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (handler *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	bills, err := handler.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]BillDTO, 0, len(bills))
	for _, b := range bills {
		dtos = append(dtos, BillToDTO(b))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new recurring bill")
	w.Header().Set("Content-Type", "application/json")

	var dto BillDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(r.Context(), DTOToNewBill(dto))
	if err != nil {
		if errors.Is(err, ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(BillToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, err := billID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto BillDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := handler.service.Update(r.Context(), id, DTOToNewBill(dto), dto.IsActive)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Recurring bill not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(BillToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	id, err := billID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Recurring bill not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) MarkBillPaid(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, err := billID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	paid, err := handler.service.MarkPaid(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Recurring bill not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(BillToDTO(paid)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	forecast, err := handler.service.MonthlyForecast(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ForecastDTO{MonthlyTotal: forecast.Rupees()}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func billID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["billId"], 10, 64)
}

func BillToDTO(b Bill) BillDTO {
	lastPaid := ""
	if b.LastPaid != nil {
		lastPaid = b.LastPaid.Format(dateLayout)
	}
	return BillDTO{
		ID:                b.ID,
		Name:              b.Name,
		Amount:            b.Amount.Rupees(),
		Frequency:         string(b.Frequency),
		DueDate:           b.DueDate.Format(dateLayout),
		Category:          b.Category,
		IsActive:          b.IsActive,
		LastPaid:          lastPaid,
		MonthlyEquivalent: b.MonthlyEquivalent().Rupees(),
	}
}

func DTOToNewBill(dto BillDTO) NewBill {
	return NewBill{
		Name:      dto.Name,
		Amount:    money.FromRupees(dto.Amount),
		Frequency: Frequency(dto.Frequency),
		DueDate:   dto.DueDate,
		Category:  dto.Category,
	}
}
