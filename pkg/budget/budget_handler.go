package budget

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kharcha/kharcha/internal/money"
	log "github.com/sirupsen/logrus"
)

type SettingsDTO struct {
	MonthlyLimit     float64            `json:"monthlyLimit"`
	WarningThreshold int                `json:"warningThreshold"`
	CategoryBudgets  map[string]float64 `json:"categoryBudgets,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (handler *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	settings, err := handler.service.Get(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SettingsToDTO(settings)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating budget settings")
	w.Header().Set("Content-Type", "application/json")

	var dto SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := handler.service.Update(r.Context(), DTOToSettings(dto))
	if err != nil {
		if errors.Is(err, ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SettingsToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func SettingsToDTO(settings Settings) SettingsDTO {
	categoryBudgets := make(map[string]float64, len(settings.CategoryBudgets))
	for category, limit := range settings.CategoryBudgets {
		categoryBudgets[category] = limit.Rupees()
	}
	return SettingsDTO{
		MonthlyLimit:     settings.MonthlyLimit.Rupees(),
		WarningThreshold: settings.WarningThreshold,
		CategoryBudgets:  categoryBudgets,
	}
}

func DTOToSettings(dto SettingsDTO) Settings {
	categoryBudgets := make(map[string]money.Money, len(dto.CategoryBudgets))
	for category, limit := range dto.CategoryBudgets {
		categoryBudgets[category] = money.FromRupees(limit)
	}
	return Settings{
		MonthlyLimit:     money.FromRupees(dto.MonthlyLimit),
		WarningThreshold: dto.WarningThreshold,
		CategoryBudgets:  categoryBudgets,
	}
}
