package stats

import (
	"encoding/json"
	"net/http"
)

type SummaryDTO struct {
	PeriodName    string  `json:"periodName"`
	TotalSpent    float64 `json:"totalSpent"`
	BudgetLimit   float64 `json:"budgetLimit"`
	Remaining     float64 `json:"remaining"`
	TodayTotal    float64 `json:"todayTotal"`
	DailyAverage  float64 `json:"dailyAverage"`
	DaysRemaining int     `json:"daysRemaining"`
	DaysElapsed   int     `json:"daysElapsed"`
	SpendingRate  float64 `json:"spendingRate"`
	Trend         string  `json:"trend"`
}

type QuickStatsDTO struct {
	Scope         string  `json:"scope"`
	Total         float64 `json:"total"`
	TopCategory   string  `json:"topCategory"`
	ActiveDays    int     `json:"activeDays"`
	AveragePerDay float64 `json:"averagePerDay"`
}

type TrendBucketDTO struct {
	Start string  `json:"start"`
	End   string  `json:"end"`
	Total float64 `json:"total"`
}

type CategoryShareDTO struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

type InsightDTO struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type InsightsDTO struct {
	Insights          []InsightDTO `json:"insights"`
	OverspendDayCount int          `json:"overspendDayCount"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	summary, err := handler.service.Summary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SummaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) GetQuickStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	scope := ScopeCurrent
	if scopeParam := r.URL.Query().Get("scope"); scopeParam != "" {
		scope = Scope(scopeParam)
	}

	quick, err := handler.service.Quick(r.Context(), scope)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(QuickStatsDTO{
		Scope:         string(quick.Scope),
		Total:         quick.Total.Rupees(),
		TopCategory:   quick.TopCategory,
		ActiveDays:    quick.ActiveDays,
		AveragePerDay: quick.AveragePerDay,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) GetWeeklyTrend(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	buckets, err := handler.service.WeeklyTrend(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TrendBucketDTO, 0, len(buckets))
	for _, bucket := range buckets {
		dtos = append(dtos, TrendBucketDTO{
			Start: bucket.Start.Format("2006-01-02"),
			End:   bucket.End.Format("2006-01-02"),
			Total: bucket.Total.Rupees(),
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) GetCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	shares, err := handler.service.CategoryBreakdown(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]CategoryShareDTO, 0, len(shares))
	for _, share := range shares {
		dtos = append(dtos, CategoryShareDTO{
			Category:   share.Category,
			Total:      share.Total.Rupees(),
			Percentage: share.Percentage,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	insights, err := handler.service.Insights(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	overspendDays, err := handler.service.OverspendDayCount(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]InsightDTO, 0, len(insights))
	for _, insight := range insights {
		dtos = append(dtos, InsightDTO(insight))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(InsightsDTO{
		Insights:          dtos,
		OverspendDayCount: overspendDays,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func SummaryToDTO(summary Summary) SummaryDTO {
	return SummaryDTO{
		PeriodName:    summary.PeriodName,
		TotalSpent:    summary.TotalSpent.Rupees(),
		BudgetLimit:   summary.BudgetLimit.Rupees(),
		Remaining:     summary.Remaining.Rupees(),
		TodayTotal:    summary.TodayTotal.Rupees(),
		DailyAverage:  summary.DailyAverage,
		DaysRemaining: summary.DaysRemaining,
		DaysElapsed:   summary.DaysElapsed,
		SpendingRate:  summary.SpendingRate,
		Trend:         summary.Trend,
	}
}
