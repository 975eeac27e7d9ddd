package app

import (
	"github.com/gorilla/mux"
	"github.com/kharcha/kharcha/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Expenses
	r.HandleFunc("/api/expense", deps.ExpenseHandler.RecordExpense).Methods("POST")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.GetCurrentPeriodExpenses).Methods("GET")
	r.HandleFunc("/api/expense/recent", deps.ExpenseHandler.GetRecent).Methods("GET")

	// Tracking periods
	r.HandleFunc("/api/period/current", deps.PeriodHandler.GetCurrent).Methods("GET")
	r.HandleFunc("/api/period/current", deps.PeriodHandler.UpdateCurrent).Methods("PUT")
	r.HandleFunc("/api/period/current", deps.ArchiveHandler.ResetPeriod).Methods("DELETE")
	r.HandleFunc("/api/period", deps.PeriodHandler.ListPeriods).Methods("GET")
	r.HandleFunc("/api/period", deps.ArchiveHandler.CreatePeriod).Methods("POST")

	// Archive
	r.HandleFunc("/api/archive", deps.ArchiveHandler.ListArchive).Methods("GET")

	// Budget settings
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetSettings).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.UpdateSettings).Methods("PUT")

	// Recurring bills
	r.HandleFunc("/api/bill", deps.BillsHandler.ListBills).Methods("GET")
	r.HandleFunc("/api/bill", deps.BillsHandler.CreateBill).Methods("POST")
	r.HandleFunc("/api/bill/forecast", deps.BillsHandler.GetForecast).Methods("GET")
	r.HandleFunc("/api/bill/{billId}", deps.BillsHandler.UpdateBill).Methods("PUT")
	r.HandleFunc("/api/bill/{billId}", deps.BillsHandler.DeleteBill).Methods("DELETE")
	r.HandleFunc("/api/bill/{billId}/paid", deps.BillsHandler.MarkBillPaid).Methods("POST")

	// Stats
	r.HandleFunc("/api/stats/summary", deps.StatsHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/stats/quick", deps.StatsHandler.GetQuickStats).Methods("GET")
	r.HandleFunc("/api/stats/trend", deps.StatsHandler.GetWeeklyTrend).Methods("GET")
	r.HandleFunc("/api/stats/categories", deps.StatsHandler.GetCategoryBreakdown).Methods("GET")
	r.HandleFunc("/api/stats/insights", deps.StatsHandler.GetInsights).Methods("GET")

	// Notifications
	r.HandleFunc("/api/notifications", deps.ReminderHandler.GetSettings).Methods("GET")
	r.HandleFunc("/api/notifications", deps.ReminderHandler.UpdateSettings).Methods("PUT")

	// Backup and restore
	r.HandleFunc("/api/export", deps.TransferHandler.ExportData).Methods("GET")
	r.HandleFunc("/api/export/history", deps.TransferHandler.ExportHistory).Methods("GET")
	r.HandleFunc("/api/import", deps.TransferHandler.ImportData).Methods("POST")
	r.HandleFunc("/api/data", deps.TransferHandler.ClearData).Methods("DELETE")
}
