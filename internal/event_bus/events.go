package event_bus

const (
	// TypeBudgetWarning fires when period spending crosses the warning threshold.
	TypeBudgetWarning EventType = "budget.warning"
	// TypeBudgetExceeded fires when period spending reaches or passes the limit.
	// It is level-triggered: every insertion while over the limit re-fires it.
	TypeBudgetExceeded EventType = "budget.exceeded"
	// TypeReminderDue fires when the daily reminder time is reached.
	TypeReminderDue EventType = "reminder.due"
)

type BudgetWarningIssued struct {
	TotalSpent  int64 // paise
	BudgetLimit int64 // paise
	Percentage  float64
}

type BudgetExceededIssued struct {
	TotalSpent  int64 // paise
	BudgetLimit int64 // paise
	Percentage  float64
}

type ReminderDue struct {
	TodaySpent int64 // paise
	Remaining  int64 // paise
}
