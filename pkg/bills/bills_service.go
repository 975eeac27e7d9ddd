package bills

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kharcha/kharcha/internal/money"
	"github.com/kharcha/kharcha/internal/utils"
	log "github.com/sirupsen/logrus"
)

var (
	ErrValidation = fmt.Errorf("invalid recurring bill")
	ErrNotFound   = fmt.Errorf("recurring bill not found")
)

type NewBill struct {
	Name      string
	Amount    money.Money
	Frequency Frequency
	DueDate   string // "2006-01-02"
	Category  string
}

type Service interface {
	List(ctx context.Context) ([]Bill, error)
	Create(ctx context.Context, input NewBill) (Bill, error)
	Update(ctx context.Context, id int64, input NewBill, isActive bool) (Bill, error)
	Delete(ctx context.Context, id int64) error
	// MarkPaid stamps the bill's lastPaid date with today.
	MarkPaid(ctx context.Context, id int64) (Bill, error)
	// MonthlyForecast sums the monthly-equivalent contributions of all active bills.
	MonthlyForecast(ctx context.Context) (money.Money, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Bill, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Create(ctx context.Context, input NewBill) (Bill, error) {
	dueDate, err := validateBill(input)
	if err != nil {
		return Bill{}, err
	}

	bills, err := s.repo.GetAll(ctx)
	if err != nil {
		return Bill{}, err
	}

	now := s.clock.Now()
	id := now.UnixMilli()
	for _, b := range bills {
		if b.ID >= id {
			id = b.ID + 1
		}
	}

	bill := Bill{
		ID:        id,
		Name:      strings.TrimSpace(input.Name),
		Amount:    input.Amount,
		Frequency: input.Frequency,
		DueDate:   dueDate,
		Category:  input.Category,
		IsActive:  true,
		CreatedAt: now,
	}
	if err := s.repo.ReplaceAll(ctx, append(bills, bill)); err != nil {
		return Bill{}, err
	}
	return bill, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id int64, input NewBill, isActive bool) (Bill, error) {
	dueDate, err := validateBill(input)
	if err != nil {
		return Bill{}, err
	}

	bills, err := s.repo.GetAll(ctx)
	if err != nil {
		return Bill{}, err
	}
	idx := findBill(id, bills)
	if idx == -1 {
		log.Warnf("recurring bill not updated, probably because it does not exist (%d)", id)
		return Bill{}, ErrNotFound
	}

	bill := bills[idx]
	bill.Name = strings.TrimSpace(input.Name)
	bill.Amount = input.Amount
	bill.Frequency = input.Frequency
	bill.DueDate = dueDate
	bill.Category = input.Category
	bill.IsActive = isActive
	bills[idx] = bill

	if err := s.repo.ReplaceAll(ctx, bills); err != nil {
		return Bill{}, err
	}
	return bill, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int64) error {
	bills, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	idx := findBill(id, bills)
	if idx == -1 {
		log.Warnf("recurring bill not deleted, probably because it does not exist (%d)", id)
		return ErrNotFound
	}
	return s.repo.ReplaceAll(ctx, append(bills[:idx], bills[idx+1:]...))
}

func (s *ServiceImpl) MarkPaid(ctx context.Context, id int64) (Bill, error) {
	bills, err := s.repo.GetAll(ctx)
	if err != nil {
		return Bill{}, err
	}
	idx := findBill(id, bills)
	if idx == -1 {
		return Bill{}, ErrNotFound
	}

	today := utils.Today(s.clock)
	bills[idx].LastPaid = &today

	if err := s.repo.ReplaceAll(ctx, bills); err != nil {
		return Bill{}, err
	}
	return bills[idx], nil
}

func (s *ServiceImpl) MonthlyForecast(ctx context.Context) (money.Money, error) {
	bills, err := s.repo.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	forecast := money.Money(0)
	for _, b := range bills {
		if !b.IsActive {
			continue
		}
		forecast += b.MonthlyEquivalent()
	}
	return forecast, nil
}

func validateBill(input NewBill) (dueDate time.Time, err error) {
	if strings.TrimSpace(input.Name) == "" {
		return time.Time{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.Amount <= 0 {
		return time.Time{}, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if !input.Frequency.IsValid() {
		return time.Time{}, fmt.Errorf("%w: frequency must be one of weekly, monthly, quarterly, yearly", ErrValidation)
	}
	dueDate, err = utils.ParseDate(input.DueDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: due date must be formatted as 2006-01-02", ErrValidation)
	}
	return dueDate, nil
}

func findBill(id int64, bills []Bill) int {
	for idx, b := range bills {
		if b.ID == id {
			return idx
		}
	}
	return -1
}
