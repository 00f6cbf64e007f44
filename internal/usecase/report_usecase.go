package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/dairyledger/internal/domain"
)

// ReportUseCase builds the read-only dashboard and statement views.
type ReportUseCase struct {
	customerRepo CustomerRepository
	entryRepo    MilkEntryRepository
	paymentRepo  PaymentRepository
	rateRepo     RateRepository
	conv         domain.DateConverter
	clock        Clock
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(
	customerRepo CustomerRepository,
	entryRepo MilkEntryRepository,
	paymentRepo PaymentRepository,
	rateRepo RateRepository,
	conv domain.DateConverter,
	clock Clock,
) *ReportUseCase {
	return &ReportUseCase{
		customerRepo: customerRepo,
		entryRepo:    entryRepo,
		paymentRepo:  paymentRepo,
		rateRepo:     rateRepo,
		conv:         conv,
		clock:        clock,
	}
}

// CustomerBalance is one row of the dues table.
type CustomerBalance struct {
	CustomerID string
	Name       string
	Ledger     domain.Ledger
}

// Dashboard is the admin overview.
type Dashboard struct {
	Today         domain.Date
	TodayBS       domain.BSDate
	CustomerCount int
	TotalLiters   decimal.Decimal
	Ledger        domain.Ledger
	Chart         domain.DailyChart
	Collections   []domain.CustomerSummary
	Balances      []CustomerBalance
}

// Dashboard aggregates every stored entry and payment as of today.
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := today(uc.clock)

	all, err := uc.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.List(ctx, EntryFilter{})
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.List(ctx, PaymentFilter{})
	if err != nil {
		return nil, err
	}

	totalLiters := decimal.Zero
	for _, e := range entries {
		totalLiters = totalLiters.Add(e.Liters)
	}

	balances := make([]CustomerBalance, 0, len(all))
	for _, c := range all {
		if c.Role != domain.RoleCustomer {
			continue
		}
		balances = append(balances, CustomerBalance{
			CustomerID: c.ID,
			Name:       c.Name,
			Ledger:     domain.CustomerLedger(c.ID, entries, payments),
		})
	}

	return &Dashboard{
		Today:         now,
		TodayBS:       uc.conv.ToBS(now),
		CustomerCount: len(balances),
		TotalLiters:   totalLiters,
		Ledger:        domain.TotalLedger(entries, payments),
		Chart:         domain.DailyShiftTotals(entries, now, domain.ChartDays),
		Collections:   domain.MergeByCustomer(entries),
		Balances:      balances,
	}, nil
}

// CustomerStatement is the customer-facing account view.
type CustomerStatement struct {
	Customer    *domain.Customer
	Today       domain.Date
	TodayBS     domain.BSDate
	Ledger      domain.Ledger
	CurrentRate decimal.Decimal
	HasRate     bool
	Months      []domain.MonthlyLedger
}

// CustomerStatement returns the lifetime ledger plus the trailing months of
// activity, the most recent month flagged as current.
func (uc *ReportUseCase) CustomerStatement(ctx context.Context, customerID string) (*CustomerStatement, error) {
	now := today(uc.clock)

	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.List(ctx, EntryFilter{CustomerID: customerID})
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.List(ctx, PaymentFilter{CustomerID: customerID})
	if err != nil {
		return nil, err
	}

	records, err := uc.rateRepo.List(ctx, customerID)
	if err != nil {
		return nil, err
	}
	rate, hasRate := domain.ResolveRate(customerID, now, records)

	return &CustomerStatement{
		Customer:    withoutHash(customer),
		Today:       now,
		TodayBS:     uc.conv.ToBS(now),
		Ledger:      domain.CustomerLedger(customerID, entries, payments),
		CurrentRate: rate,
		HasRate:     hasRate,
		Months:      domain.GroupByMonth(entries, payments, domain.TrailingMonths(now, domain.ReportMonths)),
	}, nil
}
