package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/infrastructure/metrics"
	"github.com/iho/dairyledger/internal/usecase"
)

var paymentFilterAll = usecase.PaymentFilter{}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCustomerRepository_CreateAssignsSequentialIDs(t *testing.T) {
	s := newTestStore(t)
	repo := NewCustomerRepository(s)
	ctx := context.Background()

	admin := &domain.Customer{ID: "admin", Name: "Admin", PasswordHash: "h", Role: domain.RoleAdmin}
	require.NoError(t, repo.Create(ctx, admin))

	first := &domain.Customer{Name: "Ram", PasswordHash: "h", Role: domain.RoleCustomer}
	second := &domain.Customer{Name: "Sita", PasswordHash: "h", Role: domain.RoleCustomer, Mobile: "9800000000"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, "CUST001", first.ID)
	assert.Equal(t, "CUST002", second.ID)

	got, err := repo.GetByID(ctx, "CUST002")
	require.NoError(t, err)
	assert.Equal(t, *second, *got)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	n, err := repo.Count(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCustomerRepository_CreateDuplicateID(t *testing.T) {
	repo := NewCustomerRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Customer{ID: "admin", Role: domain.RoleAdmin}))
	assert.ErrorIs(t, repo.Create(ctx, &domain.Customer{ID: "admin", Role: domain.RoleAdmin}), domain.ErrCustomerExists)
}

func TestCustomerRepository_ReadsExistingFile(t *testing.T) {
	s := newTestStore(t)
	writeRaw(t, s, UsersFile, `[
  {"userId": "admin", "name": "Admin", "password": "x", "role": "admin"},
  {"userId": "CUST007", "name": "Gita", "password": "y", "role": "customer", "address": "Lalitpur"}
]`)
	repo := NewCustomerRepository(s)
	ctx := context.Background()

	got, err := repo.GetByID(ctx, "CUST007")
	require.NoError(t, err)
	assert.Equal(t, "Lalitpur", got.Address)
	assert.Equal(t, domain.RoleCustomer, got.Role)

	next := &domain.Customer{Name: "New", Role: domain.RoleCustomer}
	require.NoError(t, repo.Create(ctx, next))
	assert.Equal(t, "CUST008", next.ID)
}

func TestCustomerRepository_UpdateAndNotFound(t *testing.T) {
	repo := NewCustomerRepository(newTestStore(t))
	ctx := context.Background()

	c := &domain.Customer{Name: "Ram", Role: domain.RoleCustomer}
	require.NoError(t, repo.Create(ctx, c))

	c.Address = "Butwal"
	require.NoError(t, repo.Update(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Butwal", got.Address)

	_, err = repo.GetByID(ctx, "CUST999")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.Customer{ID: "CUST999"}), domain.ErrCustomerNotFound)
}

func TestMilkEntryRepository_CRUD(t *testing.T) {
	s := newTestStore(t)
	repo := NewMilkEntryRepository(s)
	ctx := context.Background()
	conv := domain.DefaultDateConverter

	e1 := domain.NewMilkEntry("CUST001", domain.MustParseDate("2026-01-15"), d("10"), d("80"), domain.ShiftMorning, conv)
	e2 := domain.NewMilkEntry("CUST002", domain.MustParseDate("2026-01-16"), d("4.5"), d("90"), domain.ShiftEvening, conv)
	require.NoError(t, repo.Create(ctx, &e1))
	require.NoError(t, repo.Create(ctx, &e2))
	assert.Equal(t, "M001", e1.ID)
	assert.Equal(t, "M002", e2.ID)

	got, err := repo.GetByID(ctx, "M002")
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(d("405")))
	assert.Equal(t, "2082-10-02", got.DisplayDate.String())
	assert.Equal(t, domain.ShiftEvening, got.Shift)

	list, err := repo.List(ctx, usecase.EntryFilter{CustomerID: "CUST001"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "M001", list[0].ID)

	list, err = repo.List(ctx, usecase.EntryFilter{From: domain.MustParseDate("2026-01-16")})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "M002", list[0].ID)

	list, err = repo.List(ctx, usecase.EntryFilter{To: domain.MustParseDate("2026-01-15")})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "M001", list[0].ID)

	updated := got.Apply(domain.MilkEntryPatch{Rate: ptr(d("100"))}, conv)
	require.NoError(t, repo.Update(ctx, &updated))
	got, err = repo.GetByID(ctx, "M002")
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(d("450")))

	require.NoError(t, repo.Delete(ctx, "M001"))
	assert.ErrorIs(t, repo.Delete(ctx, "M001"), domain.ErrEntryNotFound)
	_, err = repo.GetByID(ctx, "M001")
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.MilkEntry{ID: "M001"}), domain.ErrEntryNotFound)

	// deleting the newest entry must not free its identifier
	require.NoError(t, repo.Delete(ctx, "M002"))
	e3 := domain.NewMilkEntry("CUST001", domain.MustParseDate("2026-01-17"), d("1"), d("80"), domain.ShiftMorning, conv)
	require.NoError(t, repo.Create(ctx, &e3))
	assert.Equal(t, "M003", e3.ID)
}

func TestMilkEntryRepository_CreateBatch(t *testing.T) {
	repo := NewMilkEntryRepository(newTestStore(t))
	ctx := context.Background()
	conv := domain.DefaultDateConverter

	batch := []*domain.MilkEntry{
		ptr(domain.NewMilkEntry("CUST001", domain.MustParseDate("2026-01-16"), d("2"), d("80"), domain.ShiftMorning, conv)),
		ptr(domain.NewMilkEntry("CUST002", domain.MustParseDate("2026-01-16"), d("3"), d("80"), domain.ShiftMorning, conv)),
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))

	assert.Equal(t, "M001", batch[0].ID)
	assert.Equal(t, "M002", batch[1].ID)

	all, err := repo.List(ctx, usecase.EntryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMilkEntryRepository_CreateBatchReservesIDsInOneWrite(t *testing.T) {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	repo := NewMilkEntryRepository(newTestStore(t, WithMetrics(m)))
	conv := domain.DefaultDateConverter

	batch := make([]*domain.MilkEntry, 50)
	for i := range batch {
		batch[i] = ptr(domain.NewMilkEntry("CUST001", domain.MustParseDate("2026-01-16"), d("1"), d("80"), domain.ShiftEvening, conv))
	}
	require.NoError(t, repo.CreateBatch(context.Background(), batch))

	assert.Equal(t, "M001", batch[0].ID)
	assert.Equal(t, "M050", batch[49].ID)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StoreOperations.WithLabelValues("write", SequencesFile)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StoreOperations.WithLabelValues("write", EntriesFile)))
}

func TestMilkEntryRepository_CreateBatchFailureLeavesEntriesUnassigned(t *testing.T) {
	s := newTestStore(t)
	repo := NewMilkEntryRepository(s)
	ctx := context.Background()
	conv := domain.DefaultDateConverter

	// a directory in place of the temp file makes the entries write fail
	tmp := filepath.Join(s.Dir(), EntriesFile+".tmp")
	require.NoError(t, os.Mkdir(tmp, 0o755))

	batch := []*domain.MilkEntry{
		ptr(domain.NewMilkEntry("CUST001", domain.MustParseDate("2026-01-16"), d("2"), d("80"), domain.ShiftMorning, conv)),
		ptr(domain.NewMilkEntry("CUST002", domain.MustParseDate("2026-01-16"), d("3"), d("80"), domain.ShiftMorning, conv)),
	}
	require.Error(t, repo.CreateBatch(ctx, batch))
	assert.Empty(t, batch[0].ID)
	assert.Empty(t, batch[1].ID)

	require.NoError(t, os.Remove(tmp))
	require.NoError(t, repo.CreateBatch(ctx, batch))
	assert.Equal(t, "M003", batch[0].ID, "reserved numbers are skipped, never reused")
	assert.Equal(t, "M004", batch[1].ID)
}

func TestPaymentRepository_CreateFailureLeavesIDUnassigned(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.Mkdir(filepath.Join(s.Dir(), PaymentsFile+".tmp"), 0o755))

	p := &domain.Payment{CustomerID: "CUST001", Date: domain.MustParseDate("2026-01-16"), Amount: d("200")}
	require.Error(t, NewPaymentRepository(s).Create(context.Background(), p))
	assert.Empty(t, p.ID)
}

func TestMilkEntryRepository_ReadsLegacyRecords(t *testing.T) {
	s := newTestStore(t)
	writeRaw(t, s, EntriesFile, `[
  {"entryId": "M004", "userId": "CUST001", "date": "2026-01-16", "liters": 5, "rate": 80, "total": 400}
]`)

	got, err := NewMilkEntryRepository(s).GetByID(context.Background(), "M004")
	require.NoError(t, err)

	assert.Empty(t, got.Shift, "entries without a time have no shift")
	assert.Equal(t, "2082-10-02", got.DisplayDate.String())
	assert.True(t, got.Total.Equal(d("400")))
}

func TestMilkEntryRepository_WritesOriginalFieldNames(t *testing.T) {
	s := newTestStore(t)
	e := domain.NewMilkEntry("CUST001", domain.MustParseDate("2026-01-16"), d("5"), d("80"), domain.ShiftEvening, domain.DefaultDateConverter)
	require.NoError(t, NewMilkEntryRepository(s).Create(context.Background(), &e))

	assert.JSONEq(t, `[{
		"entryId": "M001",
		"userId": "CUST001",
		"date": "2026-01-16",
		"nepaliDate": "2082-10-02",
		"liters": 5,
		"rate": 80,
		"total": 400,
		"time": "evening"
	}]`, readRaw(t, s, EntriesFile))
	assert.JSONEq(t, `{"M": 1}`, readRaw(t, s, SequencesFile))
}

func TestMilkEntryRepository_ConcurrentCreatesGetUniqueIDs(t *testing.T) {
	repo := NewMilkEntryRepository(newTestStore(t))
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := domain.NewMilkEntry("CUST001", domain.MustParseDate("2026-01-16"), d("1"), d("1"), domain.ShiftMorning, domain.DefaultDateConverter)
			if err := repo.Create(ctx, &e); err == nil {
				ids <- e.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)

	all, err := repo.List(ctx, usecase.EntryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, n)
}

func TestPaymentRepository(t *testing.T) {
	s := newTestStore(t)
	repo := NewPaymentRepository(s)
	ctx := context.Background()

	p1 := &domain.Payment{CustomerID: "CUST001", Amount: d("500"), Date: domain.MustParseDate("2026-01-10"), Description: "cash"}
	p2 := &domain.Payment{CustomerID: "CUST002", Amount: d("250.75"), Date: domain.MustParseDate("2026-01-11")}
	require.NoError(t, repo.Create(ctx, p1))
	require.NoError(t, repo.Create(ctx, p2))
	assert.Equal(t, "PAY001", p1.ID)
	assert.Equal(t, "PAY002", p2.ID)

	all, err := repo.List(ctx, paymentFilterAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := repo.List(ctx, usecase.PaymentFilter{CustomerID: "CUST002"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].Amount.Equal(d("250.75")))
}

func TestRateRepository(t *testing.T) {
	s := newTestStore(t)
	repo := NewRateRepository(s)
	ctx := context.Background()

	records := []domain.RateRecord{
		{CustomerID: "CUST001", Rate: d("10"), EffectiveDate: domain.MustParseDate("2025-01-01")},
		{CustomerID: "CUST002", Rate: d("11"), EffectiveDate: domain.MustParseDate("2025-01-01")},
		{CustomerID: "CUST001", Rate: d("12"), EffectiveDate: domain.MustParseDate("2025-06-01")},
	}
	for i := range records {
		require.NoError(t, repo.Create(ctx, &records[i]))
	}

	mine, err := repo.List(ctx, "CUST001")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.True(t, mine[1].Rate.Equal(d("12")), "insertion order is preserved")

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	assert.JSONEq(t, `[
		{"userId": "CUST001", "rate": 10, "effectiveDate": "2025-01-01"},
		{"userId": "CUST002", "rate": 11, "effectiveDate": "2025-01-01"},
		{"userId": "CUST001", "rate": 12, "effectiveDate": "2025-06-01"}
	]`, readRaw(t, s, RatesFile))
}

func ptr[T any](v T) *T { return &v }
