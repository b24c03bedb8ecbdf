package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventops/backend/internal/domain/ledger"
	"github.com/eventops/backend/internal/domain/shared"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

func TestGormEntryRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEntryRepository(db)
	ctx := context.Background()

	t.Run("saves and finds a credit entry", func(t *testing.T) {
		customerID := uuid.New()
		invoiceID := uuid.New()
		entry, err := ledger.NewCreditEntry(customerID, invoiceID, valueobject.Money(5_000_00),
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "advance payment")
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, entry))

		found, err := repo.FindByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.EntryTypeCredit, found.Type)
		assert.Equal(t, valueobject.Money(5_000_00), found.Amount)
		require.NotNil(t, found.InvoiceID)
		assert.Equal(t, invoiceID, *found.InvoiceID)
	})

	t.Run("returns ErrNotFound for missing entry", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormEntryRepository_FindByInvoice(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEntryRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	invoiceID := uuid.New()
	otherInvoiceID := uuid.New()

	for i, day := range []int{3, 1, 2} {
		entry, err := ledger.NewCreditEntry(customerID, invoiceID, valueobject.Money(1_000_00),
			time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC), "instalment")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, entry), "entry %d", i)
	}
	other, err := ledger.NewCreditEntry(customerID, otherInvoiceID, valueobject.Money(500_00),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "unrelated")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	entries, err := repo.FindByInvoice(ctx, invoiceID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Ordered by date ascending
	assert.Equal(t, 1, entries[0].Date.Day())
	assert.Equal(t, 2, entries[1].Date.Day())
	assert.Equal(t, 3, entries[2].Date.Day())
}

func TestGormEntryRepository_FindDebitsInWindow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEntryRepository(db)
	ctx := context.Background()

	employeeID := uuid.New()
	windowStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, 31)

	save := func(date time.Time, amount int64) {
		entry, err := ledger.NewDebitEntry(ledger.CounterpartyEmployee, employeeID,
			valueobject.Money(amount), date, "salary instalment")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, entry))
	}

	save(windowStart, 5_000_00)                       // inclusive lower bound
	save(windowStart.AddDate(0, 0, 15), 3_000_00)     // inside
	save(windowEnd, 2_000_00)                         // exclusive upper bound, next cycle
	save(windowStart.AddDate(0, 0, -1), 1_000_00)     // before the window

	// A credit in the window must not count
	credit, err := ledger.NewCreditEntry(uuid.New(), uuid.New(), valueobject.Money(9_000_00),
		windowStart.AddDate(0, 0, 5), "unrelated credit")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, credit))

	entries, err := repo.FindDebitsInWindow(ctx, ledger.CounterpartyEmployee, employeeID, windowStart, windowEnd)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var total valueobject.Money
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	assert.Equal(t, valueobject.Money(8_000_00), total)
}

func TestGormEntryRepository_FindByCounterparty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEntryRepository(db)
	ctx := context.Background()

	vendorID := uuid.New()

	entry, err := ledger.NewDebitEntry(ledger.CounterpartyVendor, vendorID,
		valueobject.Money(7_500_00), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "decoration advance")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, entry))

	entries, err := repo.FindByCounterparty(ctx, ledger.CounterpartyVendor, vendorID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "decoration advance", entries[0].Reason)

	entries, err = repo.FindByCounterparty(ctx, ledger.CounterpartyEmployee, vendorID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
