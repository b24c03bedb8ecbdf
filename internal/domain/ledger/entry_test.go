package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventops/backend/internal/domain/shared"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

var entryDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func TestNewCreditEntry(t *testing.T) {
	t.Run("creates a customer credit against an invoice", func(t *testing.T) {
		customerID, invoiceID := uuid.New(), uuid.New()
		e, err := NewCreditEntry(customerID, invoiceID, valueobject.NewMoneyFromPaise(50000), entryDate, "part payment")
		require.NoError(t, err)

		assert.Equal(t, EntryTypeCredit, e.Type)
		assert.Equal(t, CounterpartyCustomer, e.CounterpartyType)
		assert.Equal(t, customerID, e.CounterpartyID)
		require.NotNil(t, e.InvoiceID)
		assert.Equal(t, invoiceID, *e.InvoiceID)
	})

	t.Run("requires customer and invoice", func(t *testing.T) {
		_, err := NewCreditEntry(uuid.Nil, uuid.New(), 100, entryDate, "x")
		assert.Error(t, err)

		_, err = NewCreditEntry(uuid.New(), uuid.Nil, 100, entryDate, "x")
		assert.Error(t, err)
	})
}

func TestNewDebitEntry(t *testing.T) {
	t.Run("creates vendor and employee debits", func(t *testing.T) {
		for _, ct := range []CounterpartyType{CounterpartyVendor, CounterpartyEmployee} {
			e, err := NewDebitEntry(ct, uuid.New(), valueobject.NewMoneyFromPaise(100000), entryDate, "settlement")
			require.NoError(t, err)
			assert.Equal(t, EntryTypeDebit, e.Type)
			assert.Equal(t, ct, e.CounterpartyType)
			assert.Nil(t, e.InvoiceID)
		}
	})

	t.Run("rejects customer debits", func(t *testing.T) {
		_, err := NewDebitEntry(CounterpartyCustomer, uuid.New(), 100, entryDate, "x")
		assert.Error(t, err)
	})
}

func TestEntryValidation(t *testing.T) {
	tests := []struct {
		name   string
		amount valueobject.Money
		date   time.Time
		reason string
	}{
		{"zero amount", 0, entryDate, "x"},
		{"negative amount", -100, entryDate, "x"},
		{"missing date", 100, time.Time{}, "x"},
		{"empty reason", 100, entryDate, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDebitEntry(CounterpartyVendor, uuid.New(), tt.amount, tt.date, tt.reason)
			assert.Error(t, err)
		})
	}

	t.Run("amount errors carry the invalid amount code", func(t *testing.T) {
		_, err := NewDebitEntry(CounterpartyVendor, uuid.New(), 0, entryDate, "x")
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, shared.ErrCodeInvalidAmount, derr.Code)
	})
}

func TestTypeValidity(t *testing.T) {
	assert.True(t, EntryTypeCredit.IsValid())
	assert.True(t, EntryTypeDebit.IsValid())
	assert.False(t, EntryType("TRANSFER").IsValid())

	assert.True(t, CounterpartyVendor.IsValid())
	assert.False(t, CounterpartyType("BANK").IsValid())
}
