package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventops/backend/internal/domain/ledger"
	"github.com/eventops/backend/internal/domain/shared"
)

// GormEntryRepository implements EntryRepository using GORM
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// FindByID finds a ledger entry by its ID
func (r *GormEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	var entry ledger.Entry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByInvoice finds all entries posted against an invoice
func (r *GormEntryRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("date ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByCounterparty finds all entries settling with one counterparty
func (r *GormEntryRepository) FindByCounterparty(ctx context.Context, counterpartyType ledger.CounterpartyType, counterpartyID uuid.UUID, filter shared.Filter) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&ledger.Entry{}).
			Where("counterparty_type = ? AND counterparty_id = ?", counterpartyType, counterpartyID),
		filter,
	)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindDebitsInWindow finds debit entries for a counterparty inside a
// half-open window: from inclusive, to exclusive.
func (r *GormEntryRepository) FindDebitsInWindow(ctx context.Context, counterpartyType ledger.CounterpartyType, counterpartyID uuid.UUID, from, to time.Time) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	if err := r.db.WithContext(ctx).
		Where("type = ? AND counterparty_type = ? AND counterparty_id = ? AND date >= ? AND date < ?",
			ledger.EntryTypeDebit, counterpartyType, counterpartyID, from, to).
		Order("date ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindAll finds all entries matching the filter
func (r *GormEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	query := r.applyFilter(r.db.WithContext(ctx).Model(&ledger.Entry{}), filter)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save creates a ledger entry. Entries are append-only; updates are a
// programming error caught by the immutability of the domain type, not
// enforced here.
func (r *GormEntryRepository) Save(ctx context.Context, entry *ledger.Entry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete deletes a ledger entry
func (r *GormEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.Entry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts entries matching the filter
func (r *GormEntryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&ledger.Entry{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormEntryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, EntrySortFields, "date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormEntryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("reason ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "counterparty_type":
			query = query.Where("counterparty_type = ?", value)
		case "counterparty_id":
			query = query.Where("counterparty_id = ?", value)
		case "date_from":
			query = query.Where("date >= ?", value)
		case "date_to":
			query = query.Where("date < ?", value)
		}
	}

	return query
}

// Ensure GormEntryRepository implements EntryRepository
var _ ledger.EntryRepository = (*GormEntryRepository)(nil)
