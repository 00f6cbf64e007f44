package jsonfile

import (
	"context"

	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/usecase"
)

// MilkEntryRepository implements usecase.MilkEntryRepository over milkEntries.json.
type MilkEntryRepository struct {
	store   *Store
	entries collection[entryRecord]
}

var _ usecase.MilkEntryRepository = (*MilkEntryRepository)(nil)

// NewMilkEntryRepository creates a new MilkEntryRepository.
func NewMilkEntryRepository(store *Store) *MilkEntryRepository {
	return &MilkEntryRepository{
		store:   store,
		entries: collection[entryRecord]{store: store, name: EntriesFile},
	}
}

// Create assigns the next M identifier and appends the entry.
func (r *MilkEntryRepository) Create(ctx context.Context, entry *domain.MilkEntry) error {
	return r.CreateBatch(ctx, []*domain.MilkEntry{entry})
}

// CreateBatch reserves identifiers for all entries and appends them in one
// write. The entries receive their IDs only once the write succeeds.
func (r *MilkEntryRepository) CreateBatch(ctx context.Context, entries []*domain.MilkEntry) error {
	if len(entries) == 0 {
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := r.entries.load(ctx)
	if err != nil {
		return err
	}

	existing := make([]string, len(records))
	for i, rec := range records {
		existing[i] = rec.EntryID
	}

	ids, err := r.store.reserveIDs(ctx, domain.EntryIDPrefix, existing, len(entries))
	if err != nil {
		return err
	}

	for i, e := range entries {
		rec := entryFromDomain(e)
		rec.EntryID = ids[i]
		records = append(records, rec)
	}

	if err := r.entries.save(ctx, records); err != nil {
		return err
	}

	for i, e := range entries {
		e.ID = ids[i]
	}
	return nil
}

// GetByID retrieves an entry by ID.
func (r *MilkEntryRepository) GetByID(ctx context.Context, id string) (*domain.MilkEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records, err := r.entries.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOfEntry(records, id)
	if i < 0 {
		return nil, domain.ErrEntryNotFound
	}
	e := records[i].toDomain(r.store.conv)
	return &e, nil
}

// List returns entries matching the filter, in file order.
func (r *MilkEntryRepository) List(ctx context.Context, filter usecase.EntryFilter) ([]domain.MilkEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records, err := r.entries.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.MilkEntry, 0, len(records))
	for _, rec := range records {
		if filter.CustomerID != "" && rec.UserID != filter.CustomerID {
			continue
		}
		if !filter.From.IsZero() && rec.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && rec.Date.After(filter.To) {
			continue
		}
		out = append(out, rec.toDomain(r.store.conv))
	}
	return out, nil
}

// Update replaces the stored entry with the same ID, keeping its position.
func (r *MilkEntryRepository) Update(ctx context.Context, entry *domain.MilkEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := r.entries.load(ctx)
	if err != nil {
		return err
	}

	i := indexOfEntry(records, entry.ID)
	if i < 0 {
		return domain.ErrEntryNotFound
	}
	records[i] = entryFromDomain(entry)
	return r.entries.save(ctx, records)
}

// Delete removes the entry with the given ID.
func (r *MilkEntryRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := r.entries.load(ctx)
	if err != nil {
		return err
	}

	i := indexOfEntry(records, id)
	if i < 0 {
		return domain.ErrEntryNotFound
	}
	return r.entries.save(ctx, append(records[:i], records[i+1:]...))
}

func indexOfEntry(records []entryRecord, id string) int {
	for i, rec := range records {
		if rec.EntryID == id {
			return i
		}
	}
	return -1
}
