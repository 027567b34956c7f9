package test

import (
	"context"
	"fmt"
	"sync"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
	"github.com/gazetka/loyalty/internal/domain/model"
	"github.com/gazetka/loyalty/internal/domain/repository"
)

// DocStoreFake is an in-memory document store preserving insertion order
// per collection. It honours the DocStore contract: Find degrades to an
// empty result when FindErr is set, and InsertUnique reports duplicate
// identities atomically under the fake's lock.
type DocStoreFake struct {
	mu          sync.Mutex
	collections map[string][]model.Record
	keys        map[string]map[string]bool // collection -> key value -> taken

	InsertErr error
	UpdateErr error
	DeleteErr error
	FindBroken bool
}

// NewDocStoreFake constructs an empty fake store.
func NewDocStoreFake() *DocStoreFake {
	return &DocStoreFake{
		collections: make(map[string][]model.Record),
		keys:        make(map[string]map[string]bool),
	}
}

// Insert appends the record.
func (f *DocStoreFake) Insert(_ context.Context, collection string, rec model.Record) error {
	if f.InsertErr != nil {
		return f.InsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collections[collection] = append(f.collections[collection], cloneRecord(rec))
	return nil
}

// InsertUnique appends the record unless the key value is already taken.
func (f *DocStoreFake) InsertUnique(_ context.Context, collection, keyField string, rec model.Record) error {
	if f.InsertErr != nil {
		return f.InsertErr
	}
	keyValue, ok := rec[keyField]
	if !ok {
		return domainErrors.ErrMalformedRecord
	}
	key := fmt.Sprintf("%v", keyValue)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keys[collection] == nil {
		f.keys[collection] = make(map[string]bool)
	}
	if f.keys[collection][key] {
		return domainErrors.ErrDuplicateIdentity
	}
	f.keys[collection][key] = true
	f.collections[collection] = append(f.collections[collection], cloneRecord(rec))
	return nil
}

// Find returns matching records in insertion order, or nothing when the
// fake simulates a persistence failure.
func (f *DocStoreFake) Find(_ context.Context, collection string, m repository.Match) []model.Record {
	if f.FindBroken {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []model.Record
	for _, rec := range f.collections[collection] {
		if matches(rec, m) {
			result = append(result, cloneRecord(rec))
		}
	}
	return result
}

// Update merges fields into matching records.
func (f *DocStoreFake) Update(_ context.Context, collection string, m repository.Match, fields model.Record) error {
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.collections[collection] {
		if matches(rec, m) {
			for k, v := range fields {
				rec[k] = v
			}
		}
	}
	return nil
}

// Delete removes matching records and frees their identity keys.
func (f *DocStoreFake) Delete(_ context.Context, collection string, m repository.Match) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.collections[collection][:0]
	for _, rec := range f.collections[collection] {
		if matches(rec, m) {
			for key := range f.keys[collection] {
				for _, v := range rec {
					if fmt.Sprintf("%v", v) == key {
						delete(f.keys[collection], key)
					}
				}
			}
			continue
		}
		kept = append(kept, rec)
	}
	f.collections[collection] = kept
	return nil
}

// Atomic runs fn against the fake directly.
func (f *DocStoreFake) Atomic(ctx context.Context, fn func(repository.DocStore) error) error {
	return fn(f)
}

// Count reports the number of records in a collection.
func (f *DocStoreFake) Count(collection string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.collections[collection])
}

func matches(rec model.Record, m repository.Match) bool {
	for k, want := range m {
		got, ok := rec[k]
		if !ok {
			return false
		}
		if fmt.Sprintf("%v", got) != fmt.Sprintf("%v", want) {
			return false
		}
	}
	return true
}

func cloneRecord(rec model.Record) model.Record {
	clone := make(model.Record, len(rec))
	for k, v := range rec {
		clone[k] = v
	}
	return clone
}
