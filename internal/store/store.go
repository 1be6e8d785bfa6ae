// Package store persists tracked game records keyed by game identifier.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
)

var (
	// ErrNotFound is returned when no record exists for an identifier.
	ErrNotFound = errors.New("tracked game not found")
	// ErrInvalidID is returned for identifiers that cannot name a record.
	ErrInvalidID = errors.New("invalid tracked game id")
	// ErrCorruptRecord marks a stored record that could not be decoded.
	ErrCorruptRecord = errors.New("corrupt tracked game record")
)

// CorruptRecordsError is returned by GetAll alongside the records that did decode. Callers
// may carry on with the partial result.
type CorruptRecordsError struct {
	IDs  []string
	Errs []error
}

func (e *CorruptRecordsError) Error() string {
	return fmt.Sprintf("%d corrupt record(s) %s: %v", len(e.IDs), strings.Join(e.IDs, ","), errors.Join(e.Errs...))
}

func (e *CorruptRecordsError) Unwrap() []error {
	return append([]error{ErrCorruptRecord}, e.Errs...)
}

// add notes a record that failed to decode.
func (e *CorruptRecordsError) add(id string, err error) {
	e.IDs = append(e.IDs, id)
	e.Errs = append(e.Errs, err)
}

// orNil returns e only when it holds at least one record.
func (e *CorruptRecordsError) orNil() error {
	if len(e.IDs) == 0 {
		return nil
	}
	return e
}

// Store is the record store both cycles share. Implementations are not required to
// serialize concurrent writers to the same identifier.
type Store interface {
	ListIDs(ctx context.Context) ([]string, error)
	// GetAll loads every record. Records that fail to decode are left out and reported
	// through a *CorruptRecordsError; any other error means nothing was loaded.
	GetAll(ctx context.Context) ([]games.TrackedGame, error)
	GetByID(ctx context.Context, id string) (games.TrackedGame, error)
	Put(ctx context.Context, game games.TrackedGame) error
	// PutIfExists writes only when a record for the identifier is already present and
	// reports whether it wrote.
	PutIfExists(ctx context.Context, game games.TrackedGame) (bool, error)
	// DeleteByID removes the record. Deleting a missing record is not an error.
	DeleteByID(ctx context.Context, id string) error
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
