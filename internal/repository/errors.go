// Package repository defines error types that are reused across multiple
// repositories.  Every sentinel belongs to one of three kinds so that the
// HTTP layer can map whole families at once: ErrNotFound (404),
// ErrInvalidState (400) and ErrConflict (409).
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Kinds.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	// ErrForbidden is returned when the caller acts on another user's resource.
	ErrForbidden = errors.New("forbidden")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error { return &kindError{kind: kind, msg: msg} }

var (
	ErrUserNotFound          = newError(ErrNotFound, "user not found")
	ErrRoomNotFound          = newError(ErrNotFound, "room not found")
	ErrEventNotFound         = newError(ErrNotFound, "event not found")
	ErrInventoryItemNotFound = newError(ErrNotFound, "inventory item not found")
	ErrReservationNotFound   = newError(ErrNotFound, "reservation not found")
	ErrBasketNotFound        = newError(ErrNotFound, "basket not found")
	ErrBasketItemNotFound    = newError(ErrNotFound, "basket item not found")

	ErrRoomUnavailable      = newError(ErrInvalidState, "room is not available")
	ErrCapacityExceeded     = newError(ErrInvalidState, "number of guests exceeds room capacity")
	ErrBasketEmpty          = newError(ErrInvalidState, "basket is empty")
	ErrInvalidOperation     = newError(ErrInvalidState, "operation must be add or subtract")
	ErrInsufficientQuantity = newError(ErrInvalidState, "insufficient quantity")
	ErrRoomQuantityFixed    = newError(ErrInvalidState, "room items always have quantity 1")

	ErrEmailExists         = newError(ErrConflict, "email already exists")
	ErrAlreadyCancelled    = newError(ErrConflict, "reservation already cancelled")
	ErrRoomHasReservations = newError(ErrConflict, "room has reservations")
)

const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
)

// IsDuplicate reports a unique-key violation.
func IsDuplicate(err error) bool { return mysqlErrno(err) == mysqlDuplicateEntry }

// IsReferenced reports a delete blocked by a foreign key.
func IsReferenced(err error) bool { return mysqlErrno(err) == mysqlRowIsReferenced }

func mysqlErrno(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}
