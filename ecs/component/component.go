package component

import (
	"errors"
	"strconv"
)

var (
	ErrUnknownKind    = errors.New("component: unknown kind")
	ErrInvalidCatalog = errors.New("component: invalid catalog")
)

// EntityID identifies a simulated entity. IDs are never reused within a world,
// so a stale id always resolves to nothing.
type EntityID uint64

func (e EntityID) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e EntityID) Valid() bool {
	return e > 0
}
