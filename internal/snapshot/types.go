package snapshot

import (
	"database/sql"
	"errors"
	"time"
)

// ErrVersionConflict is returned by Save when another writer saved first.
var ErrVersionConflict = errors.New("snapshot version conflict")

// snapshotID is the key of the single snapshot row.
const snapshotID = 1

type store struct {
	db  *sql.DB
	now func() time.Time
}
