package auditlog

import "errors"

var (
	ErrNilRedisClient = errors.New("auditlog: redis client is required")
	ErrStoreAppend    = errors.New("auditlog: failed to append entry to store")
	ErrStoreLoad      = errors.New("auditlog: failed to load entries from store")
)
