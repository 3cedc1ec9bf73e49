package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrQuotaExceeded is the sentinel every capacity failure matches via
// errors.Is. Stores should wrap their native errors in *QuotaError rather
// than returning the sentinel directly.
var ErrQuotaExceeded = errors.New("store: quota exceeded")

// QuotaError is the typed capacity failure a Store returns when a write
// does not fit. Err carries the store's native error, if any.
type QuotaError struct {
	Store string // implementation name, e.g. "file", "redis"
	Err   error
}

func (e *QuotaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s store: quota exceeded: %v", e.Store, e.Err)
	}
	return fmt.Sprintf("%s store: quota exceeded", e.Store)
}

func (e *QuotaError) Unwrap() error { return e.Err }

func (e *QuotaError) Is(target error) bool { return target == ErrQuotaExceeded }

// Legacy browser storage conventions: DOMException code 22
// (QUOTA_EXCEEDED_ERR) and Firefox's 1014 (NS_ERROR_DOM_QUOTA_REACHED).
var quotaCodes = map[int]bool{22: true, 1014: true}

// IsQuota classifies err as a capacity failure. Typed errors are checked
// first; the remaining checks are heuristics for stores that can only
// surface opaque host errors. Anything else is NOT a quota failure and must
// not be treated as recoverable.
func IsQuota(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuotaExceeded) {
		return true
	}
	var coded interface{ Code() int }
	if errors.As(err, &coded) && quotaCodes[coded.Code()] {
		return true
	}
	var named interface{ Name() string }
	if errors.As(err, &named) && strings.Contains(strings.ToLower(named.Name()), "quota") {
		return true
	}
	msg := err.Error()
	if strings.Contains(strings.ToLower(msg), "quota") {
		return true
	}
	// redis maxmemory rejection
	return strings.HasPrefix(msg, "OOM command not allowed")
}
