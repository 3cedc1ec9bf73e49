// Package store defines the host persistent store abstraction used by
// duracache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set for a key (no prepended
// metadata, no re-encoding, no mutation). Stored records are parsed by the
// binding layer; any transform a store performs internally (e.g. compression)
// must be fully reversed on read.
//
// Capacity failures are part of the contract: a store that runs out of room
// must return an error classified by IsQuota (preferably a *QuotaError), so
// the adapter can run its recovery protocol instead of latching its breaker.
package store

import "context"

// Store is a minimal named-slot byte store.
// Must be safe for concurrent use.
type Store interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value. A capacity rejection must be reported as an error
	// for which IsQuota returns true; other errors mean the store is
	// unavailable.
	Set(ctx context.Context, key string, value []byte) error

	// Del removes a key (best-effort; deleting a missing key is not an error).
	Del(ctx context.Context, key string) error

	// Keys enumerates every stored key beginning with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Size reports the stored size of key in bytes, 0 when absent.
	Size(ctx context.Context, key string) (int, error)

	// Close releases resources.
	Close(ctx context.Context) error
}
