package ports

import "context"

// TokenStore is the key-value backend holding short-lived validation
// tokens. Records are addressed by the token identifier (partition) and
// the hash of the secret validator (row).
type TokenStore interface {
	// Get returns the raw record stored under the keys. ok=false if not found;
	// a distinguished not-found is never reported as an error.
	Get(ctx context.Context, partitionKey, rowKey string) ([]byte, bool, error)
}
