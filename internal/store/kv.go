package store

import "context"

// KV is the string-keyed, string-valued store day sessions persist through.
// It survives process restarts. Get returns ("", nil) for a missing key;
// callers substitute defaults for anything absent or malformed.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
