// Package replay holds the out-of-database backends for the refresh token
// single-use marker. Both satisfy store.ConsumedTokens so the token service
// does not care where markers live.
package replay

import "time"

// minTTL keeps a marker alive briefly even when the token is already past
// its expiry, so a racing second exchange still sees it.
const minTTL = time.Second

func ttlUntil(expiresAt, now time.Time) time.Duration {
	ttl := expiresAt.Sub(now)
	if ttl < minTTL {
		return minTTL
	}
	return ttl
}
