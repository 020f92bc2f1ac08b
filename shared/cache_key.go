package shared

import (
	"context"
	"fmt"
	"ihome/shared/cache"
	"strings"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins prefix and parts with ':'. Empty parts are kept so positions stay stable.
func BuildCacheKey(prefix string, parts ...any) string {
	keys := make([]string, 0, len(parts)+1)
	keys = append(keys, prefix)

	for _, part := range parts {
		keys = append(keys, fmt.Sprint(part))
	}

	return strings.Join(keys, cacheKeySeparator)
}

// InvalidateCaches drops every key under prefix. Failures are logged, not returned.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+"*"); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
