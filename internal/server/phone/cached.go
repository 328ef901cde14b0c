package phone

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrijs2005/myjar/internal/logging"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "myjar:phone:"

// redisKV is the subset of redis.Cmdable used by CachedVerifier.
type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachedVerifier keeps definitive answers of another Verifier in Redis.
// Unreachable results are never cached. Cache failures are logged and the
// lookup goes to the wrapped verifier.
type CachedVerifier struct {
	next   Verifier
	rdb    redisKV
	ttl    time.Duration
	logger logging.Logger
}

func NewCachedVerifier(next Verifier, rdb redisKV, ttl time.Duration, logger logging.Logger) *CachedVerifier {
	return &CachedVerifier{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With("module", "phone-cache"),
	}
}

func (v *CachedVerifier) Lookup(ctx context.Context, number string) (Result, error) {
	key := cacheKeyPrefix + number

	raw, err := v.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var res Result
		if jerr := json.Unmarshal(raw, &res); jerr == nil {
			return res, nil
		}
		v.logger.Warn(ctx, "dropping unreadable cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		v.logger.Warn(ctx, "phone cache read failed", "error", err)
	}

	res, err := v.next.Lookup(ctx, number)
	if err != nil || !res.Reachable {
		return res, err
	}

	if b, jerr := json.Marshal(res); jerr == nil {
		if serr := v.rdb.Set(ctx, key, b, v.ttl).Err(); serr != nil {
			v.logger.Warn(ctx, "phone cache write failed", "error", serr)
		}
	}
	return res, nil
}
