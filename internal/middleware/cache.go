package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/binary"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/davronbekm/silkroad-booking/internal/config"
)

// captureWriter captures response body/status while forwarding to the client.
type captureWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    size   int64
    limit  int64
}

func (cw *captureWriter) WriteHeader(code int) { cw.status = code; cw.ResponseWriter.WriteHeader(code) }
func (cw *captureWriter) Write(b []byte) (int, error) {
    if cw.limit <= 0 || cw.size < cw.limit {
        remain := cw.limit - cw.size
        if cw.limit <= 0 {
            cw.buf.Write(b)
        } else if remain > 0 {
            if int64(len(b)) <= remain {
                cw.buf.Write(b)
            } else {
                cw.buf.Write(b[:remain])
            }
        }
        cw.size += int64(len(b))
    }
    return cw.ResponseWriter.Write(b)
}

// collectionFromPath derives the collection segment of a cache key
// from the registered route, e.g. /v1/tours/:slug -> "tours".  Keys
// must carry the collection so a write can invalidate exactly the
// reads it staled.
func collectionFromPath(route string) string {
    parts := strings.Split(strings.TrimPrefix(route, "/"), "/")
    for _, p := range parts {
        if p == "" || p == "v1" {
            continue
        }
        return p
    }
    return "misc"
}

// cacheKeyFrom builds prefix:collection:sha1(route|query|locale).  The
// locale participates because cached listings contain localized
// projections.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context) string {
    route := c.Path()
    query := c.Request().URL.RawQuery
    loc := string(RequestLocale(c))

    tail := strings.Join([]string{"route", route, "q", query, "lang", loc}, ":")
    sum := sha1.Sum([]byte(tail))
    return fmt.Sprintf("%s:%s:%x", cfg.Prefix, collectionFromPath(route), sum[:])
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
    hdrJSON, err := json.Marshal(header)
    if err != nil {
        return nil, err
    }
    total := 4 + 4 + len(hdrJSON) + len(body)
    out := make([]byte, total)
    binary.BigEndian.PutUint32(out[0:4], uint32(status))
    binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
    copy(out[8:8+len(hdrJSON)], hdrJSON)
    copy(out[8+len(hdrJSON):], body)
    return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
    if len(bs) < 8 {
        return 0, nil, nil, false
    }
    status = int(binary.BigEndian.Uint32(bs[0:4]))
    hlen := int(binary.BigEndian.Uint32(bs[4:8]))
    if 8+hlen > len(bs) || hlen < 0 {
        return 0, nil, nil, false
    }
    var hdr http.Header
    if hlen > 0 {
        if err := json.Unmarshal(bs[8:8+hlen], &hdr); err != nil {
            return 0, nil, nil, false
        }
    } else {
        hdr = make(http.Header)
    }
    body = bs[8+hlen:]
    return status, hdr, body, true
}

// NewListingCache caches successful GET listing responses in Redis for
// the configured freshness window.  Headers and body are stored
// together so clients see identical formatting on a HIT.  With no
// Redis client the middleware is a pass-through.
func NewListingCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 30 * time.Second
    }

    maxBody := int64(cfg.MaxBodyBytes)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                return next(c)
            }

            ctx := c.Request().Context()
            key := cacheKeyFrom(cfg, c)

            // Try get from Redis
            if bs, err := rdb.Get(ctx, key).Bytes(); err == nil && len(bs) >= 8 {
                if status, hdr, body, ok := decodePayload(bs); ok {
                    for k, vals := range hdr {
                        if strings.EqualFold(k, "Content-Length") {
                            continue
                        }
                        for _, v := range vals {
                            c.Response().Header().Add(k, v)
                        }
                    }
                    c.Response().Header().Set("X-Cache", "HIT")
                    c.Response().WriteHeader(status)
                    if len(body) > 0 {
                        _, _ = c.Response().Write(body)
                    }
                    return nil
                }
            }

            // Miss: capture
            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }

            if cw.status == http.StatusOK {
                hdr := make(http.Header, len(c.Response().Header()))
                for k, vals := range c.Response().Header() {
                    vv := make([]string, len(vals))
                    copy(vv, vals)
                    hdr[k] = vv
                }
                body := cw.buf.Bytes()
                // oversized responses are served but never cached
                if maxBody <= 0 || cw.size <= maxBody {
                    if payload, err := encodePayload(cw.status, hdr, body); err == nil {
                        _ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
                    }
                }
            }
            return nil
        }
    }
}

// Invalidator drops cached reads for whole collections.  Every write
// handler calls it for the collections the write touched, so the next
// render reflects the mutation instead of a stale entry.
type Invalidator struct {
    rdb    *redis.Client
    prefix string
}

// NewInvalidator builds an Invalidator sharing the cache's key prefix.
// A nil Redis client yields a no-op invalidator.
func NewInvalidator(cfg config.CacheConfig, rdb *redis.Client) *Invalidator {
    return &Invalidator{rdb: rdb, prefix: cfg.Prefix}
}

// Invalidate deletes all cached entries for the named collections.
// Failures are swallowed: the entries expire at the TTL anyway.
func (i *Invalidator) Invalidate(ctx context.Context, collections ...string) {
    if i == nil || i.rdb == nil {
        return
    }
    for _, col := range collections {
        pattern := i.prefix + ":" + col + ":*"
        iter := i.rdb.Scan(ctx, 0, pattern, 100).Iterator()
        var keys []string
        for iter.Next(ctx) {
            keys = append(keys, iter.Val())
        }
        if iter.Err() != nil {
            continue
        }
        if len(keys) > 0 {
            _ = i.rdb.Del(ctx, keys...).Err()
        }
    }
}
