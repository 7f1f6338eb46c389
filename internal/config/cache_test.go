package config

import (
    "testing"
    "time"
)

// TestParseMethods normalizes the comma list of cacheable methods.
func TestParseMethods(t *testing.T) {
    m := parseMethods("get, head ,POST")
    for _, want := range []string{"GET", "HEAD", "POST"} {
        if !m[want] {
            t.Errorf("parseMethods missing %s: %v", want, m)
        }
    }
    if len(parseMethods("")) != 0 {
        t.Fatal("empty list should parse to no methods")
    }
}

// TestLoadCacheConfigDefaults checks the defaults applied when nothing is
// set, and that explicit values win.
func TestLoadCacheConfigDefaults(t *testing.T) {
    t.Setenv("CACHE_ENABLED", "")
    t.Setenv("CACHE_METHODS", "")
    t.Setenv("CACHE_TTL", "")
    t.Setenv("CACHE_PREFIX", "")

    cfg := LoadCacheConfig()
    if !cfg.Methods["GET"] {
        t.Fatal("GET should be cacheable by default")
    }
    if cfg.Prefix == "" {
        t.Fatal("prefix must never be empty")
    }

    t.Setenv("CACHE_TTL", "90s")
    if got := LoadCacheConfig().TTL; got != 90*time.Second {
        t.Fatalf("TTL = %v, want 90s", got)
    }
}

// TestEnvHelpers covers the typed env readers used by the rate limiter.
func TestEnvHelpers(t *testing.T) {
    t.Setenv("X_STR", "value")
    if envStr("X_STR", "d") != "value" || envStr("X_MISSING", "d") != "d" {
        t.Fatal("envStr default handling broken")
    }

    t.Setenv("X_BOOL", "true")
    if !envBool("X_BOOL", false) || envBool("X_MISSING", true) != true {
        t.Fatal("envBool default handling broken")
    }

    t.Setenv("X_INT", "12")
    if envInt("X_INT", 1) != 12 || envInt("X_MISSING", 7) != 7 {
        t.Fatal("envInt default handling broken")
    }
    t.Setenv("X_INT", "junk")
    if envInt("X_INT", 7) != 7 {
        t.Fatal("junk int should fall back to default")
    }

    t.Setenv("X_DUR", "2m")
    if envDur("X_DUR", time.Second) != 2*time.Minute {
        t.Fatal("envDur parse broken")
    }
}
