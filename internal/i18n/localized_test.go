package i18n

import (
    "encoding/json"
    "testing"
)

// TestTextResolve covers the fallback chain: requested locale, then
// English, then empty.
func TestTextResolve(t *testing.T) {
    cases := []struct {
        name string
        text Text
        loc  Locale
        want string
    }{
        {"plain value ignores locale", Text{Plain: "Registan"}, LocaleRU, "Registan"},
        {"locale hit", NewText(map[Locale]string{LocaleEN: "Registan", LocaleRU: "Регистан"}), LocaleRU, "Регистан"},
        {"missing locale falls back to english", NewText(map[Locale]string{LocaleEN: "Registan"}), LocaleRU, "Registan"},
        {"empty translation falls back", NewText(map[Locale]string{LocaleEN: "Registan", LocaleRU: ""}), LocaleRU, "Registan"},
        {"empty everywhere", NewText(map[Locale]string{}), LocaleEN, ""},
        {"zero value", Text{}, LocaleEN, ""},
    }
    for _, tc := range cases {
        if got := tc.text.Resolve(tc.loc); got != tc.want {
            t.Errorf("%s: Resolve(%q) = %q, want %q", tc.name, tc.loc, got, tc.want)
        }
    }
}

// TestTextUnmarshal verifies that all stored shapes decode without error
// and that junk degrades to the zero value.
func TestTextUnmarshal(t *testing.T) {
    cases := []struct {
        name  string
        input string
        want  string // resolved for en
    }{
        {"string", `"Samarkand"`, "Samarkand"},
        {"object", `{"en":"Samarkand","ru":"Самарканд"}`, "Samarkand"},
        {"null", `null`, ""},
        {"number degrades to zero", `42`, ""},
        {"array degrades to zero", `["x"]`, ""},
    }
    for _, tc := range cases {
        var tx Text
        if err := json.Unmarshal([]byte(tc.input), &tx); err != nil {
            t.Fatalf("%s: unmarshal returned error: %v", tc.name, err)
        }
        if got := tx.Resolve(LocaleEN); got != tc.want {
            t.Errorf("%s: resolved %q, want %q", tc.name, got, tc.want)
        }
    }
}

// TestTextScanRoundTrip ensures a value stored through Value scans back
// to an equivalent Text.
func TestTextScanRoundTrip(t *testing.T) {
    orig := NewText(map[Locale]string{LocaleEN: "Bukhara", LocaleRU: "Бухара"})
    v, err := orig.Value()
    if err != nil {
        t.Fatalf("Value returned error: %v", err)
    }
    var back Text
    if err := back.Scan(v); err != nil {
        t.Fatalf("Scan returned error: %v", err)
    }
    if back.Resolve(LocaleRU) != "Бухара" || back.Resolve(LocaleEN) != "Bukhara" {
        t.Fatalf("round trip lost translations: %+v", back)
    }

    var null Text
    if err := null.Scan(nil); err != nil {
        t.Fatalf("Scan(nil) returned error: %v", err)
    }
    if !null.IsZero() {
        t.Fatalf("Scan(nil) should produce the zero value, got %+v", null)
    }
}

// TestListResolve covers list fallback plus the single-string
// normalization applied while decoding.
func TestListResolve(t *testing.T) {
    cases := []struct {
        name  string
        input string
        loc   Locale
        want  []string
    }{
        {"plain array", `["guide","hotel"]`, LocaleRU, []string{"guide", "hotel"}},
        {"locale hit", `{"en":["guide"],"ru":["гид"]}`, LocaleRU, []string{"гид"}},
        {"fallback to english", `{"en":["guide"]}`, LocaleRU, []string{"guide"}},
        {"single string becomes one-element list", `{"en":"guide"}`, LocaleEN, []string{"guide"}},
        {"null", `null`, LocaleEN, []string{}},
        {"empty object", `{}`, LocaleEN, []string{}},
        {"empty string value", `{"en":""}`, LocaleEN, []string{}},
        {"explicit empty list stays empty", `{"ru":[],"en":["guide"]}`, LocaleRU, []string{}},
        {"null entry falls back", `{"ru":null,"en":["guide"]}`, LocaleRU, []string{"guide"}},
    }
    for _, tc := range cases {
        var l List
        if err := json.Unmarshal([]byte(tc.input), &l); err != nil {
            t.Fatalf("%s: unmarshal returned error: %v", tc.name, err)
        }
        got := l.Resolve(tc.loc)
        if got == nil {
            t.Fatalf("%s: Resolve returned nil", tc.name)
        }
        if len(got) != len(tc.want) {
            t.Fatalf("%s: Resolve = %v, want %v", tc.name, got, tc.want)
        }
        for i := range got {
            if got[i] != tc.want[i] {
                t.Errorf("%s: Resolve[%d] = %q, want %q", tc.name, i, got[i], tc.want[i])
            }
        }
    }
}
