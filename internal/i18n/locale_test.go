package i18n

import "testing"

// TestMatch checks locale negotiation: explicit query wins, then the
// Accept-Language header, and anything undecidable lands on English.
func TestMatch(t *testing.T) {
    cases := []struct {
        name   string
        query  string
        accept string
        want   Locale
    }{
        {"query wins over header", "ru", "en-US,en;q=0.9", LocaleRU},
        {"query is normalized", "RU", "", LocaleRU},
        {"regional query variant", "en-GB", "ru", LocaleEN},
        {"unsupported query falls to header", "de", "ru,en;q=0.5", LocaleRU},
        {"header only", "", "ru-RU,ru;q=0.9,en;q=0.4", LocaleRU},
        {"no signals", "", "", LocaleEN},
        {"garbage everywhere", ";;;", "!!!", LocaleEN},
    }
    for _, tc := range cases {
        if got := Match(tc.query, tc.accept); got != tc.want {
            t.Errorf("%s: Match(%q, %q) = %q, want %q", tc.name, tc.query, tc.accept, got, tc.want)
        }
    }
}
