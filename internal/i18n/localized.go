package i18n

import (
    "database/sql/driver"
    "encoding/json"
    "fmt"
)

// Text is a translatable string as stored in a JSON column.  The column
// holds either a plain string (legacy rows, slugs reused as labels) or an
// object keyed by locale, e.g. {"en": "Registan", "ru": "Регистан"}.
// Exactly one of the two fields is populated.
type Text struct {
    Plain    string
    ByLocale map[Locale]string
}

// NewText builds a localized Text from per-locale values.
func NewText(byLocale map[Locale]string) Text {
    return Text{ByLocale: byLocale}
}

// IsZero reports whether the value holds no content at all.
func (t Text) IsZero() bool {
    return t.Plain == "" && len(t.ByLocale) == 0
}

// Resolve picks the display string for a locale.  A plain value is
// returned as is.  For localized values the requested locale wins when
// it has a non-empty translation, then English, then "".  Resolution is
// total: it never fails, it only degrades.
func (t Text) Resolve(loc Locale) string {
    if t.ByLocale == nil {
        return t.Plain
    }
    if s := t.ByLocale[loc]; s != "" {
        return s
    }
    return t.ByLocale[DefaultLocale]
}

// UnmarshalJSON accepts a string, an object of translations, or null.
// Any other shape decodes to the zero value so one malformed row cannot
// take a whole listing down.
func (t *Text) UnmarshalJSON(b []byte) error {
    *t = Text{}
    if len(b) == 0 || string(b) == "null" {
        return nil
    }
    switch b[0] {
    case '"':
        var s string
        if err := json.Unmarshal(b, &s); err == nil {
            t.Plain = s
        }
    case '{':
        var m map[Locale]string
        if err := json.Unmarshal(b, &m); err == nil {
            t.ByLocale = m
        }
    }
    return nil
}

// MarshalJSON writes back the same shape that was stored.
func (t Text) MarshalJSON() ([]byte, error) {
    if t.ByLocale != nil {
        return json.Marshal(t.ByLocale)
    }
    return json.Marshal(t.Plain)
}

// Scan implements sql.Scanner for JSON columns.  NULL scans to the zero
// value.
func (t *Text) Scan(src any) error {
    switch v := src.(type) {
    case nil:
        *t = Text{}
        return nil
    case []byte:
        return t.UnmarshalJSON(v)
    case string:
        return t.UnmarshalJSON([]byte(v))
    default:
        return fmt.Errorf("i18n: cannot scan %T into Text", src)
    }
}

// Value implements driver.Valuer, storing the JSON form.
func (t Text) Value() (driver.Value, error) {
    b, err := t.MarshalJSON()
    if err != nil {
        return nil, err
    }
    return b, nil
}

// List is a translatable list of strings, stored like Text but with
// array values: either a plain array or {"en": [...], "ru": [...]}.
// Single string values inside the object are normalized to one-element
// lists, matching rows written before lists were introduced.
type List struct {
    Plain    []string
    ByLocale map[Locale][]string
}

// IsZero reports whether the value holds no content at all.
func (l List) IsZero() bool {
    return len(l.Plain) == 0 && len(l.ByLocale) == 0
}

// Resolve picks the display list for a locale with the same fallback
// order as Text.Resolve.  Never returns nil.
//
// An entry that is present for the locale is returned as stored, even
// when it is empty; only a missing (or null) entry falls back to the
// default locale.
func (l List) Resolve(loc Locale) []string {
    if l.ByLocale == nil {
        if l.Plain == nil {
            return []string{}
        }
        return l.Plain
    }
    if xs := l.ByLocale[loc]; xs != nil {
        return xs
    }
    if xs := l.ByLocale[DefaultLocale]; xs != nil {
        return xs
    }
    return []string{}
}

// UnmarshalJSON accepts an array, an object of per-locale arrays (or
// single strings), or null.  Other shapes decode to the zero value.
func (l *List) UnmarshalJSON(b []byte) error {
    *l = List{}
    if len(b) == 0 || string(b) == "null" {
        return nil
    }
    switch b[0] {
    case '[':
        var xs []string
        if err := json.Unmarshal(b, &xs); err == nil {
            l.Plain = xs
        }
    case '{':
        var m map[Locale]json.RawMessage
        if err := json.Unmarshal(b, &m); err != nil {
            return nil
        }
        out := make(map[Locale][]string, len(m))
        for loc, raw := range m {
            var xs []string
            if err := json.Unmarshal(raw, &xs); err == nil {
                out[loc] = xs
                continue
            }
            var s string
            if err := json.Unmarshal(raw, &s); err == nil && s != "" {
                out[loc] = []string{s}
            }
        }
        l.ByLocale = out
    }
    return nil
}

// MarshalJSON writes back the same shape that was stored.
func (l List) MarshalJSON() ([]byte, error) {
    if l.ByLocale != nil {
        return json.Marshal(l.ByLocale)
    }
    if l.Plain == nil {
        return json.Marshal([]string{})
    }
    return json.Marshal(l.Plain)
}

// Scan implements sql.Scanner for JSON columns.
func (l *List) Scan(src any) error {
    switch v := src.(type) {
    case nil:
        *l = List{}
        return nil
    case []byte:
        return l.UnmarshalJSON(v)
    case string:
        return l.UnmarshalJSON([]byte(v))
    default:
        return fmt.Errorf("i18n: cannot scan %T into List", src)
    }
}

// Value implements driver.Valuer, storing the JSON form.
func (l List) Value() (driver.Value, error) {
    b, err := l.MarshalJSON()
    if err != nil {
        return nil, err
    }
    return b, nil
}
