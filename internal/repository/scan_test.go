package repository

import "testing"

// TestStringListScan covers the JSON column shapes image lists arrive in.
func TestStringListScan(t *testing.T) {
    var s StringList
    if err := s.Scan([]byte(`["a.jpg","b.jpg"]`)); err != nil {
        t.Fatalf("Scan returned error: %v", err)
    }
    if len(s) != 2 || s[0] != "a.jpg" || s[1] != "b.jpg" {
        t.Fatalf("unexpected list: %v", s)
    }

    if err := s.Scan(nil); err != nil {
        t.Fatalf("Scan(nil) returned error: %v", err)
    }
    if s != nil {
        t.Fatalf("NULL should scan to nil, got %v", s)
    }

    if err := s.Scan(42); err == nil {
        t.Fatal("unsupported source type must error")
    }
}

// TestStringListValue stores nil as an empty JSON array so the column
// never holds SQL NULL.
func TestStringListValue(t *testing.T) {
    var nilList StringList
    v, err := nilList.Value()
    if err != nil {
        t.Fatalf("Value returned error: %v", err)
    }
    if string(v.([]byte)) != "[]" {
        t.Fatalf("nil list stored as %q, want []", v)
    }

    v, err = StringList{"cover.jpg"}.Value()
    if err != nil {
        t.Fatalf("Value returned error: %v", err)
    }
    if string(v.([]byte)) != `["cover.jpg"]` {
        t.Fatalf("unexpected stored form %q", v)
    }
}
