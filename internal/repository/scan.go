package repository

import (
    "database/sql/driver"
    "encoding/json"
    "fmt"
)

// StringList stores an ordered list of strings (e.g. tour image URLs,
// first entry is the cover) as a JSON column.
type StringList []string

// Scan implements sql.Scanner.  NULL becomes an empty list.
func (s *StringList) Scan(src any) error {
    switch v := src.(type) {
    case nil:
        *s = nil
        return nil
    case []byte:
        return json.Unmarshal(v, s)
    case string:
        return json.Unmarshal([]byte(v), s)
    }
    return fmt.Errorf("repository: cannot scan %T into StringList", src)
}

// Value implements driver.Valuer.  A nil list is stored as [].
func (s StringList) Value() (driver.Value, error) {
    if s == nil {
        return []byte("[]"), nil
    }
    return json.Marshal([]string(s))
}
