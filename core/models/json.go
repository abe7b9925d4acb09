package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONList stores a list of loosely-typed objects (questionnaire questions,
// submitted answers, chat snapshots) as a JSON column.
type JSONList []map[string]any

// Value implements driver.Valuer.
func (l JSONList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *JSONList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for JSONList: %T", value)
	}
}
