package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Value implements driver.Valuer interface. The JSON is returned as a string
// so lib/pq sends it as text rather than bytea.
func (c HomeConfiguration) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner interface
func (c *HomeConfiguration) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = HomeConfiguration{}
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("cannot scan %T into HomeConfiguration", value)
	}
}
