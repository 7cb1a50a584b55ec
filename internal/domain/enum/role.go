package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// Role represents the access level of a workshop user
type Role int

const (
	RoleStaff Role = 0
	RoleAdmin Role = 1
)

func (r Role) String() string {
	return [...]string{"staff", "admin"}[r]
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*r = Role(i)
		return nil
	}
	switch str {
	case "staff":
		*r = RoleStaff
	case "admin":
		*r = RoleAdmin
	}
	return nil
}

func (r Role) Value() (driver.Value, error) {
	return int64(r), nil
}

func (r *Role) Scan(value interface{}) error {
	if value == nil {
		*r = RoleStaff
		return nil
	}
	switch v := value.(type) {
	case int64:
		*r = Role(v)
	case int:
		*r = Role(v)
	}
	return nil
}
