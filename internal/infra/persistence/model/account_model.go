// Package model contains GORM persistence models mapped to the app schema.
package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"certshop/internal/errors"
)

// StringList stores a list of strings as a jsonb column.
type StringList []string

// Value implements driver.Valuer.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "marshal string list")
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (s *StringList) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.Errorf("unsupported string list source type %T", value)
	}

	if err := json.Unmarshal(raw, s); err != nil {
		return errors.Wrap(err, "unmarshal string list")
	}
	return nil
}

// AccountModel maps to the customer account table.
type AccountModel struct {
	CustomerID         string     `gorm:"column:customer_id;type:varchar(100);primaryKey"`
	CustomerName       string     `gorm:"column:customer_name;type:varchar(50);not null;uniqueIndex"`
	Email              string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	PhoneNumber        string     `gorm:"column:phone_number;type:varchar(30);not null"`
	Password           string     `gorm:"column:password;type:varchar(255);not null"`
	Address            string     `gorm:"column:address;type:text;not null"`
	PayMethods         StringList `gorm:"column:pay_methods;type:jsonb;not null"`
	Activate           bool       `gorm:"column:activate;not null"`
	LastLogin          time.Time  `gorm:"column:last_login;not null"`
	CreatedAt          time.Time  `gorm:"column:created_at;not null"`
	PasswordExpiry     time.Time  `gorm:"column:password_expiry;type:date;not null"`
	PasswordResetCount int        `gorm:"column:password_reset_count;not null"`
}

// TableName overrides the default table name.
func (AccountModel) TableName() string {
	return "app.customs"
}
