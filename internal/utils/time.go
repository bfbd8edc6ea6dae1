package util

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// LocalDateTime is a timestamp shown to users in São Paulo wall-clock time.
type LocalDateTime struct {
	time.Time
}

const (
	layout   = "2006-01-02T15:04:05"
	layoutBR = "02/01/2006, 15:04:05"
)

var saoPauloLocation *time.Location

func init() {
	var err error
	saoPauloLocation, err = time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		saoPauloLocation = time.FixedZone("BRT", -3*60*60)
	}
}

func SaoPaulo() *time.Location {
	return saoPauloLocation
}

func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime{Time: t.In(saoPauloLocation)}
}

// FormatBR renders t as "dd/mm/aaaa, hh:mm:ss" in São Paulo time.
func FormatBR(t time.Time) string {
	return t.In(saoPauloLocation).Format(layoutBR)
}

func (ldt LocalDateTime) String() string {
	if ldt.IsZero() {
		return ""
	}
	return FormatBR(ldt.Time)
}

func (ldt *LocalDateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.ParseInLocation(layout, s, saoPauloLocation)
	if err != nil {
		return err
	}
	ldt.Time = t
	return nil
}

func (ldt LocalDateTime) MarshalJSON() ([]byte, error) {
	if ldt.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + ldt.In(saoPauloLocation).Format(layout) + `"`), nil
}

func (ldt LocalDateTime) Value() (driver.Value, error) {
	if ldt.IsZero() {
		return nil, nil
	}
	return ldt.Time, nil
}

func (ldt *LocalDateTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		ldt.Time = time.Time{}
		return nil
	case time.Time:
		ldt.Time = v
		return nil
	case []byte:
		return ldt.parse(string(v))
	case string:
		return ldt.parse(v)
	default:
		return fmt.Errorf("cannot scan type %T into LocalDateTime", value)
	}
}

func (ldt *LocalDateTime) parse(s string) error {
	parsed, err := time.ParseInLocation(layout, s, saoPauloLocation)
	if err != nil {
		return err
	}
	ldt.Time = parsed
	return nil
}
