package booking

import (
	"strings"

	"github.com/luxesalon/frontdesk/internal/catalog"
	"github.com/luxesalon/frontdesk/internal/phone"
)

// PartialRecord is the extractor's best-effort output. Every field is
// optional; a nil pointer means the extractor saw nothing for it.
type PartialRecord struct {
	Service *string `json:"service"`
	Date    *string `json:"date"`
	Time    *string `json:"time"`
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
}

// IsEmpty reports whether no field is set.
func (p PartialRecord) IsEmpty() bool {
	return p.Service == nil && p.Date == nil && p.Time == nil &&
		p.Name == nil && p.Email == nil && p.Phone == nil
}

// Merge fills absent slots of current from incoming. A slot already set
// in current is never touched. Incoming values that fail their semantic
// parse (unknown service, malformed date or time, invalid phone) are
// dropped silently. Merging the same record twice is a no-op the second
// time.
func Merge(current Fields, incoming PartialRecord) Fields {
	if current.Service == nil {
		if v := deref(incoming.Service); v != "" {
			if svc, ok := catalog.Lookup(v); ok {
				current.Service = &svc
			}
		}
	}
	if current.Date == nil {
		if v := deref(incoming.Date); v != "" {
			if d, ok := ParseDate(v); ok {
				current.Date = &d
			}
		}
	}
	if current.Time == nil {
		if v := deref(incoming.Time); v != "" {
			if t, ok := ParseTimeOfDay(v); ok {
				current.Time = &t
			}
		}
	}
	if current.Name == "" {
		current.Name = deref(incoming.Name)
	}
	if current.Email == "" {
		current.Email = strings.ToLower(deref(incoming.Email))
	}
	if current.Phone == "" {
		if v := deref(incoming.Phone); v != "" {
			if p, ok := phone.Normalize(v); ok {
				current.Phone = p
			}
		}
	}
	return current
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
