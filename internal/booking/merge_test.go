package booking

import (
	"reflect"
	"testing"
)

func ptr(s string) *string { return &s }

func TestMergeFillsAbsentSlots(t *testing.T) {
	got := Merge(Fields{}, PartialRecord{
		Service: ptr("Manicure"),
		Date:    ptr("2024-06-01"),
		Time:    ptr("14:30"),
		Name:    ptr("Asha"),
		Email:   ptr("Asha@Example.com"),
		Phone:   ptr("+91 98765 43210"),
	})

	if got.Service == nil || got.Service.Name != "Manicure" {
		t.Error("service not merged")
	}
	if got.Date == nil || got.Date.Format("2006-01-02") != "2024-06-01" {
		t.Error("date not merged")
	}
	if got.Time == nil || got.Time.String() != "14:30" {
		t.Error("time not merged")
	}
	if got.Name != "Asha" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Email != "asha@example.com" {
		t.Errorf("email = %q, want lowercased", got.Email)
	}
	if got.Phone != "9876543210" {
		t.Errorf("phone = %q, want normalized", got.Phone)
	}
}

func TestMergeNeverOverwrites(t *testing.T) {
	base := Merge(Fields{}, PartialRecord{
		Service: ptr("Pedicure"),
		Date:    ptr("2024-06-01"),
		Time:    ptr("10:00"),
		Name:    ptr("Asha"),
		Email:   ptr("asha@example.com"),
		Phone:   ptr("9876543210"),
	})

	got := Merge(base, PartialRecord{
		Service: ptr("Manicure"),
		Date:    ptr("2024-12-31"),
		Time:    ptr("18:45"),
		Name:    ptr("Someone Else"),
		Email:   ptr("other@example.com"),
		Phone:   ptr("1112223334"),
	})

	if !reflect.DeepEqual(got, base) {
		t.Errorf("merge overwrote populated fields:\n got %+v\nwant %+v", got, base)
	}
}

func TestMergeIdempotent(t *testing.T) {
	rec := PartialRecord{
		Service: ptr("Hair Spa"),
		Date:    ptr("2024-03-10"),
		Time:    ptr("9:15"),
		Email:   ptr("x@y.z"),
	}
	once := Merge(Fields{}, rec)
	twice := Merge(once, rec)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge not idempotent:\n once %+v\ntwice %+v", once, twice)
	}
}

func TestMergeDropsMalformedValues(t *testing.T) {
	got := Merge(Fields{}, PartialRecord{
		Service: ptr("Quantum Haircut"),
		Date:    ptr("next friday"),
		Time:    ptr("half past two"),
		Phone:   ptr("12345"),
	})
	if got.Service != nil || got.Date != nil || got.Time != nil || got.Phone != "" {
		t.Errorf("malformed values must be dropped, got %+v", got)
	}
}

func TestMergeEmptyRecordIsNoop(t *testing.T) {
	base := Merge(Fields{}, PartialRecord{Name: ptr("Asha")})
	got := Merge(base, PartialRecord{})
	if !reflect.DeepEqual(got, base) {
		t.Errorf("empty record changed fields: %+v", got)
	}
}

func TestPartialRecordIsEmpty(t *testing.T) {
	if !(PartialRecord{}).IsEmpty() {
		t.Error("zero record should be empty")
	}
	if (PartialRecord{Phone: ptr("9876543210")}).IsEmpty() {
		t.Error("record with phone should not be empty")
	}
}
