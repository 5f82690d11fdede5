package forms

import (
	"errors"
	"strings"
	"testing"
	"time"

	"backoffice/internal/domain"
)

func fixedToday(t *testing.T) {
	t.Helper()
	prev := now
	now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local) }
	t.Cleanup(func() { now = prev })
}

func fields(t *testing.T, err error) map[string]string {
	t.Helper()
	var v domain.ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("expected validation error, got %v", err)
	}
	return v.Fields
}

func TestDecodeLogin(t *testing.T) {
	var in Login
	if err := Decode(strings.NewReader(`{"taikhoan":"admin","matkhau":"secret1"}`), &in, true); err != nil {
		t.Fatalf("valid login: %v", err)
	}

	err := Decode(strings.NewReader(`{"taikhoan":"","matkhau":"123"}`), &Login{}, true)
	f := fields(t, err)
	if f["taikhoan"] != "Account is required" || f["matkhau"] == "" {
		t.Fatalf("unexpected fields %v", f)
	}
}

func TestDecodeRejectsUnknownAndEmpty(t *testing.T) {
	if err := Decode(strings.NewReader(`{"taikhoan":"a","matkhau":"secret1","x":1}`), &Login{}, true); err == nil {
		t.Fatalf("unknown field should fail in strict mode")
	}
	if err := Decode(strings.NewReader(`{"taikhoan":"a","matkhau":"secret1","x":1}`), &Login{}, false); err != nil {
		t.Fatalf("lenient mode should accept unknown fields: %v", err)
	}
	err := Decode(strings.NewReader(``), &Login{}, true)
	var v domain.ValidationError
	if !errors.As(err, &v) || v.Msg != "empty body" {
		t.Fatalf("expected empty body error, got %v", err)
	}
}

func TestCustomerRules(t *testing.T) {
	one := 1
	ok := Customer{
		FullName: "Nguyen Van A", Address: "1 Le Loi", ContactAddress: "1 Le Loi",
		NationalID: "012345678901", Birthday: "1990-01-02", Phone: "0901234567",
		Gender: &one, Email: "a@example.com",
	}
	if err := Validate(ok); err != nil {
		t.Fatalf("valid customer: %v", err)
	}

	bad := ok
	bad.Phone = "12345"
	bad.NationalID = "123"
	bad.Gender = nil
	f := fields(t, Validate(bad))
	for _, k := range []string{"sdt", "cmnd", "gioitinh"} {
		if f[k] == "" {
			t.Fatalf("missing message for %s: %v", k, f)
		}
	}
}

func TestConsignmentDates(t *testing.T) {
	fixedToday(t)
	in := Consignment{CustomerID: 1, PropertyID: 2, Value: 100, ServiceFee: 1000, StartDate: "2025-03-10", EndDate: "2025-06-01"}
	if err := Validate(in); err != nil {
		t.Fatalf("valid consignment: %v", err)
	}

	in.StartDate = "2025-03-09"
	if f := fields(t, Validate(in)); f["ngaybatdau"] == "" {
		t.Fatalf("past start should fail: %v", f)
	}

	in.StartDate, in.EndDate = "2025-05-01", "2025-04-01"
	if f := fields(t, Validate(in)); f["ngayketthuc"] == "" {
		t.Fatalf("end before start should fail: %v", f)
	}
}

func TestDepositExpiryMustBeFuture(t *testing.T) {
	fixedToday(t)
	in := Deposit{CustomerID: 1, PropertyID: 1, Value: 5, ExpiresOn: "2025-03-10"}
	if f := fields(t, Validate(in)); f["ngayhethan"] == "" {
		t.Fatalf("today is not in the future: %v", f)
	}
	in.ExpiresOn = "2025-03-11"
	if err := Validate(in); err != nil {
		t.Fatalf("tomorrow should pass: %v", err)
	}
}

func TestCustomerRequestRanges(t *testing.T) {
	in := CustomerRequest{TypeID: 1, CustomerID: 1, Location: "Q1", PriceFrom: 10, PriceTo: 5, LengthFrom: 1, LengthTo: 2, WidthFrom: 1, WidthTo: 1}
	if f := fields(t, Validate(in)); f["giat"] == "" || len(f) != 1 {
		t.Fatalf("only the inverted price range should fail: %v", f)
	}
}

func TestChangePasswordMustDiffer(t *testing.T) {
	if f := fields(t, Validate(ChangePassword{Old: "secret1", New: "secret1"})); f["matkhaumoi"] == "" {
		t.Fatalf("same password should fail: %v", f)
	}
	if err := Validate(ChangePassword{Old: "secret1", New: "secret2"}); err != nil {
		t.Fatalf("different passwords: %v", err)
	}
}
