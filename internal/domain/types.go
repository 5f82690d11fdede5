package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Role is a staff permission level. The zero value is the unprivileged
// staff role, so a record without a role never grants admin rights.
type Role int

const (
	RoleStaff Role = iota
	RoleAdmin
)

// upstream "quyen" codes
const (
	quyenAdmin = 0
	quyenStaff = 1
)

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "staff"
}

// RoleFromCode maps an upstream "quyen" code. Anything but the admin code
// is staff.
func RoleFromCode(code int) Role {
	if code == quyenAdmin {
		return RoleAdmin
	}
	return RoleStaff
}

// Code is the upstream "quyen" value of r.
func (r Role) Code() int {
	if r == RoleAdmin {
		return quyenAdmin
	}
	return quyenStaff
}

func (r Role) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(r.Code()), 10), nil
}

// UnmarshalJSON accepts the code as a number or a numeric string. null,
// blank and unknown values decode to RoleStaff.
func (r *Role) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*r = RoleStaff
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	code, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	*r = RoleFromCode(code)
	return nil
}

// SortDirection is the ordering of a list view.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == Descending {
		return Ascending
	}
	return Descending
}
