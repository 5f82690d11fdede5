package models

import (
	"strings"

	"backoffice/internal/domain"
)

// Staff is an employee account. The same shape is returned by /me.
type Staff struct {
	ID       int64       `json:"nvid"`
	Name     string      `json:"tennv"`
	Account  string      `json:"taikhoan"`
	Address  string      `json:"diachi"`
	Phone    string      `json:"sdt"`
	Birthday string      `json:"ngaysinh"`
	Gender   int         `json:"gioitinh"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"quyen"`
	Status   int         `json:"trangthai"`
	Revenue  Amount      `json:"doanhthu"`
}

func (s *Staff) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Account = strings.TrimSpace(s.Account)
	s.Address = strings.TrimSpace(s.Address)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Birthday = dateOnly(s.Birthday)
	s.Email = strings.TrimSpace(s.Email)
	s.Revenue = nonNegative(s.Revenue)
}

// RoleName is the label used by the staff table and profile page.
func (s Staff) RoleName() string {
	if s.Role == domain.RoleAdmin {
		return "Admin"
	}
	return "Staff"
}

// Profile is the signed-in staff member.
type Profile = Staff
