package models

import "strings"

const (
	CustomerInactive = 0
	CustomerActive   = 1
)

// Customer is a buyer or seller known to the brokerage.
type Customer struct {
	ID             int64  `json:"khid"`
	FullName       string `json:"hoten"`
	Address        string `json:"diachi"`
	ContactAddress string `json:"diachitt"`
	NationalID     string `json:"cmnd"`
	Birthday       string `json:"ngaysinh"`
	Phone          string `json:"sdt"`
	Gender         int    `json:"gioitinh"`
	Email          string `json:"email"`
	Type           int    `json:"loaikh"`
	Status         int    `json:"trangthai"`
	StaffID        int64  `json:"nvid,omitempty"`
}

// Normalize trims and coerces a record received from the upstream.
func (c *Customer) Normalize() {
	c.FullName = strings.TrimSpace(c.FullName)
	c.Address = strings.TrimSpace(c.Address)
	c.ContactAddress = strings.TrimSpace(c.ContactAddress)
	c.NationalID = strings.TrimSpace(c.NationalID)
	c.Birthday = dateOnly(c.Birthday)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	if c.Status != CustomerActive {
		c.Status = CustomerInactive
	}
}

// StatusText is the label shown in tables.
func (c Customer) StatusText() string {
	if c.Status == CustomerActive {
		return "Active"
	}
	return "Inactive"
}

// CustomerRequest is a purchase wish recorded for a customer.
type CustomerRequest struct {
	TypeID     int64  `json:"loaiid"`
	CustomerID int64  `json:"khid"`
	Location   string `json:"vitri"`
	PriceFrom  Amount `json:"giaf"`
	PriceTo    Amount `json:"giat"`
	LengthFrom Amount `json:"daif"`
	LengthTo   Amount `json:"dait"`
	WidthFrom  Amount `json:"rongf"`
	WidthTo    Amount `json:"rongt"`
}
