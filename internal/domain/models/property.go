package models

import "strings"

// Property statuses ("tinhtrang").
const (
	PropertyInactive  = 0
	PropertyActive    = 1
	PropertyConsigned = 2
	PropertyDeposited = 3
	PropertySold      = 4
)

// PropertyType is a category of real estate (house, land, apartment...).
type PropertyType struct {
	ID   int64  `json:"loaiid"`
	Name string `json:"tenloai"`
}

// Property is a listed piece of real estate.
type Property struct {
	ID           int64         `json:"bdsid"`
	TypeID       int64         `json:"loaiid"`
	CustomerID   int64         `json:"khid"`
	Status       int           `json:"tinhtrang"`
	Area         Amount        `json:"dientich"`
	UnitPrice    Amount        `json:"dongia"`
	LandUseCode  string        `json:"masoqsdd"`
	Description  string        `json:"mota"`
	Length       Amount        `json:"chieudai"`
	Width        Amount        `json:"chieurong"`
	Commission   Amount        `json:"huehong"`
	Street       string        `json:"tenduong"`
	City         string        `json:"thanhpho"`
	HouseNumber  string        `json:"sonha"`
	District     string        `json:"quan"`
	Ward         string        `json:"phuong"`
	Image        string        `json:"hinhanh,omitempty"`
	FullAddress  string        `json:"diachi,omitempty"`
	PropertyType *PropertyType `json:"loaibds,omitempty"`
	Owner        *Customer     `json:"khachhang,omitempty"`
}

func (p *Property) Normalize() {
	p.LandUseCode = strings.TrimSpace(p.LandUseCode)
	p.Street = strings.TrimSpace(p.Street)
	p.City = strings.TrimSpace(p.City)
	p.HouseNumber = strings.TrimSpace(p.HouseNumber)
	p.District = strings.TrimSpace(p.District)
	p.Ward = strings.TrimSpace(p.Ward)
	p.Area = nonNegative(p.Area)
	p.UnitPrice = nonNegative(p.UnitPrice)
	p.Length = nonNegative(p.Length)
	p.Width = nonNegative(p.Width)
	if p.Owner != nil {
		p.Owner.Normalize()
	}
	if strings.TrimSpace(p.FullAddress) == "" {
		p.FullAddress = p.Address()
	}
}

// Address renders "number street, ward, district, city", skipping blanks.
func (p *Property) Address() string {
	if p == nil {
		return ""
	}
	if a := strings.TrimSpace(p.FullAddress); a != "" {
		return a
	}
	head := joinNonEmpty(" ", p.HouseNumber, p.Street)
	return joinNonEmpty(", ", head, p.Ward, p.District, p.City)
}

// TypeName is the related type name, "" when the relation is absent.
func (p Property) TypeName() string {
	if p.PropertyType == nil {
		return ""
	}
	return p.PropertyType.Name
}

// OwnerName is the related customer's name, "" when the relation is absent.
func (p Property) OwnerName() string {
	if p.Owner == nil {
		return ""
	}
	return p.Owner.FullName
}

func PropertyStatusText(status int) string {
	switch status {
	case PropertyInactive:
		return "Inactive"
	case PropertyActive:
		return "Active"
	case PropertyConsigned:
		return "Consigned"
	case PropertyDeposited:
		return "Deposited"
	case PropertySold:
		return "Sold"
	default:
		return "Unknown"
	}
}
