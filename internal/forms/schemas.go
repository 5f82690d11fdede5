package forms

import (
	"github.com/go-playground/validator/v10"

	"backoffice/internal/domain/models"
)

type Login struct {
	Account  string `json:"taikhoan" validate:"required" msg:"Account is required"`
	Password string `json:"matkhau" validate:"min=6" msg:"Password must have at least 6 characters"`
}

type Customer struct {
	FullName       string `json:"hoten" validate:"required" msg:"Name is required"`
	Address        string `json:"diachi" validate:"required" msg:"Address is required"`
	ContactAddress string `json:"diachitt" validate:"required" msg:"Address is required"`
	NationalID     string `json:"cmnd" validate:"len=12" msg:"National ID must have 12 characters"`
	Birthday       string `json:"ngaysinh" validate:"isodate" msg:"Invalid birthday"`
	Phone          string `json:"sdt" validate:"phone_vn" msg:"Invalid phone number"`
	Gender         *int   `json:"gioitinh" validate:"required,oneof=0 1" msg:"Gender must be male (1) or female (0)"`
	Email          string `json:"email" validate:"email" msg:"Invalid email"`
	Type           *int   `json:"loaikh,omitempty" validate:"omitempty,oneof=0 1" msg:"Invalid customer type"`
	Status         *int   `json:"trangthai,omitempty" validate:"omitempty,oneof=0 1" msg:"Invalid status"`
}

// CustomerRequest records what a customer wants to buy.
type CustomerRequest struct {
	TypeID     int64         `json:"loaiid" validate:"min=1" msg:"Invalid property type"`
	CustomerID int64         `json:"khid" validate:"min=1" msg:"Customer is required"`
	Location   string        `json:"vitri" validate:"required" msg:"Location is required"`
	PriceFrom  models.Amount `json:"giaf" validate:"gte=1" msg:"Invalid price"`
	PriceTo    models.Amount `json:"giat" validate:"gte=1,gtefield=PriceFrom" msg:"Invalid price"`
	LengthFrom models.Amount `json:"daif" validate:"gte=1" msg:"Invalid size"`
	LengthTo   models.Amount `json:"dait" validate:"gte=1,gtefield=LengthFrom" msg:"Invalid size"`
	WidthFrom  models.Amount `json:"rongf" validate:"gte=1" msg:"Invalid size"`
	WidthTo    models.Amount `json:"rongt" validate:"gte=1,gtefield=WidthFrom" msg:"Invalid size"`
}

// Estate is a property listing. Images are referenced by URL only.
type Estate struct {
	TypeID      int64         `json:"loaiid" validate:"min=1" msg:"Invalid property type"`
	CustomerID  int64         `json:"khid" validate:"min=1" msg:"Owner is required"`
	Status      *int          `json:"tinhtrang,omitempty" validate:"omitempty,min=0,max=4" msg:"Invalid status"`
	Image       string        `json:"hinhanh,omitempty" validate:"omitempty,url" msg:"Invalid image URL"`
	Area        models.Amount `json:"dientich" validate:"gte=1" msg:"Invalid size"`
	UnitPrice   models.Amount `json:"dongia" validate:"gte=1" msg:"Invalid price"`
	LandUseCode string        `json:"masoqsdd" validate:"required" msg:"Land use certificate number is required"`
	Description string        `json:"mota,omitempty"`
	Length      models.Amount `json:"chieudai" validate:"gte=1" msg:"Invalid size"`
	Width       models.Amount `json:"chieurong" validate:"gte=1" msg:"Invalid size"`
	Commission  models.Amount `json:"huehong" validate:"gte=1" msg:"Invalid commission"`
	Street      string        `json:"tenduong" validate:"required" msg:"Address is required"`
	City        string        `json:"thanhpho" validate:"required" msg:"Address is required"`
	HouseNumber string        `json:"sonha" validate:"required" msg:"Address is required"`
	District    string        `json:"quan" validate:"required" msg:"Address is required"`
	Ward        string        `json:"phuong" validate:"required" msg:"Address is required"`
}

type Consignment struct {
	CustomerID int64         `json:"khid" validate:"min=1" msg:"Customer does not exist"`
	PropertyID int64         `json:"bdsid" validate:"min=1" msg:"Property does not exist"`
	Value      models.Amount `json:"giatri" validate:"gte=1" msg:"Invalid contract value"`
	ServiceFee models.Amount `json:"chiphidv" validate:"gte=1000" msg:"Service fee must be at least 1000"`
	StartDate  string        `json:"ngaybatdau" validate:"isodate,notpast" msg:"Invalid date"`
	EndDate    string        `json:"ngayketthuc" validate:"isodate,notpast" msg:"Invalid date"`
	Status     *int          `json:"trangthai,omitempty" validate:"omitempty,oneof=0 1" msg:"Invalid status"`
}

// consignmentPeriod rejects contracts that end before they start.
func consignmentPeriod(sl validator.StructLevel) {
	c := sl.Current().Interface().(Consignment)
	start, err1 := parseDate(c.StartDate)
	end, err2 := parseDate(c.EndDate)
	if err1 != nil || err2 != nil {
		return
	}
	if end.Before(start) {
		sl.ReportError(c.EndDate, "ngayketthuc", "EndDate", "gtefield", "ngaybatdau")
	}
}

type Deposit struct {
	CustomerID int64         `json:"khid" validate:"min=1" msg:"Customer does not exist"`
	PropertyID int64         `json:"bdsid" validate:"min=1" msg:"Property does not exist"`
	Value      models.Amount `json:"giatri" validate:"gte=1" msg:"Invalid contract value"`
	ExpiresOn  string        `json:"ngayhethan" validate:"isodate,future" msg:"Invalid date"`
}

type Transfer struct {
	DepositID int64         `json:"dcid" validate:"min=1" msg:"Deposit contract does not exist"`
	Value     models.Amount `json:"giatri" validate:"gte=1" msg:"Invalid contract value"`
}

// Staff is the admin create form.
type Staff struct {
	Name     string `json:"tennv" validate:"required" msg:"Name is required"`
	Account  string `json:"taikhoan" validate:"required" msg:"Account is required"`
	Password string `json:"matkhau" validate:"min=6" msg:"Password must have at least 6 characters"`
	Address  string `json:"diachi" validate:"required" msg:"Address is required"`
	Phone    string `json:"sdt" validate:"phone_vn" msg:"Invalid phone number"`
	Birthday string `json:"ngaysinh" validate:"isodate" msg:"Invalid birthday"`
	Gender   *int   `json:"gioitinh" validate:"required,oneof=0 1" msg:"Gender must be male (1) or female (0)"`
	Email    string `json:"email" validate:"email" msg:"Invalid email"`
	Role     *int   `json:"quyen" validate:"required,oneof=0 1" msg:"Invalid role"`
	Status   *int   `json:"trangthai" validate:"required,oneof=0 1" msg:"Invalid status"`
}

// StaffUpdate is the admin edit form; an empty password keeps the old one.
type StaffUpdate struct {
	Name     string `json:"tennv" validate:"required" msg:"Name is required"`
	Account  string `json:"taikhoan" validate:"required" msg:"Account is required"`
	Password string `json:"matkhau,omitempty" validate:"omitempty,min=6" msg:"Password must have at least 6 characters"`
	Address  string `json:"diachi" validate:"required" msg:"Address is required"`
	Phone    string `json:"sdt" validate:"phone_vn" msg:"Invalid phone number"`
	Birthday string `json:"ngaysinh" validate:"isodate" msg:"Invalid birthday"`
	Gender   *int   `json:"gioitinh" validate:"required,oneof=0 1" msg:"Gender must be male (1) or female (0)"`
	Email    string `json:"email" validate:"email" msg:"Invalid email"`
	Role     *int   `json:"quyen" validate:"required,oneof=0 1" msg:"Invalid role"`
	Status   *int   `json:"trangthai" validate:"required,oneof=0 1" msg:"Invalid status"`
}

// Profile is the self-service edit form: no role or status.
type Profile struct {
	Name     string `json:"tennv" validate:"required" msg:"Name is required"`
	Account  string `json:"taikhoan" validate:"required" msg:"Account is required"`
	Password string `json:"matkhau,omitempty" validate:"omitempty,min=6" msg:"Password must have at least 6 characters"`
	Address  string `json:"diachi" validate:"required" msg:"Address is required"`
	Phone    string `json:"sdt" validate:"phone_vn" msg:"Invalid phone number"`
	Birthday string `json:"ngaysinh" validate:"isodate" msg:"Invalid birthday"`
	Gender   *int   `json:"gioitinh" validate:"required,oneof=0 1" msg:"Gender must be male (1) or female (0)"`
	Email    string `json:"email" validate:"email" msg:"Invalid email"`
}

type ChangePassword struct {
	Old string `json:"matkhaucu" validate:"min=6" msg:"Password must have at least 6 characters"`
	New string `json:"matkhaumoi" validate:"min=6,nefield=Old" msg:"New password must have at least 6 characters and differ from the old one"`
}
