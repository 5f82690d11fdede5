package models

// Consignment contract statuses.
const (
	ConsignmentCancelled = 0
	ConsignmentActive    = 1
)

// Deposit contract statuses.
const (
	DepositCancelled = 0
	DepositDeposited = 1
	DepositCompleted = 2
)

// Transfer contract statuses.
const (
	TransferCancelled = 0
	TransferCompleted = 1
)

// Consignment is a contract under which the brokerage sells a customer's property.
type Consignment struct {
	ID         int64     `json:"kgid"`
	CustomerID int64     `json:"khid"`
	PropertyID int64     `json:"bdsid"`
	Value      Amount    `json:"giatri"`
	ServiceFee Amount    `json:"chiphidv"`
	StartDate  string    `json:"ngaybatdau"`
	EndDate    string    `json:"ngayketthuc"`
	Status     int       `json:"trangthai"`
	Customer   *Customer `json:"khachhang,omitempty"`
	Property   *Property `json:"batdongsan,omitempty"`
}

func (c *Consignment) Normalize() {
	c.Value = nonNegative(c.Value)
	c.ServiceFee = nonNegative(c.ServiceFee)
	c.StartDate = dateOnly(c.StartDate)
	c.EndDate = dateOnly(c.EndDate)
	normalizeRelations(c.Customer, c.Property)
}

func (c Consignment) CustomerName() string    { return customerName(c.Customer) }
func (c Consignment) PropertyAddress() string { return c.Property.Address() }

func ConsignmentStatusText(status int) string {
	if status == ConsignmentActive {
		return "Active"
	}
	return "Cancelled"
}

// Deposit is a contract recording a buyer's deposit on a property.
type Deposit struct {
	ID         int64     `json:"dcid"`
	CustomerID int64     `json:"khid"`
	PropertyID int64     `json:"bdsid"`
	Value      Amount    `json:"giatri"`
	CreatedOn  string    `json:"ngaylaphd"`
	ExpiresOn  string    `json:"ngayhethan"`
	Status     int       `json:"tinhtrang"`
	Customer   *Customer `json:"khachhang,omitempty"`
	Property   *Property `json:"batdongsan,omitempty"`
}

func (d *Deposit) Normalize() {
	d.Value = nonNegative(d.Value)
	d.CreatedOn = dateOnly(d.CreatedOn)
	d.ExpiresOn = dateOnly(d.ExpiresOn)
	normalizeRelations(d.Customer, d.Property)
}

func (d Deposit) CustomerName() string    { return customerName(d.Customer) }
func (d Deposit) PropertyAddress() string { return d.Property.Address() }

func DepositStatusText(status int) string {
	switch status {
	case DepositCancelled:
		return "Cancelled"
	case DepositDeposited:
		return "Deposited"
	case DepositCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Transfer is the final sale contract, built on a deposit.
type Transfer struct {
	ID         int64     `json:"cnid"`
	DepositID  int64     `json:"dcid"`
	CustomerID int64     `json:"khid"`
	PropertyID int64     `json:"bdsid"`
	Value      Amount    `json:"giatri"`
	Deposited  Amount    `json:"tiendatcoc"`
	CreatedOn  string    `json:"ngaylap"`
	Status     int       `json:"trangthai"`
	Customer   *Customer `json:"khachhang,omitempty"`
	Property   *Property `json:"batdongsan,omitempty"`
	Deposit    *Deposit  `json:"hddatcoc,omitempty"`
}

func (t *Transfer) Normalize() {
	t.Value = nonNegative(t.Value)
	t.Deposited = nonNegative(t.Deposited)
	t.CreatedOn = dateOnly(t.CreatedOn)
	normalizeRelations(t.Customer, t.Property)
	if t.Deposit != nil {
		t.Deposit.Normalize()
	}
}

func (t Transfer) CustomerName() string    { return customerName(t.Customer) }
func (t Transfer) PropertyAddress() string { return t.Property.Address() }

func TransferStatusText(status int) string {
	if status == TransferCompleted {
		return "Completed"
	}
	return "Cancelled"
}

// Remaining is the amount still due after the deposit.
func (t Transfer) Remaining() Amount {
	if t.Deposited >= t.Value {
		return 0
	}
	return t.Value - t.Deposited
}

func customerName(c *Customer) string {
	if c == nil {
		return ""
	}
	return c.FullName
}

func normalizeRelations(c *Customer, p *Property) {
	if c != nil {
		c.Normalize()
	}
	if p != nil {
		p.Normalize()
	}
}
