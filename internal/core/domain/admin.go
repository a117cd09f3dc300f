package domain

import "github.com/shopspring/decimal"

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type AdminSession struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s AdminSession) IsAdmin() bool {
	return s.Role == RoleAdmin
}

type Dashboard struct {
	TotalProducts  int             `json:"totalProducts"`
	Categories     int             `json:"categories"`
	LowStock       []Product       `json:"lowStock"`
	InventoryValue decimal.Decimal `json:"inventoryValue"`
	LastOrder      *Order          `json:"lastOrder,omitempty"`
}

func NewDashboard(ps []Product, last *Order) Dashboard {
	d := Dashboard{
		TotalProducts:  len(ps),
		Categories:     len(Categories(ps)),
		LowStock:       []Product{},
		InventoryValue: decimal.Zero,
		LastOrder:      last,
	}
	for _, p := range ps {
		if p.LowStock() {
			d.LowStock = append(d.LowStock, p)
		}
		stock := decimal.NewFromInt(int64(p.Stock))
		d.InventoryValue = d.InventoryValue.Add(p.Price.Mul(stock))
	}
	return d
}
