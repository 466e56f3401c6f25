package models

import (
	"time"
)

// Role is the closed set of account roles. Authorization points switch
// on it exhaustively instead of comparing raw strings.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSales      Role = "sales"
	RoleProduction Role = "production"
)

// ParseRole validates a role value coming from a form or session.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleSales, RoleProduction:
		return Role(s), true
	}
	return "", false
}

// Order status values.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

// Urgency colors derived from days until dispatch.
const (
	ColorRed    = "red"
	ColorYellow = "yellow"
	ColorGreen  = "green"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:200;not null" json:"-"` // bcrypt hash
	Role     Role   `gorm:"size:50;not null" json:"role"`
}

type Order struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	OrderNumber   string     `gorm:"size:50;uniqueIndex" json:"order_number"`
	CustomerName  string     `gorm:"size:200" json:"customer_name"`
	PlaceOfSupply string     `gorm:"size:200" json:"place_of_supply"`
	OrderDate     time.Time  `json:"order_date"`
	DispatchDate  time.Time  `json:"dispatch_date"`
	DeliveryTime  string     `gorm:"size:50" json:"delivery_time"`
	SalesPerson   string     `gorm:"size:100" json:"sales_person"`
	Status        string     `gorm:"size:50;default:Pending" json:"status"`
	CompletedBy   string     `gorm:"size:100" json:"completed_by"`
	CompletedTime *time.Time `json:"completed_time"`
}

type OrderItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderID     uint   `gorm:"index;not null" json:"order_id"`
	ProductName string `gorm:"size:200" json:"product_name"`
	ProductCode string `gorm:"size:100" json:"product_code"`
	Quantity    int    `json:"quantity"`
}

// civilDate truncates a timestamp to its calendar date in UTC so day
// arithmetic is unaffected by the time-of-day or zone either value was
// stored with.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the whole calendar days from today until the
// dispatch date. Negative once the dispatch date has passed.
func DaysUntil(dispatch, today time.Time) int {
	return int(civilDate(dispatch).Sub(civilDate(today)).Hours() / 24)
}

// UrgencyColor classifies the order by days until dispatch: 3 or fewer
// days out is red, 4 to 6 is yellow, beyond that green.
func (o *Order) UrgencyColor(today time.Time) string {
	diff := DaysUntil(o.DispatchDate, today)
	switch {
	case diff <= 3:
		return ColorRed
	case diff <= 6:
		return ColorYellow
	default:
		return ColorGreen
	}
}
