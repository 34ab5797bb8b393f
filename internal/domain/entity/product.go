package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Name es único en todo el
// catálogo; Price es no negativo con máximo dos decimales.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
