package models

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog item belonging to exactly one ProductGroup.
//
// StockValue is derived state: it always equals StockBalance × UnitValue
// rounded half-up to 2 decimal places. Callers never set it directly; the
// services recompute it through RecalcStockValue before every persist.
type Product struct {
	ID               int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	Barcode          string          `json:"barcode" gorm:"type:varchar(50);uniqueIndex;not null"`
	Description      string          `json:"description" gorm:"type:varchar(150);not null"`
	StockBalance     decimal.Decimal `json:"stock_balance" gorm:"type:decimal(18,3);not null"`
	UnitValue        decimal.Decimal `json:"unit_value" gorm:"type:decimal(18,3);not null"`
	StockValue       decimal.Decimal `json:"stock_value" gorm:"type:decimal(18,2);not null"`
	RegistrationDate Date            `json:"registration_date" gorm:"not null"`
	GroupID          int             `json:"group_id" gorm:"not null;index"`
	Group            *ProductGroup   `json:"-" gorm:"foreignKey:GroupID;constraint:OnDelete:RESTRICT"`
	Status           Status          `json:"status" gorm:"not null"`
}

// ComputeStockValue returns balance × unit rounded to 2 decimal places,
// ties rounding half-up (1.005 × 1.005 = 1.010025 → 1.01).
func ComputeStockValue(balance, unit decimal.Decimal) decimal.Decimal {
	return balance.Mul(unit).Round(2)
}

// RecalcStockValue overwrites the derived StockValue from the current
// balance and unit value. The zero decimal stands in for absent operands,
// so a product with no balance or no unit value values out at 0.00.
func (p *Product) RecalcStockValue() {
	p.StockValue = ComputeStockValue(p.StockBalance, p.UnitValue)
}
