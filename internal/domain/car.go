package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CarCategory string

const (
	CarCategoryEconomy CarCategory = "ECONOMY"
	CarCategorySedan   CarCategory = "SEDAN"
	CarCategorySUV     CarCategory = "SUV"
	CarCategoryVan     CarCategory = "VAN"
	CarCategoryLuxury  CarCategory = "LUXURY"
)

type CarStatus string

const (
	CarStatusAvailable   CarStatus = "AVAILABLE"
	CarStatusRented      CarStatus = "RENTED"
	CarStatusMaintenance CarStatus = "MAINTENANCE"
	CarStatusRetired     CarStatus = "RETIRED"
)

type Car struct {
	ID           int32       `json:"id"`
	Make         string      `json:"make"`
	Model        string      `json:"model"`
	Year         int         `json:"year"`
	Category     CarCategory `json:"category"`
	LicensePlate string      `json:"license_plate"`
	// DailyPrice is the car's native list price per rental day; pricing
	// strategies modify it, they never mutate it.
	DailyPrice decimal.Decimal `json:"daily_price"`
	Currency   string          `json:"currency"`
	Status     CarStatus       `json:"status"`
	Deleted    bool            `json:"deleted"`
	CreatedOn  time.Time       `json:"created_on"`
	UpdatedOn  time.Time       `json:"updated_on"`
}
