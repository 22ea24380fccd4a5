package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayTotal holds the sum of all entries recorded on one calendar date.
type DayTotal struct {
	Date    time.Time
	Entries int
	Total   decimal.Decimal
}
