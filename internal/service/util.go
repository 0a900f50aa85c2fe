package service

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func entero(n int) string { return strconv.Itoa(n) }

func decimalDeEntero(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// runTx executes fn inside a GORM transaction when db is available, or
// calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
