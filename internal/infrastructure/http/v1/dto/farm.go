package dto

import (
	"milkledger/internal/domain/farm"
)

// UpsertFarmRequest for recording a day's own production.
type UpsertFarmRequest struct {
	Date       string  `json:"date" binding:"required"`
	MorningQty float64 `json:"morningQty" binding:"gte=0"`
	EveningQty float64 `json:"eveningQty" binding:"gte=0"`
}

// OpeningStockRequest pins or reverts a day's opening stock: a number
// pins, an explicit null reverts to the derived value.
type OpeningStockRequest struct {
	Date         string             `json:"date" binding:"required"`
	OpeningStock farm.StockOverride `json:"openingStock"`
}
