package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"milkledger/internal/domain/farm"
)

func testFlows() DayFlows {
	return DayFlows{
		Farm: []farm.FarmRecord{
			{Date: "2024-03-01", TotalQty: 10},
			{Date: "2024-03-02", TotalQty: 12, OpeningStock: farm.ManualStock(50)},
			{Date: "2024-03-03", TotalQty: 6},
		},
		Purchased: map[string]float64{
			"2024-03-01": 5,
			"2024-03-03": 2,
		},
		Sold: map[string]float64{
			"2024-03-01": 8,
			"2024-03-02": 4,
		},
	}
}

func TestPreviousStockWalksFromAnchor(t *testing.T) {
	flows := testFlows()

	// Anchor is 03-02 with pinned 50. The walk covers the anchor day and
	// 03-03: 50 + (12 - 4) + (6 + 2) = 66.
	assert.Equal(t, float64(66), PreviousStock(flows, "2024-03-04"))
}

func TestPreviousStockIgnoresOwnDayPin(t *testing.T) {
	flows := testFlows()

	// The pin on 03-02 itself does not anchor 03-02's carry-over; only
	// strictly earlier days count: 0 + 10 + 5 - 8 = 7.
	assert.Equal(t, float64(7), PreviousStock(flows, "2024-03-02"))
}

func TestPreviousStockEmptyHistory(t *testing.T) {
	assert.Zero(t, PreviousStock(DayFlows{}, "2024-03-04"))
}

func TestPreviousStockRevertedPinIsNoAnchor(t *testing.T) {
	flows := DayFlows{
		Farm: []farm.FarmRecord{
			{Date: "2024-03-01", TotalQty: 10, OpeningStock: farm.AutoStock()},
			{Date: "2024-03-02", TotalQty: 5},
		},
	}

	// Auto is a revert, not a pin, so the walk starts from zero.
	assert.Equal(t, float64(15), PreviousStock(flows, "2024-03-03"))
}

func TestSnapshotManualOpeningReplacesCarryOver(t *testing.T) {
	flows := testFlows()

	s := Snapshot(flows, "2024-03-02")

	assert.Equal(t, float64(7), s.PreviousStock)
	assert.True(t, s.ManualOpening)
	assert.Equal(t, float64(50), s.OpeningStock)
	assert.Equal(t, float64(62), s.TotalAvailable) // 50 + 12 + 0
	assert.Equal(t, float64(4), s.Sold)
	assert.Equal(t, float64(58), s.NetRemaining)
}

func TestSnapshotDerivedOpening(t *testing.T) {
	flows := testFlows()

	s := Snapshot(flows, "2024-03-03")

	assert.False(t, s.ManualOpening)
	assert.Equal(t, float64(58), s.OpeningStock) // 50 + 12 - 4
	assert.Equal(t, float64(66), s.TotalAvailable)
	assert.Equal(t, float64(66), s.NetRemaining)
}

func TestSnapshotNetRemainingCanGoNegative(t *testing.T) {
	flows := DayFlows{
		Farm: []farm.FarmRecord{{Date: "2024-03-01", TotalQty: 5}},
		Sold: map[string]float64{"2024-03-01": 9},
	}

	s := Snapshot(flows, "2024-03-01")

	// Oversold days are reported as-is, never clamped to zero.
	assert.Equal(t, float64(-4), s.NetRemaining)
}

func TestSnapshotDayWithoutFarmRecord(t *testing.T) {
	flows := testFlows()

	s := Snapshot(flows, "2024-03-04")

	assert.Equal(t, float64(66), s.PreviousStock)
	assert.Equal(t, float64(66), s.OpeningStock)
	assert.Zero(t, s.FarmProduced)
	assert.Equal(t, float64(66), s.TotalAvailable)
	assert.Equal(t, float64(66), s.NetRemaining)
}
