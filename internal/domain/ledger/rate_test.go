package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveRateSnapshotWins(t *testing.T) {
	snapshot := decimal.NewFromInt(180)
	r := MilkRecord{TotalQty: 10, TotalPrice: 2500, PricePerLiter: &snapshot}

	got := EffectiveRate(r, decimal.NewFromInt(220))

	// The snapshot beats both the implied rate (250) and the global rate.
	assert.True(t, got.Equal(snapshot))
}

func TestEffectiveRateImplied(t *testing.T) {
	r := MilkRecord{TotalQty: 8, TotalPrice: 2000}

	got := EffectiveRate(r, decimal.NewFromInt(220))

	assert.True(t, got.Equal(decimal.NewFromInt(250)))
}

func TestEffectiveRateGlobalFallback(t *testing.T) {
	global := decimal.NewFromInt(220)

	// No snapshot and no billing yet.
	assert.True(t, EffectiveRate(MilkRecord{TotalQty: 8}, global).Equal(global))
	// Zero quantity cannot imply a rate.
	assert.True(t, EffectiveRate(MilkRecord{TotalPrice: 2000}, global).Equal(global))
}

func TestEffectiveRateStableAcrossGlobalChange(t *testing.T) {
	snapshot := decimal.NewFromInt(180)
	r := MilkRecord{TotalQty: 10, TotalPrice: 1800, PricePerLiter: &snapshot}

	before := EffectiveRate(r, decimal.NewFromInt(200))
	after := EffectiveRate(r, decimal.NewFromInt(999))

	assert.True(t, before.Equal(after))
}

func TestAmountRounding(t *testing.T) {
	// Halves round away from zero at whole currency units.
	assert.Equal(t, int64(1025), Amount(4.1, decimal.NewFromInt(250)))
	assert.Equal(t, int64(113), Amount(0.5, decimal.NewFromInt(225)))
	assert.Equal(t, int64(0), Amount(0, decimal.NewFromInt(250)))
}

func TestRepriceStampsSnapshot(t *testing.T) {
	r := MilkRecord{TotalQty: 7.5}

	r.Reprice(decimal.NewFromInt(240))

	assert.NotNil(t, r.PricePerLiter)
	assert.True(t, r.PricePerLiter.Equal(decimal.NewFromInt(240)))
	assert.Equal(t, int64(1800), r.TotalPrice)
}
