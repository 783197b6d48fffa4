package farm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockOverrideStates(t *testing.T) {
	var unset StockOverride
	assert.False(t, unset.IsSet())
	_, ok := unset.Manual()
	assert.False(t, ok)

	auto := AutoStock()
	assert.True(t, auto.IsSet())
	_, ok = auto.Manual()
	assert.False(t, ok)

	manual := ManualStock(50)
	assert.True(t, manual.IsSet())
	v, ok := manual.Manual()
	assert.True(t, ok)
	assert.Equal(t, float64(50), v)
}

func TestStockOverrideColumns(t *testing.T) {
	cases := []StockOverride{{}, AutoStock(), ManualStock(12.5)}
	for _, o := range cases {
		value, set := o.Columns()
		assert.Equal(t, o, OverrideFromColumns(value, set))
	}
}

func TestStockOverrideJSON(t *testing.T) {
	type payload struct {
		OpeningStock StockOverride `json:"openingStock"`
	}

	// A number decodes as a manual pin.
	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"openingStock": 42}`), &p))
	v, ok := p.OpeningStock.Manual()
	require.True(t, ok)
	assert.Equal(t, float64(42), v)

	// Explicit null decodes as a revert.
	p = payload{}
	require.NoError(t, json.Unmarshal([]byte(`{"openingStock": null}`), &p))
	assert.True(t, p.OpeningStock.IsSet())
	_, ok = p.OpeningStock.Manual()
	assert.False(t, ok)

	// An absent field leaves the override untouched.
	p = payload{}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
	assert.False(t, p.OpeningStock.IsSet())

	// Manual values survive a round trip.
	out, err := json.Marshal(payload{OpeningStock: ManualStock(7.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"openingStock": 7.5}`, string(out))

	out, err = json.Marshal(payload{OpeningStock: AutoStock()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"openingStock": null}`, string(out))
}

func TestFarmRecordValidate(t *testing.T) {
	r := &FarmRecord{Date: "2024-03-10", MorningQty: 3, EveningQty: 2, TotalQty: 5}
	assert.NoError(t, r.Validate(context.Background()))

	bad := &FarmRecord{Date: "2024-3-10", TotalQty: 0}
	assert.Error(t, bad.Validate(context.Background()))

	neg := &FarmRecord{Date: "2024-03-10", MorningQty: -1, TotalQty: -1}
	assert.Error(t, neg.Validate(context.Background()))

	mismatch := &FarmRecord{Date: "2024-03-10", MorningQty: 3, EveningQty: 2, TotalQty: 6}
	assert.Error(t, mismatch.Validate(context.Background()))

	negStock := &FarmRecord{Date: "2024-03-10", OpeningStock: ManualStock(-5)}
	assert.Error(t, negStock.Validate(context.Background()))
}
