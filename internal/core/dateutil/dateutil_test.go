package dateutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDay(t *testing.T) {
	assert.True(t, IsDay("2024-03-15"))
	assert.True(t, IsDay("2024-02-29")) // leap year
	assert.False(t, IsDay("2023-02-29"))
	assert.False(t, IsDay("2024-3-15"))
	assert.False(t, IsDay("2024-03-32"))
	assert.False(t, IsDay("2024-03"))
	assert.False(t, IsDay(""))
}

func TestIsMonth(t *testing.T) {
	assert.True(t, IsMonth("2024-03"))
	assert.False(t, IsMonth("2024-13"))
	assert.False(t, IsMonth("2024-3"))
	assert.False(t, IsMonth("2024-03-15"))
}

func TestNextDay(t *testing.T) {
	assert.Equal(t, "2024-03-01", NextDay("2024-02-29"))
	assert.Equal(t, "2025-01-01", NextDay("2024-12-31"))
	assert.Equal(t, "2024-03-16", NextDay("2024-03-15"))
}

func TestNextMonth(t *testing.T) {
	assert.Equal(t, "2024-04", NextMonth("2024-03"))
	assert.Equal(t, "2025-01", NextMonth("2024-12"))
}

func TestMonthBounds(t *testing.T) {
	assert.Equal(t, "2024-03", MonthOf("2024-03-15"))
	assert.Equal(t, "2024-03-01", MonthStart("2024-03"))
	assert.Equal(t, "2024-03-31", MonthEndBound("2024-03"))

	// The -31 bound is inclusive for every real day of the month, even in
	// months that do not have 31 days.
	assert.True(t, "2024-02-29" <= MonthEndBound("2024-02"))
	assert.True(t, "2024-03-01" > MonthEndBound("2024-02"))
}
