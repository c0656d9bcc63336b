package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2030-02-28 ")
	require.NoError(t, err)
	assert.Equal(t, "2030-02-28", d.String())

	_, err = ParseDate("28.02.2030")
	assert.Error(t, err)
}

func TestDate_DaysUntil(t *testing.T) {
	from := NewDate(2030, time.February, 27)
	to := NewDate(2030, time.March, 2)
	assert.Equal(t, 3, from.DaysUntil(to))
	assert.True(t, from.Before(to))
	assert.True(t, to.After(from))
}

func TestDateOf_DropsClock(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	d := DateOf(time.Date(2030, time.June, 1, 23, 59, 0, 0, loc))
	assert.Equal(t, NewDate(2030, time.June, 1), d)
}

func TestDate_JSON(t *testing.T) {
	b := Booking{DateFrom: NewDate(2030, time.January, 1), DateTo: NewDate(2030, time.January, 4), Price: 1500}

	raw, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"date_from":"2030-01-01"`)

	var back Booking
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, 3, back.Nights())
	assert.Equal(t, 4500, back.TotalCost())

	assert.Error(t, json.Unmarshal([]byte(`{"date_from":"soon"}`), &back))
}

func TestDate_DaysUntilLongRange(t *testing.T) {
	from := NewDate(2030, time.January, 1)
	to := NewDate(2400, time.January, 1)
	assert.Equal(t, 135139, from.DaysUntil(to))

	b := Booking{DateFrom: from, DateTo: to, Price: 1_000_000_000}
	assert.Equal(t, 135139, b.Nights())
	assert.Equal(t, 135139*1_000_000_000, b.TotalCost())
}
