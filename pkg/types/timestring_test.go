package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	// Часы без ведущего нуля нормализуются
	ts, err = NewTimeStringFromString("9:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("10:65")
	assert.Error(t, err)
}

func TestTimeStringMinutes(t *testing.T) {
	ts := TimeString("10:45")
	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 645, minutes)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	result, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), result)

	result, err = ts.AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), result)

	// За границы суток не выходим
	_, err = ts.AddMinutes(14 * 60)
	assert.Error(t, err)
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("11:00").IsAfter("10:30"))
}

func TestTimeStringAt(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	at, err := TimeString("14:30").At(date, loc)
	require.NoError(t, err)

	assert.Equal(t, 2026, at.Year())
	assert.Equal(t, time.September, at.Month())
	assert.Equal(t, 15, at.Day())
	assert.Equal(t, 14, at.Hour())
	assert.Equal(t, 30, at.Minute())
	assert.Equal(t, loc, at.Location())
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan([]byte("11:15:00")))
	assert.Equal(t, TimeString("11:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 9, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:45"), ts)
}

func TestTimeStringValue(t *testing.T) {
	value, err := TimeString("10:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:30:00", value)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(645)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:45"), ts)

	_, err = NewTimeStringFromMinutes(24 * 60)
	assert.Error(t, err)

	_, err = NewTimeStringFromMinutes(-1)
	assert.Error(t, err)
}
