package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:00"},
		{name: "valid midnight", input: "00:00"},
		{name: "valid evening", input: "23:59"},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{input: "00:00", want: 0},
		{input: "09:30", want: 570},
		{input: "23:59", want: 1439},
		{input: "24:00", want: 1440},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := TimeString(tt.input).Minutes()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := TimeString("24:01").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = TimeString("9:00").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), got)

	// Ровно конец суток допустим
	got, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	// Выход за границу суток
	_, err = TimeString("23:30").AddMinutes(31)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("17:00"))
	assert.False(t, TimeString("17:00").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))

	assert.True(t, TimeString("17:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("17:00"))
}

func TestTimeString_At(t *testing.T) {
	loc, err := time.LoadLocation("America/Guyana")
	require.NoError(t, err)

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)

	got, err := TimeString("14:45").At(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 14, 45, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}
