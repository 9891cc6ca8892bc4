package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:15", want: 555},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "9:15", wantErr: true},
		{in: "09-15", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
		{in: "09:15:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMinutes(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMinutes_RejectsOutOfRange(t *testing.T) {
	_, err := FormatMinutes(-1)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)

	_, err = FormatMinutes(MinutesPerDay)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)
}

func TestParseFormat_RoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		s, err := FormatMinutes(m)
		require.NoError(t, err)

		back, err := ParseMinutes(s)
		require.NoError(t, err)
		require.Equal(t, m, back, "round trip for %s", s)
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("10:45")

	got, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), got)

	_, err = TimeString("23:50").AddMinutes(15)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:30").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:01").IsAfter("10:00"))
}

func TestTimeString_OnDate(t *testing.T) {
	loc := time.FixedZone("local", 3*60*60)
	date := time.Date(2026, 3, 4, 0, 0, 0, 0, loc)

	got := TimeString("14:20").OnDate(date)
	assert.Equal(t, time.Date(2026, 3, 4, 14, 20, 0, 0, loc), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:05")))
	assert.Equal(t, TimeString("08:05"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 17, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("17:45"), ts)

	assert.Error(t, ts.Scan(42))
}
