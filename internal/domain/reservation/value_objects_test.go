//go:build unit

package reservation_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablebook/internal/domain/reservation"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		input   string
		want    reservation.TimeOfDay
		wantErr bool
	}{
		{input: "00:00", want: 0},
		{input: "11:30", want: 11*60 + 30},
		{input: "23:59", want: 23*60 + 59},
		{input: "9:05", want: 9*60 + 5},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "noon", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := reservation.ParseTimeOfDay(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, reservation.ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "09:05", reservation.TimeOfDay(9*60+5).String())
	assert.Equal(t, "18:00", reservation.TimeOfDay(18*60).String())
	assert.Equal(t, "00:00", reservation.TimeOfDay(0).String())
}

func TestTimeWindowOverlaps(t *testing.T) {
	window := func(start string, minutes int) reservation.TimeWindow {
		tod, err := reservation.ParseTimeOfDay(start)
		require.NoError(t, err)
		w, err := reservation.NewTimeWindow(tod, minutes)
		require.NoError(t, err)
		return w
	}

	cases := []struct {
		name string
		a, b reservation.TimeWindow
		want bool
	}{
		{name: "identical", a: window("18:00", 90), b: window("18:00", 90), want: true},
		{name: "partial overlap", a: window("18:00", 90), b: window("19:00", 90), want: true},
		{name: "contained", a: window("18:00", 120), b: window("18:30", 30), want: true},
		{name: "back to back", a: window("18:00", 90), b: window("19:30", 90), want: false},
		{name: "disjoint", a: window("11:00", 60), b: window("19:00", 60), want: false},
		{name: "one minute overlap", a: window("18:00", 91), b: window("19:30", 90), want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestTimeWindowRejectsNonPositiveDuration(t *testing.T) {
	_, err := reservation.NewTimeWindow(reservation.TimeOfDay(18*60), 0)
	require.ErrorIs(t, err, reservation.ErrInvalidDuration)

	_, err = reservation.NewTimeWindow(reservation.TimeOfDay(18*60), -30)
	require.ErrorIs(t, err, reservation.ErrInvalidDuration)
}

func TestParseDate(t *testing.T) {
	d, err := reservation.ParseDate("2026-09-02")
	require.NoError(t, err)
	assert.Equal(t, reservation.Date{Year: 2026, Month: time.September, Day: 2}, d)
	assert.Equal(t, "2026-09-02", d.String())

	_, err = reservation.ParseDate("02/09/2026")
	require.ErrorIs(t, err, reservation.ErrInvalidDate)

	_, err = reservation.ParseDate("2026-02-30")
	require.ErrorIs(t, err, reservation.ErrInvalidDate)
}

func TestDateAt(t *testing.T) {
	d := reservation.Date{Year: 2026, Month: time.September, Day: 2}
	at := d.At(reservation.TimeOfDay(18*60+30), time.UTC)
	assert.Equal(t, time.Date(2026, time.September, 2, 18, 30, 0, 0, time.UTC), at)
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := reservation.Date{Year: 2026, Month: time.September, Day: 2}
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-09-02"`, string(raw))

	var back reservation.Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, d.Equal(back))
}
