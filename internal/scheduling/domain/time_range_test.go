package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Flinnker/Gym/internal/scheduling/domain"
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hm(hour, minute int) domain.TimeOfDay {
	return domain.NewTimeOfDay(hour, minute, 0)
}

func mustRange(t *testing.T, start, end domain.TimeOfDay) domain.TimeRange {
	t.Helper()
	r, err := domain.NewTimeRange(start, end)
	require.NoError(t, err)
	return r
}

func TestNewTimeRange(t *testing.T) {
	tests := []struct {
		name    string
		start   domain.TimeOfDay
		end     domain.TimeOfDay
		wantErr error
	}{
		{name: "valid", start: hm(9, 0), end: hm(10, 0)},
		{name: "one second", start: domain.NewTimeOfDay(9, 0, 0), end: domain.NewTimeOfDay(9, 0, 1)},
		{name: "missing start", start: 0, end: hm(10, 0), wantErr: domain.ErrInvalidStart},
		{name: "missing end", start: hm(9, 0), end: 0, wantErr: domain.ErrInvalidEnd},
		{name: "both missing reports start", start: 0, end: 0, wantErr: domain.ErrInvalidStart},
		{name: "end before start", start: hm(11, 0), end: hm(10, 0), wantErr: domain.ErrEndBeforeStart},
		{name: "zero duration", start: hm(10, 0), end: hm(10, 0), wantErr: domain.ErrZeroDuration},
		{name: "past end of day", start: hm(9, 0), end: hm(24, 30), wantErr: domain.ErrInvalidEnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := domain.NewTimeRange(tt.start, tt.end)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, sharedDomain.KindValidation, sharedDomain.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, r.Start())
			assert.Equal(t, tt.end, r.End())
		})
	}
}

func TestNewTimeRange_RoundTripsEveryMinutePair(t *testing.T) {
	for start := 1; start < 24*60; start += 37 {
		for end := start + 1; end < 24*60; end += 53 {
			s := domain.TimeOfDay(time.Duration(start) * time.Minute)
			e := domain.TimeOfDay(time.Duration(end) * time.Minute)
			r, err := domain.NewTimeRange(s, e)
			require.NoError(t, err)
			assert.Equal(t, s, r.Start())
			assert.Equal(t, e, r.End())
		}
	}
}

func TestTimeRange_Overlaps(t *testing.T) {
	nineToTen := mustRange(t, hm(9, 0), hm(10, 0))
	tenToEleven := mustRange(t, hm(10, 0), hm(11, 0))
	halfPastNine := mustRange(t, hm(9, 30), hm(10, 30))
	wholeMorning := mustRange(t, hm(8, 0), hm(12, 0))

	tests := []struct {
		name string
		a, b domain.TimeRange
		want bool
	}{
		{name: "touching boundaries", a: nineToTen, b: tenToEleven, want: false},
		{name: "identical", a: nineToTen, b: nineToTen, want: true},
		{name: "partial", a: nineToTen, b: halfPastNine, want: true},
		{name: "contained", a: wholeMorning, b: halfPastNine, want: true},
		{name: "disjoint", a: nineToTen, b: mustRange(t, hm(14, 0), hm(15, 0)), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestTimeRange_IsAlreadyEnded(t *testing.T) {
	date := domain.NewDate(2000, time.January, 2)
	r := mustRange(t, hm(10, 0), hm(11, 0))

	assert.False(t, r.IsAlreadyEnded(date, time.Date(2000, 1, 2, 10, 59, 59, 0, time.UTC)))
	assert.True(t, r.IsAlreadyEnded(date, time.Date(2000, 1, 2, 11, 0, 0, 0, time.UTC)), "end instant counts as ended")
	assert.True(t, r.IsAlreadyEnded(date, time.Date(2000, 1, 2, 12, 0, 0, 0, time.UTC)))
}

func TestTimeRange_IsPastCancellationDeadline(t *testing.T) {
	date := domain.NewDate(2000, time.January, 2)
	r := mustRange(t, hm(10, 0), hm(11, 0))

	assert.True(t, r.IsPastCancellationDeadline(date, time.Date(2000, 1, 2, 6, 0, 0, 0, time.UTC)))
	assert.False(t, r.IsPastCancellationDeadline(date, time.Date(2000, 1, 2, 4, 0, 0, 0, time.UTC)), "exactly the window is still allowed")
	assert.False(t, r.IsPastCancellationDeadline(date, time.Date(2000, 1, 1, 6, 0, 0, 0, time.UTC)))
}

func TestTimeRange_IsZero(t *testing.T) {
	assert.True(t, domain.TimeRange{}.IsZero())
	assert.False(t, mustRange(t, hm(10, 0), hm(11, 0)).IsZero())

	_, err := json.Marshal(domain.TimeRange{})
	require.NoError(t, err)
}

func TestTimeRange_JSON(t *testing.T) {
	r := mustRange(t, hm(10, 0), hm(11, 30))

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"10:00","end":"11:30"}`, string(data))

	var decoded domain.TimeRange
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, r, decoded)

	err = json.Unmarshal([]byte(`{"start":"11:00","end":"10:00"}`), &decoded)
	assert.ErrorIs(t, err, domain.ErrEndBeforeStart)
}

func TestParseTimeRange(t *testing.T) {
	r, err := domain.ParseTimeRange("18:00", "19:15")
	require.NoError(t, err)
	assert.Equal(t, 75*time.Minute, r.Duration())
	assert.Equal(t, "18:00-19:15", r.String())

	_, err = domain.ParseTimeRange("6pm", "19:00")
	assert.ErrorIs(t, err, domain.ErrInvalidTimeOfDay)
}
