package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-booking/internal/model"
)

func date(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestQuoteStayDeluxeKingThreeNights(t *testing.T) {
	q, err := QuoteStay(model.FromFloat(199), date(t, "2025-01-01"), date(t, "2025-01-04"))
	require.NoError(t, err)
	assert.Equal(t, 3, q.Nights)
	assert.Equal(t, model.FromFloat(597), q.Total)
}

func TestNights(t *testing.T) {
	cases := []struct {
		name    string
		in, out string
		want    int
		wantErr bool
	}{
		{"one night", "2025-03-01", "2025-03-02", 1, false},
		{"across month end", "2025-01-30", "2025-02-02", 3, false},
		{"same day", "2025-03-01", "2025-03-01", 0, true},
		{"reversed", "2025-03-05", "2025-03-01", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := Nights(date(t, tc.in), date(t, tc.out))
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, n)
		})
	}
}

func TestNightsRoundsPartialDayUp(t *testing.T) {
	in := model.Date{Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	out := model.Date{Time: time.Date(2025, 1, 2, 6, 0, 0, 0, time.UTC)}
	n, err := Nights(in, out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
