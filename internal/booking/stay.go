// Package booking holds the stay arithmetic shared by direct reservations,
// basket items and availability search.
package booking

import (
	"errors"
	"math"
	"time"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// ErrInvalidStay is returned when check-out is not after check-in.
var ErrInvalidStay = errors.New("check-out date must be after check-in date")

const day = 24 * time.Hour

// Nights returns ceil((out-in)/24h).  A stay of zero or fewer nights is rejected.
func Nights(in, out model.Date) (int, error) {
	n := int(math.Ceil(float64(out.Sub(in.Time)) / float64(day)))
	if n <= 0 {
		return 0, ErrInvalidStay
	}
	return n, nil
}

// Quote is the price of a stay: nightly price times nights.
type Quote struct {
	Nights int
	Total  model.Money
}

// QuoteStay validates the range and prices it at the given nightly rate.
func QuoteStay(nightly model.Money, in, out model.Date) (Quote, error) {
	n, err := Nights(in, out)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Nights: n, Total: nightly.Mul(n)}, nil
}
