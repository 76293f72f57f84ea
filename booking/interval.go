package booking

import "time"

// Interval is a half-open stay range [CheckIn, CheckOut). A checkout on day N
// and a check-in on day N share the listing's turnover day and do not conflict.
// Both endpoints are normalized to UTC midnight so time-of-day never
// participates in comparisons.
type Interval struct {
	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`
}

// NewInterval normalizes the endpoints and validates the range.
func NewInterval(checkIn, checkOut time.Time) (Interval, error) {
	iv := Interval{
		CheckIn:  NormalizeDate(checkIn),
		CheckOut: NormalizeDate(checkOut),
	}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// NormalizeDate truncates t to midnight UTC.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Validate reports ErrInvalidInterval unless CheckIn is strictly before
// CheckOut, i.e. the stay is at least one night.
func (iv Interval) Validate() error {
	if !iv.CheckIn.Before(iv.CheckOut) {
		return ErrInvalidInterval
	}
	return nil
}

// Nights returns the length of the stay in nights.
func (iv Interval) Nights() int {
	return int(iv.CheckOut.Sub(iv.CheckIn).Hours() / 24)
}

// Overlaps implements the half-open overlap rule:
// a and b overlap iff a.start < b.end && b.start < a.end.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(iv.CheckOut)
}
