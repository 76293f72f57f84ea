package booking

// ComputePrice derives the total price of a stay: nightly rate times nights.
// Pure function: no side effects, deterministic for identical inputs.
func ComputePrice(listing Listing, iv Interval, numGuests int) (int64, error) {
	if err := iv.Validate(); err != nil {
		return 0, err
	}
	if numGuests < 1 {
		return 0, ErrGuestCountInvalid
	}
	if numGuests > listing.MaxGuests {
		return 0, ErrGuestCountExceeded
	}
	return listing.NightlyPrice * int64(iv.Nights()), nil
}
