package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"airbnb-clone-server/booking"
	"airbnb-clone-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// fakeStore backs the engine with in-memory state so route tests need no
// database.
type fakeStore struct {
	mu       sync.Mutex
	listings map[uint]booking.Listing
	bookings []booking.Booking
	nextID   uint
}

func newFakeStore(listings ...booking.Listing) *fakeStore {
	s := &fakeStore{listings: make(map[uint]booking.Listing), nextID: 1}
	for _, l := range listings {
		s.listings[l.ID] = l
	}
	return s
}

func (s *fakeStore) GetListing(ctx context.Context, id uint) (booking.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.listings[id]
	if !ok {
		return booking.Listing{}, booking.ErrListingNotFound
	}
	return l, nil
}

func (s *fakeStore) ConfirmedIntervals(ctx context.Context, listingID uint) ([]booking.Interval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []booking.Interval
	for _, b := range s.bookings {
		if b.ListingID == listingID {
			out = append(out, b.Interval)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateBooking(ctx context.Context, b *booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.nextID
	s.nextID++
	b.CreatedAt = time.Now()
	s.bookings = append(s.bookings, *b)
	return nil
}

func (s *fakeStore) BookingsForGuest(ctx context.Context, guestID uint) ([]booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []booking.Booking
	for _, b := range s.bookings {
		if b.GuestID == guestID {
			out = append(out, b)
		}
	}
	return out, nil
}

type testClock struct{ now time.Time }

func (c testClock) Now() time.Time { return c.now }

// buildBookingTestApp wires the booking routes with a fake-backed engine and
// a JWT verifier, mirroring the production wiring in main.
func buildBookingTestApp(listings ...booking.Listing) (*iris.Application, *fakeStore) {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")

	store := newFakeStore(listings...)
	Engine = booking.NewCoordinator(store, store)
	Engine.SetClock(testClock{now: time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)})
	Notifier = nil

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	verify := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	bookings := app.Party("/api/booking")
	{
		bookings.Post("/place/{id:uint}", verify, utils.UserIDFromTokenMiddleware, CreateBooking)
		bookings.Get("/user", verify, utils.UserIDFromTokenMiddleware, GetUserBookings)
	}
	place := app.Party("/api/place")
	{
		place.Get("/{id:uint}/availability", CheckPlaceAvailability)
	}

	if err := app.Build(); err != nil {
		panic(err)
	}
	return app, store
}

func signGuestToken(id uint) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), time.Hour)
	token, _ := signer.Sign(utils.AccessToken{ID: id})
	return string(token)
}

func postBooking(app *iris.Application, token string, placeID uint, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/booking/place/%d", placeID), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

const validBookingBody = `{
	"checkIn": "2025-10-10T00:00:00Z",
	"checkOut": "2025-10-13T00:00:00Z",
	"numGuests": 2,
	"name": "Jane Guest",
	"phone": "+1 555 010 0123"
}`

func TestCreateBookingRequiresToken(t *testing.T) {
	app, _ := buildBookingTestApp(booking.Listing{ID: 1, NightlyPrice: 1500, MaxGuests: 6})

	resp := postBooking(app, "", 1, validBookingBody)
	if resp.Code == http.StatusCreated {
		t.Fatalf("expected failure without token, got %d", resp.Code)
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	app, store := buildBookingTestApp(booking.Listing{ID: 1, OwnerID: 9, NightlyPrice: 1500, MaxGuests: 6})

	resp := postBooking(app, signGuestToken(42), 1, validBookingBody)
	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var created booking.Booking
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.TotalPrice != 4500 {
		t.Errorf("totalPrice = %d, want 4500", created.TotalPrice)
	}
	if created.GuestID != 42 {
		t.Errorf("guestID = %d, want 42", created.GuestID)
	}
	if len(store.bookings) != 1 {
		t.Errorf("persisted %d bookings, want 1", len(store.bookings))
	}
}

func TestCreateBookingConflictReturns409(t *testing.T) {
	app, _ := buildBookingTestApp(booking.Listing{ID: 1, NightlyPrice: 1500, MaxGuests: 6})

	if resp := postBooking(app, signGuestToken(42), 1, validBookingBody); resp.Code != http.StatusCreated {
		t.Fatalf("first booking: status = %d", resp.Code)
	}

	overlapping := `{
		"checkIn": "2025-10-12T00:00:00Z",
		"checkOut": "2025-10-15T00:00:00Z",
		"numGuests": 2,
		"name": "Second Guest",
		"phone": "+1 555 010 0456"
	}`
	resp := postBooking(app, signGuestToken(43), 1, overlapping)
	if resp.Code != http.StatusConflict {
		t.Fatalf("overlapping booking: status = %d, want 409", resp.Code)
	}

	// Checkout day of the first stay is bookable.
	adjacent := `{
		"checkIn": "2025-10-13T00:00:00Z",
		"checkOut": "2025-10-15T00:00:00Z",
		"numGuests": 2,
		"name": "Third Guest",
		"phone": "+1 555 010 0789"
	}`
	if resp := postBooking(app, signGuestToken(44), 1, adjacent); resp.Code != http.StatusCreated {
		t.Fatalf("adjacent booking: status = %d, body = %s", resp.Code, resp.Body.String())
	}
}

func TestCreateBookingValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{
			"zero-night stay",
			`{"checkIn": "2025-10-10T00:00:00Z", "checkOut": "2025-10-10T00:00:00Z",
			  "numGuests": 2, "name": "Jane", "phone": "+1 555 010 0123"}`,
			http.StatusBadRequest,
		},
		{
			"too many guests",
			`{"checkIn": "2025-10-10T00:00:00Z", "checkOut": "2025-10-12T00:00:00Z",
			  "numGuests": 7, "name": "Jane", "phone": "+1 555 010 0123"}`,
			http.StatusBadRequest,
		},
		{
			"bad phone",
			`{"checkIn": "2025-10-10T00:00:00Z", "checkOut": "2025-10-12T00:00:00Z",
			  "numGuests": 2, "name": "Jane", "phone": "123"}`,
			http.StatusBadRequest,
		},
		{
			"missing name",
			`{"checkIn": "2025-10-10T00:00:00Z", "checkOut": "2025-10-12T00:00:00Z",
			  "numGuests": 2, "phone": "+1 555 010 0123"}`,
			http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := buildBookingTestApp(booking.Listing{ID: 1, NightlyPrice: 1500, MaxGuests: 6})
			resp := postBooking(app, signGuestToken(42), 1, tt.body)
			if resp.Code != tt.want {
				t.Fatalf("status = %d, want %d, body = %s", resp.Code, tt.want, resp.Body.String())
			}
		})
	}
}

func TestCreateBookingUnknownPlaceReturns404(t *testing.T) {
	app, _ := buildBookingTestApp()

	resp := postBooking(app, signGuestToken(42), 99, validBookingBody)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
}

func TestGetUserBookingsReturnsOnlyOwn(t *testing.T) {
	app, _ := buildBookingTestApp(booking.Listing{ID: 1, NightlyPrice: 1000, MaxGuests: 4})

	if resp := postBooking(app, signGuestToken(42), 1, validBookingBody); resp.Code != http.StatusCreated {
		t.Fatalf("seed booking: status = %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/booking/user", nil)
	req.Header.Set("Authorization", "Bearer "+signGuestToken(77))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}

	var bookings []booking.Booking
	if err := json.Unmarshal(resp.Body.Bytes(), &bookings); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(bookings) != 0 {
		t.Fatalf("guest 77 sees %d bookings, want 0", len(bookings))
	}
}

func TestCheckPlaceAvailability(t *testing.T) {
	app, _ := buildBookingTestApp(booking.Listing{ID: 1, NightlyPrice: 1500, MaxGuests: 6})

	if resp := postBooking(app, signGuestToken(42), 1, validBookingBody); resp.Code != http.StatusCreated {
		t.Fatalf("seed booking: status = %d", resp.Code)
	}

	get := func(query string) (int, map[string]interface{}) {
		req := httptest.NewRequest(http.MethodGet, "/api/place/1/availability?"+query, nil)
		resp := httptest.NewRecorder()
		app.ServeHTTP(resp, req)
		var body map[string]interface{}
		json.Unmarshal(resp.Body.Bytes(), &body)
		return resp.Code, body
	}

	code, body := get("checkIn=2025-10-11&checkOut=2025-10-14")
	if code != http.StatusOK || body["available"] != false {
		t.Errorf("overlapping range: code = %d, available = %v, want false", code, body["available"])
	}

	code, body = get("checkIn=2025-10-13&checkOut=2025-10-16")
	if code != http.StatusOK || body["available"] != true {
		t.Errorf("adjacent range: code = %d, available = %v, want true", code, body["available"])
	}

	if code, _ := get("checkIn=bogus&checkOut=2025-10-16"); code != http.StatusBadRequest {
		t.Errorf("malformed date: code = %d, want 400", code)
	}
}
