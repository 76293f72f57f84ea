package routes

import (
	"errors"
	"time"

	"airbnb-clone-server/booking"
	"airbnb-clone-server/models"
	"airbnb-clone-server/services"
	"airbnb-clone-server/storage"
	"airbnb-clone-server/utils"

	"github.com/kataras/iris/v12"
)

// Engine is the reservation coordinator behind the booking endpoints, wired
// up in main. It is the only code path that creates bookings.
var Engine *booking.Coordinator

// Notifier, when set, receives the host notification after a successful
// booking. Nil in tests.
var Notifier *services.NotificationService

type CreateBookingInput struct {
	CheckIn   time.Time `json:"checkIn" validate:"required"`
	CheckOut  time.Time `json:"checkOut" validate:"required"`
	NumGuests int       `json:"numGuests" validate:"required,gte=1"`
	Name      string    `json:"name" validate:"required,max=256"`
	Phone     string    `json:"phone" validate:"required,max=32"`
}

func CreateBooking(ctx iris.Context) {
	placeID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid place ID", ctx)
		return
	}

	userID := ctx.Values().Get("userID").(uint)

	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !utils.ValidatePhoneNumber(input.Phone) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid contact phone number", ctx)
		return
	}

	b, err := Engine.CreateBooking(ctx.Request().Context(), booking.CreateBookingRequest{
		ListingID:    placeID,
		GuestID:      userID,
		CheckIn:      input.CheckIn,
		CheckOut:     input.CheckOut,
		NumGuests:    input.NumGuests,
		ContactName:  input.Name,
		ContactPhone: utils.FormatPhoneNumber(input.Phone),
	})
	if err != nil {
		writeEngineError(err, ctx)
		return
	}

	if Notifier != nil {
		go Notifier.NotifyHostOfBooking(b)
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(b)
}

// GetUserBookings returns the authenticated guest's own bookings.
func GetUserBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	bookings, err := Engine.ListBookingsForGuest(ctx.Request().Context(), userID)
	if err != nil {
		writeEngineError(err, ctx)
		return
	}
	if bookings == nil {
		bookings = []booking.Booking{}
	}
	ctx.JSON(bookings)
}

// GetPlaceBookings returns the bookings of a place to its owner.
func GetPlaceBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	var place models.Place
	if err := storage.DB.Where("id = ? AND owner_id = ?", id, userID).First(&place).Error; err != nil {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Place not found or access denied", ctx)
		return
	}

	var bookings []models.Booking
	res := storage.DB.Preload("Guest").
		Where("place_id = ?", place.ID).
		Order("check_in ASC").
		Find(&bookings)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(bookings)
}

// writeEngineError maps the engine's failure taxonomy onto HTTP statuses.
func writeEngineError(err error, ctx iris.Context) {
	switch {
	case errors.Is(err, booking.ErrUnauthenticated):
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", err.Error(), ctx)
	case errors.Is(err, booking.ErrListingNotFound):
		utils.CreateError(iris.StatusNotFound, "Not Found", err.Error(), ctx)
	case errors.Is(err, booking.ErrSlotUnavailable):
		utils.CreateError(iris.StatusConflict, "Conflict", err.Error(), ctx)
	case errors.Is(err, booking.ErrTransientStorage):
		utils.CreateError(iris.StatusServiceUnavailable, "Service Unavailable", err.Error(), ctx)
	case errors.Is(err, booking.ErrInvalidInterval),
		errors.Is(err, booking.ErrContactInfoMissing),
		errors.Is(err, booking.ErrGuestCountInvalid),
		errors.Is(err, booking.ErrGuestCountExceeded):
		utils.CreateError(iris.StatusBadRequest, "Validation Error", err.Error(), ctx)
	default:
		utils.CreateInternalServerError(ctx)
	}
}
