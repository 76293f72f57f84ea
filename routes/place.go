package routes

import (
	"encoding/json"
	"time"

	"airbnb-clone-server/booking"
	"airbnb-clone-server/models"
	"airbnb-clone-server/storage"
	"airbnb-clone-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

type CreatePlaceInput struct {
	Title        string   `json:"title" validate:"required,max=256"`
	Address      string   `json:"address" validate:"required,max=512"`
	Description  string   `json:"description" validate:"max=4096"`
	ExtraInfo    string   `json:"extraInfo" validate:"max=4096"`
	Photos       []string `json:"photos"`
	Perks        []string `json:"perks"`
	MaxGuests    int      `json:"maxGuests" validate:"required,gte=1"`
	NightlyPrice int64    `json:"nightlyPrice" validate:"required,gte=1"`
}

type UpdatePlaceInput struct {
	Title        string   `json:"title" validate:"required,max=256"`
	Address      string   `json:"address" validate:"required,max=512"`
	Description  string   `json:"description" validate:"max=4096"`
	ExtraInfo    string   `json:"extraInfo" validate:"max=4096"`
	Photos       []string `json:"photos"`
	Perks        []string `json:"perks"`
	MaxGuests    int      `json:"maxGuests" validate:"required,gte=1"`
	NightlyPrice int64    `json:"nightlyPrice" validate:"required,gte=1"`
}

func CreatePlace(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreatePlaceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	place := models.Place{
		OwnerID:      userID,
		Title:        input.Title,
		Address:      input.Address,
		Description:  input.Description,
		ExtraInfo:    input.ExtraInfo,
		Photos:       marshalJSONColumn(input.Photos),
		Perks:        marshalJSONColumn(input.Perks),
		MaxGuests:    input.MaxGuests,
		NightlyPrice: input.NightlyPrice,
	}

	if err := storage.DB.Create(&place).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(place)
}

// GetPlaces is the public browse endpoint; archived places are hidden.
func GetPlaces(ctx iris.Context) {
	var places []models.Place
	res := storage.DB.Where("archived = ?", false).Order("created_at DESC").Find(&places)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(places)
}

func GetUserPlaces(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var places []models.Place
	res := storage.DB.Where("owner_id = ?", userID).Order("created_at DESC").Find(&places)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(places)
}

func GetPlaceByID(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var place models.Place
	if err := storage.DB.Preload("Owner").First(&place, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(place)
}

// UpdatePlace mutates listing metadata. Only the recorded owner may call it,
// and changing NightlyPrice or MaxGuests never touches the stored totals of
// already-committed bookings.
func UpdatePlace(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	var input UpdatePlaceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var place models.Place
	if err := storage.DB.Where("id = ? AND owner_id = ?", id, userID).First(&place).Error; err != nil {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Place not found or access denied", ctx)
		return
	}

	place.Title = input.Title
	place.Address = input.Address
	place.Description = input.Description
	place.ExtraInfo = input.ExtraInfo
	place.Photos = marshalJSONColumn(input.Photos)
	place.Perks = marshalJSONColumn(input.Perks)
	place.MaxGuests = input.MaxGuests
	place.NightlyPrice = input.NightlyPrice

	if err := storage.DB.Save(&place).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(place)
}

// ArchivePlace soft-retires a listing. Places are never hard-deleted while
// bookings reference them; the archived flag blocks new bookings and hides
// the place from browse.
func ArchivePlace(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	var place models.Place
	if err := storage.DB.Where("id = ? AND owner_id = ?", id, userID).First(&place).Error; err != nil {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Place not found or access denied", ctx)
		return
	}

	place.Archived = true
	if err := storage.DB.Save(&place).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Place archived"})
}

// CheckPlaceAvailability answers whether a date range is currently free.
// Advisory only: the answer can go stale the moment it is produced, and the
// authoritative check happens when a booking is created.
func CheckPlaceAvailability(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid place ID", ctx)
		return
	}

	checkIn, err := time.Parse("2006-01-02", ctx.URLParam("checkIn"))
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "checkIn must be YYYY-MM-DD", ctx)
		return
	}
	checkOut, err := time.Parse("2006-01-02", ctx.URLParam("checkOut"))
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "checkOut must be YYYY-MM-DD", ctx)
		return
	}

	iv, err := booking.NewInterval(checkIn, checkOut)
	if err != nil {
		writeEngineError(err, ctx)
		return
	}

	free, err := Engine.Index().IsFree(ctx.Request().Context(), id, iv)
	if err != nil {
		writeEngineError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"placeID": id, "checkIn": iv.CheckIn, "checkOut": iv.CheckOut, "available": free})
}

func marshalJSONColumn(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(raw)
}
