package routes

import (
	"encoding/json"
	"errors"
	"strings"

	"airbnb-clone-server/models"
	"airbnb-clone-server/storage"
	"airbnb-clone-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slices"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RegisterUserInput struct {
	FirstName string `json:"firstName" validate:"required,max=256"`
	LastName  string `json:"lastName" validate:"required,max=256"`
	Email     string `json:"email" validate:"required,max=256,email"`
	Password  string `json:"password" validate:"required,min=8,max=256"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Register(ctx iris.Context) {
	var userInput RegisterUserInput
	if err := ctx.ReadJSON(&userInput); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var newUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&newUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userExists {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	newUser = models.User{
		FirstName: userInput.FirstName,
		LastName:  userInput.LastName,
		Email:     strings.ToLower(userInput.Email),
		Password:  hashedPassword,
	}

	if err := storage.DB.Create(&newUser).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	returnUser(newUser, ctx)
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	if err := ctx.ReadJSON(&userInput); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Invalid email or password", ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Invalid email or password", ctx)
		return
	}

	returnUser(existingUser, ctx)
}

// GetCurrentUser returns the profile behind the access token.
func GetCurrentUser(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(user)
}

type AlterSavedPlacesInput struct {
	PlaceID uint   `json:"placeID" validate:"required"`
	Op      string `json:"op" validate:"required,oneof=add remove"`
}

// GetUserSavedPlaces returns the full place records the caller has saved.
func GetUserSavedPlaces(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var savedIDs []uint
	if user.SavedPlaces != nil {
		if err := json.Unmarshal(user.SavedPlaces, &savedIDs); err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}
	if len(savedIDs) == 0 {
		ctx.JSON([]models.Place{})
		return
	}

	var places []models.Place
	if err := storage.DB.Where("id IN ? AND archived = ?", savedIDs, false).Find(&places).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(places)
}

// AlterUserSavedPlaces adds or removes a place from the caller's saved list.
func AlterUserSavedPlaces(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input AlterSavedPlacesInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var savedIDs []uint
	if user.SavedPlaces != nil {
		if err := json.Unmarshal(user.SavedPlaces, &savedIDs); err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	idx := slices.Index(savedIDs, input.PlaceID)
	switch input.Op {
	case "add":
		if idx < 0 {
			savedIDs = append(savedIDs, input.PlaceID)
		}
	case "remove":
		if idx >= 0 {
			savedIDs = slices.Delete(savedIDs, idx, idx+1)
		}
	}

	raw, err := json.Marshal(savedIDs)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	user.SavedPlaces = datatypes.JSON(raw)

	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"savedPlaces": savedIDs})
}

func getAndHandleUserExists(user *models.User, email string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(&user)
	if userExistsQuery.Error != nil && !errors.Is(userExistsQuery.Error, gorm.ErrRecordNotFound) {
		return false, userExistsQuery.Error
	}
	return userExistsQuery.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func returnUser(user models.User, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user.ID)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"email":        user.Email,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}
