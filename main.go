package main

import (
	"log"
	"os"

	"airbnb-clone-server/booking"
	"airbnb-clone-server/routes"
	"airbnb-clone-server/services"
	"airbnb-clone-server/storage"
	"airbnb-clone-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	db := storage.InitializeDB()
	storage.InitializeRedis()

	store := storage.NewBookingStore(db)
	routes.Engine = booking.NewCoordinator(store, store)
	routes.Notifier = services.NewNotificationService()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Get("/me", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetCurrentUser)
		user.Get("/saved-places", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetUserSavedPlaces)
		user.Post("/saved-places", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.AlterUserSavedPlaces)
	}

	place := app.Party("/api/place")
	{
		place.Get("/", routes.GetPlaces)
		place.Post("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreatePlace)
		place.Get("/user", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetUserPlaces)
		place.Get("/{id:uint}", routes.GetPlaceByID)
		place.Put("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpdatePlace)
		place.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.ArchivePlace)
		place.Get("/{id:uint}/availability", routes.CheckPlaceAvailability)
	}

	bookings := app.Party("/api/booking")
	{
		bookings.Post("/place/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateBooking)
		bookings.Get("/place/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetPlaceBookings)
		bookings.Get("/user", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetUserBookings)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
