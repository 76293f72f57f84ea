package utils

import (
	"context"
	"os"
	"strconv"
	"time"

	"airbnb-clone-server/storage"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

var bgContext = context.Background()

// AccessToken is the claims payload of the short-lived access token. ID is the
// stable caller identity every authenticated route relies on.
type AccessToken struct {
	ID uint `json:"ID"`
}

const (
	accessTokenLifetime  = 24 * time.Hour
	refreshTokenLifetime = 365 * 24 * time.Hour
)

// CreateTokenPair signs an access/refresh pair and whitelists the refresh
// token in Redis so it can be revoked by deletion.
func CreateTokenPair(id uint) (*jwt.TokenPair, error) {
	accessTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), accessTokenLifetime)
	refreshTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("REFRESH_TOKEN_SECRET"), refreshTokenLifetime)

	userID := strconv.FormatUint(uint64(id), 10)

	accessToken, err := accessTokenSigner.Sign(AccessToken{ID: id})
	if err != nil {
		return nil, err
	}

	refreshToken, err := refreshTokenSigner.Sign(jwt.Claims{Subject: userID})
	if err != nil {
		return nil, err
	}

	var tokenPair jwt.TokenPair
	tokenPair.AccessToken = accessToken
	tokenPair.RefreshToken = refreshToken

	storage.Redis.Set(bgContext, string(refreshToken), "true", refreshTokenLifetime+5*time.Minute)

	return &tokenPair, nil
}

// RefreshToken rotates a whitelisted refresh token for a new pair. A token
// missing from Redis was either never issued or already used.
func RefreshToken(ctx iris.Context) {
	token := jwt.GetVerifiedToken(ctx)
	tokenStr := string(token.Token)

	validToken, tokenErr := storage.Redis.Get(bgContext, tokenStr).Result()
	if tokenErr != nil {
		CreateNotFound(ctx)
		return
	}
	if validToken != "true" {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	storage.Redis.Del(bgContext, tokenStr)

	userID, parseErr := strconv.ParseUint(token.StandardClaims.Subject, 10, 32)
	if parseErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	tokenPair, tokenPairErr := CreateTokenPair(uint(userID))
	if tokenPairErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}
