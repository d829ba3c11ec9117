package api

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/krau/mediadex/config"
)

var storedKeyHash []byte
var validate = validator.New()

func validateApiKey(ctx *fiber.Ctx, key string) (bool, error) {
	if key == "" {
		return false, keyauth.ErrMissingOrMalformedAPIKey
	}
	inputsum := sha256.Sum256([]byte(key))
	if subtle.ConstantTimeCompare(inputsum[:], storedKeyHash) == 1 {
		return true, nil
	}
	return false, keyauth.ErrMissingOrMalformedAPIKey
}

func Serve(addr string) {
	app := fiber.New(
		fiber.Config{
			JSONEncoder: sonic.Marshal,
			JSONDecoder: sonic.Unmarshal,
		},
	)
	loggerCfg := logger.ConfigDefault
	loggerCfg.Format = "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${queryParams} | ${error}\n"
	app.Use(logger.New(loggerCfg))
	app.Use(cors.New())

	rg := app.Group("/api")
	if config.C.Api.Key != "" {
		sum := sha256.Sum256([]byte(config.C.Api.Key))
		storedKeyHash = sum[:]
		rg.Use(keyauth.New(keyauth.Config{Validator: validateApiKey}))
	}
	rg.Get("/channels", GetChannels)
	rg.Get("/search", SearchByGet)
	rg.Post("/search", SearchByPost)
	rg.Get("/stats", GetStats)

	go func() {
		if err := app.Listen(addr); err != nil {
			panic(err)
		}
	}()
}
