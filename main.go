package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	log "github.com/sirupsen/logrus"

	"istopoly/app/controllers"
	"istopoly/pkg/routes"
	"istopoly/platform/database"
	"istopoly/platform/logging"
	socket "istopoly/platform/sockets"
)

func main() {
	logging.Init()

	db := database.PostgreSQLConnection()
	if err := database.EnsureSchema(db); err != nil {
		log.WithError(err).Fatal("database schema")
	}
	db.Close()

	app := fiber.New()

	app.Use(cors.New())
	routes.AuthRoutes(app)
	routes.GameRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: controllers.JWTSecret(),
	}))

	app.Get("/user/cur", controllers.Cur)
	go socket.CreateSocketIOServer()
	log.Fatal(app.Listen(":4101"))
}
