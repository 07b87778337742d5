package controllers

import (
	"os"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"istopoly/app/models"
	"istopoly/pkg"
	"istopoly/platform/database"
	"istopoly/platform/persist"
)

func CreateGame(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	gameCreateDto := new(models.GameCreateDto)
	if err := c.BodyParser(gameCreateDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	game := &models.Game{
		Id:     pkg.RandString(8),
		Name:   gameCreateDto.Name,
		Status: "open",
	}
	if _, err := db.Model(game).Insert(); err != nil {
		log.WithError(err).Error("create game")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"id": game.Id})
}

func GetAllAvailGames(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	var games []models.Game
	err := db.Model(&games).Where("status = ?", "open").Select()
	if err != nil {
		log.WithError(err).Error("list games")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(games)
}

func VerifyGame(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	verifyGameDto := new(models.VerifyGameDto)
	if err := c.QueryParser(verifyGameDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	game := &models.Game{Id: verifyGameDto.Code}
	if err := db.Model(game).WherePK().Select(); err != nil {
		return c.JSON(fiber.Map{"status": false})
	}
	return c.JSON(fiber.Map{"status": true})
}

// ListSaves returns the caller's saved games, newest first.
func ListSaves(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	store, closer, err := openStore()
	if err != nil {
		log.WithError(err).Error("save store")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	defer closer()

	saves, err := store.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("list saves")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	out := make([]fiber.Map, 0, len(saves))
	for _, save := range saves {
		out = append(out, fiber.Map{
			"id":       save.Id,
			"game_id":  save.GameId,
			"saved_at": save.SavedAt,
		})
	}
	return c.JSON(out)
}

func openStore() (persist.Store, func(), error) {
	if path := os.Getenv("SAVE_DB_PATH"); path != "" {
		store, err := persist.NewSqliteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
	db := database.PostgreSQLConnection()
	return persist.NewPostgresStore(db), func() { db.Close() }, nil
}
