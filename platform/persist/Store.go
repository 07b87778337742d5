package persist

import (
	"errors"

	"istopoly/app/models"
)

var ErrNoSave = errors.New("no such save")

// Store persists save-game blobs. Postgres backs the hosted deployment and
// sqlite backs local single-machine play; both hold the same compressed
// snapshot bundles.
type Store interface {
	Put(save models.SaveGame) error
	Get(id string) (models.SaveGame, error)
	ListByUser(userID string) ([]models.SaveGame, error)
	Delete(id string) error
}
