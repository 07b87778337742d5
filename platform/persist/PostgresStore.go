package persist

import (
	"github.com/go-pg/pg/v10"

	"istopoly/app/models"
)

type PostgresStore struct {
	db *pg.DB
}

func NewPostgresStore(db *pg.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Put(save models.SaveGame) error {
	_, err := s.db.Model(&save).OnConflict("(id) DO UPDATE").
		Set("data = EXCLUDED.data, saved_at = EXCLUDED.saved_at").Insert()
	return err
}

func (s *PostgresStore) Get(id string) (models.SaveGame, error) {
	save := models.SaveGame{Id: id}
	err := s.db.Model(&save).WherePK().Select()
	if err == pg.ErrNoRows {
		return save, ErrNoSave
	}
	return save, err
}

func (s *PostgresStore) ListByUser(userID string) ([]models.SaveGame, error) {
	var saves []models.SaveGame
	err := s.db.Model(&saves).Where("user_id = ?", userID).
		Order("saved_at DESC").Select()
	return saves, err
}

func (s *PostgresStore) Delete(id string) error {
	_, err := s.db.Model(&models.SaveGame{Id: id}).WherePK().Delete()
	return err
}
