package persist

import (
	"database/sql"

	_ "modernc.org/sqlite"

	"istopoly/app/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS save_games (
	id       TEXT PRIMARY KEY,
	game_id  TEXT NOT NULL,
	user_id  TEXT NOT NULL,
	data     BLOB NOT NULL,
	saved_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_save_games_user ON save_games(user_id);
`

type SqliteStore struct {
	db *sql.DB
}

// NewSqliteStore opens (and if needed initializes) a local save file.
func NewSqliteStore(path string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) Close() error { return s.db.Close() }

func (s *SqliteStore) Put(save models.SaveGame) error {
	_, err := s.db.Exec(`INSERT INTO save_games (id, game_id, user_id, data, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		save.Id, save.GameId, save.UserId, save.Data, save.SavedAt)
	return err
}

func (s *SqliteStore) Get(id string) (models.SaveGame, error) {
	var save models.SaveGame
	row := s.db.QueryRow(`SELECT id, game_id, user_id, data, saved_at
		FROM save_games WHERE id = ?`, id)
	err := row.Scan(&save.Id, &save.GameId, &save.UserId, &save.Data, &save.SavedAt)
	if err == sql.ErrNoRows {
		return save, ErrNoSave
	}
	return save, err
}

func (s *SqliteStore) ListByUser(userID string) ([]models.SaveGame, error) {
	rows, err := s.db.Query(`SELECT id, game_id, user_id, data, saved_at
		FROM save_games WHERE user_id = ? ORDER BY saved_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var saves []models.SaveGame
	for rows.Next() {
		var save models.SaveGame
		if err := rows.Scan(&save.Id, &save.GameId, &save.UserId, &save.Data, &save.SavedAt); err != nil {
			return nil, err
		}
		saves = append(saves, save)
	}
	return saves, rows.Err()
}

func (s *SqliteStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM save_games WHERE id = ?`, id)
	return err
}
