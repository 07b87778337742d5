package models

import "time"

// Game is the lobby row in Postgres, not live game state.
type Game struct {
	Id     string
	Name   string
	Status string
}

type GameCreateDto struct {
	Name string
}

type VerifyGameDto struct {
	Code string
}

// SaveGame holds one zstd-compressed snapshot blob per saved game.
type SaveGame struct {
	Id      string
	GameId  string
	UserId  string
	Data    []byte
	SavedAt time.Time
}
