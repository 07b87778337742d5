package queries

import (
	"fmt"
	"strconv"

	"github.com/go-pg/pg/v10"
	"github.com/gomodule/redigo/redis"

	"istopoly/app/models"
	"istopoly/platform/cache"
)

// The lobby lives in Redis while players assemble: "<game>.order" is the seat
// order, "<game>.turn" mirrors the engine's current seat for late joiners.
// The engine itself stays authoritative once the game starts.

func orderKey(gameID string) string { return fmt.Sprintf("%s.order", gameID) }
func turnKey(gameID string) string  { return fmt.Sprintf("%s.turn", gameID) }

func VerifyGame(id string, db *pg.DB) bool {
	game := &models.Game{Id: id}
	return db.Model(game).WherePK().Select() == nil
}

func JoinLobby(gameID string, userID string, conn *redis.Conn) error {
	members, err := LobbyMembers(gameID, conn)
	if err != nil && err != redis.ErrNil {
		return err
	}
	for _, m := range members {
		if m == userID {
			return nil // rejoin
		}
	}
	if n, err := cache.LLEN(orderKey(gameID), conn); err == nil && n >= 6 {
		return fmt.Errorf("lobby %s is full", gameID)
	}
	return cache.RPUSH(orderKey(gameID), []interface{}{userID}, conn)
}

func LobbyMembers(gameID string, conn *redis.Conn) ([]string, error) {
	return cache.LGET(orderKey(gameID), conn)
}

func LeaveLobby(gameID string, userID string, conn *redis.Conn) error {
	return cache.LREM(orderKey(gameID), userID, conn)
}

func SetTurn(gameID string, seat int, conn *redis.Conn) {
	cache.Set(turnKey(gameID), seat, conn)
}

func GetTurn(gameID string, conn *redis.Conn) (int, error) {
	val, err := cache.Get(turnKey(gameID), conn)
	if err != nil {
		return -1, err
	}
	return strconv.Atoi(val)
}

// MarkInProgress flips the lobby row so the game stops showing as joinable.
func MarkInProgress(gameID string, db *pg.DB) error {
	game := &models.Game{Id: gameID}
	_, err := db.Model(game).WherePK().Set("status = ?", "in progress").Update()
	return err
}

// CleanUp removes every trace of a finished or abandoned game.
func CleanUp(gameID string, db *pg.DB, conn *redis.Conn) {
	cache.Del(orderKey(gameID), conn)
	cache.Del(turnKey(gameID), conn)
	game := new(models.Game)
	db.Model(game).Where("id = ?", gameID).Delete()
}
