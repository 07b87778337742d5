package socket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-pg/pg/v10"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"

	"istopoly/app/models"
	"istopoly/platform/board"
	"istopoly/platform/cache"
	"istopoly/platform/database"
	"istopoly/platform/engine"
	"istopoly/platform/persist"
	"istopoly/platform/queries"
)

var seatColors = []string{"#000000", "#1565C0", "#C62828", "#455A64", "#F9A825", "#E65100"}

// session binds one running engine game to its socket.io room.
type session struct {
	gameID string
	game   *engine.Game
	seats  map[string]int // user id -> seat
}

func (s *session) seatOf(userID string) (int, bool) {
	seat, ok := s.seats[userID]
	return seat, ok
}

type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func (r *sessionRegistry) get(gameID string) *session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[gameID]
}

func (r *sessionRegistry) put(s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.gameID] = s
}

func (r *sessionRegistry) drop(gameID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, gameID)
}

func CreateSocketIOServer() {
	server, err := socketio.NewServer(nil)
	if err != nil {
		panic(err)
	}
	db := database.PostgreSQLConnection()
	defer db.Close()

	pool := cache.CreateRedisPool()
	defer pool.Close()

	store := createStore(db)
	registry := &sessionRegistry{sessions: map[string]*session{}}

	gameTuning := engine.DefaultTuning()
	if path := os.Getenv("TUNING_FILE"); path != "" {
		if gameTuning, err = engine.LoadTuning(path); err != nil {
			log.WithError(err).Fatal("tuning file")
		}
	}
	layout := board.Default()
	if path := os.Getenv("BOARD_FILE"); path != "" {
		if layout, err = board.Load(path); err != nil {
			log.WithError(err).Fatal("board file")
		}
	}

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		return nil
	})

	server.OnEvent("/", "join-game", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)

		id, ok := result["game_id"]
		if !ok || !queries.VerifyGame(id, db) {
			s.Emit("error-message", "Invalid game")
			return
		}
		userID, ok := result["user_id"]
		if !ok {
			s.Emit("error-message", "User not authenticated")
			return
		}
		conn := pool.Get()
		defer conn.Close()
		if err := queries.JoinLobby(id, userID, &conn); err != nil {
			s.Emit("error-message", "Failed joining lobby")
			return
		}
		s.Join(id)
		server.BroadcastToRoom("/", id, "player-join")
		s.Emit("joined-game", strconv.Itoa(server.RoomLen("/", id)))
		// rejoining a running table: catch the client up on whose turn it is
		if registry.get(id) != nil {
			if seat, err := queries.GetTurn(id, &conn); err == nil {
				s.Emit("change-turn", strconv.Itoa(seat))
			}
		}
	})

	server.OnEvent("/", "leave-game", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)

		conn := pool.Get()
		defer conn.Close()
		queries.LeaveLobby(result["game_id"], result["user_id"], &conn)
		s.Leave(result["game_id"])
		server.BroadcastToRoom("/", result["game_id"], "player-left")
	})

	server.OnEvent("/", "start-game", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)
		gameID := result["game_id"]
		bots, _ := strconv.Atoi(result["bots"])

		conn := pool.Get()
		defer conn.Close()
		members, err := queries.LobbyMembers(gameID, &conn)
		if err != nil || len(members) == 0 {
			s.Emit("error-message", "Unable to start game")
			return
		}
		if len(members)+bots < 2 || len(members)+bots > 6 {
			s.Emit("error-message", "A table seats 2 to 6 players")
			return
		}

		names := make([]string, len(members))
		for i, userID := range members {
			if user, err := queries.GetUserData(userID, db); err == nil {
				names[i] = user.Email
			} else {
				names[i] = userID
			}
		}
		players := engine.NewPlayers(names, seatColors, bots, gameTuning)

		sess := &session{gameID: gameID, seats: map[string]int{}}
		for i, userID := range members {
			sess.seats[userID] = i
		}
		emitter := &roomEmitter{server: server, room: gameID, pool: pool, db: db, registry: registry}
		squares := make([]models.Square, len(layout))
		copy(squares, layout)
		sess.game = engine.NewGame(gameID, players, squares, gameTuning, engine.NewRoller(), emitter)
		registry.put(sess)

		if err := queries.MarkInProgress(gameID, db); err != nil {
			log.WithError(err).Error("mark in progress")
		}
		payload, _ := json.Marshal(players)
		server.BroadcastToRoom("/", gameID, "game-start", string(payload))
		sess.game.Start()
	})

	server.OnEvent("/", "roll-dice", func(s socketio.Conn, jsonStr string) {
		withSeat(s, registry, jsonStr, func(sess *session, seat int, _ map[string]string) error {
			return sess.game.RollDice(seat)
		})
	})

	server.OnEvent("/", "decision", func(s socketio.Conn, jsonStr string) {
		withSeat(s, registry, jsonStr, func(sess *session, seat int, result map[string]string) error {
			return sess.game.Decide(seat, result["label"])
		})
	})

	server.OnEvent("/", "pay-out-jail", func(s socketio.Conn, jsonStr string) {
		withSeat(s, registry, jsonStr, func(sess *session, seat int, _ map[string]string) error {
			return sess.game.PayBail(seat)
		})
	})

	server.OnEvent("/", "square-clicked", func(s socketio.Conn, jsonStr string) {
		withSeat(s, registry, jsonStr, func(sess *session, seat int, result map[string]string) error {
			pos, err := strconv.Atoi(result["pos"])
			if err != nil {
				return err
			}
			actions, err := sess.game.SquareClicked(seat, pos)
			if err != nil {
				return err
			}
			payload, _ := json.Marshal(actions)
			s.Emit("square-actions", string(payload))
			return nil
		})
	})

	server.OnEvent("/", "buy-house", func(s socketio.Conn, jsonStr string) {
		withSeat(s, registry, jsonStr, func(sess *session, seat int, result map[string]string) error {
			pos, err := strconv.Atoi(result["pos"])
			if err != nil {
				return err
			}
			return sess.game.BuildAt(seat, pos)
		})
	})

	server.OnEvent("/", "mortgage", func(s socketio.Conn, jsonStr string) {
		withSeat(s, registry, jsonStr, func(sess *session, seat int, result map[string]string) error {
			pos, err := strconv.Atoi(result["pos"])
			if err != nil {
				return err
			}
			return sess.game.Mortgage(seat, pos)
		})
	})

	server.OnEvent("/", "unmortgage", func(s socketio.Conn, jsonStr string) {
		withSeat(s, registry, jsonStr, func(sess *session, seat int, result map[string]string) error {
			pos, err := strconv.Atoi(result["pos"])
			if err != nil {
				return err
			}
			return sess.game.Unmortgage(seat, pos)
		})
	})

	server.OnEvent("/", "settle-debt", func(s socketio.Conn, jsonStr string) {
		withSeat(s, registry, jsonStr, func(sess *session, seat int, _ map[string]string) error {
			return sess.game.SettleDebt(seat)
		})
	})

	server.OnEvent("/", "initiate-trade", func(s socketio.Conn, jsonStr string) {
		withSeat(s, registry, jsonStr, func(sess *session, seat int, result map[string]string) error {
			target, err := strconv.Atoi(result["target"])
			if err != nil {
				return err
			}
			wanted, err := strconv.Atoi(result["wanted"])
			if err != nil {
				return err
			}
			offered := -1
			if v, ok := result["offered"]; ok && v != "" {
				if offered, err = strconv.Atoi(v); err != nil {
					return err
				}
			}
			cash := 0
			if v, ok := result["cash"]; ok && v != "" {
				if cash, err = strconv.Atoi(v); err != nil {
					return err
				}
			}
			return sess.game.InitiateTrade(seat, target, wanted, offered, cash)
		})
	})

	server.OnEvent("/", "trade-response", func(s socketio.Conn, jsonStr string) {
		withSeat(s, registry, jsonStr, func(sess *session, seat int, result map[string]string) error {
			return sess.game.ResolveTrade(seat, result["accept"] == "true")
		})
	})

	server.OnEvent("/", "save-game", func(s socketio.Conn, jsonStr string) {
		withSeat(s, registry, jsonStr, func(sess *session, seat int, result map[string]string) error {
			blob, err := persist.Encode(sess.game.Snapshot())
			if err != nil {
				return err
			}
			save := models.SaveGame{
				Id:      uuid.NewV4().String(),
				GameId:  sess.gameID,
				UserId:  result["user_id"],
				Data:    blob,
				SavedAt: time.Now().UTC(),
			}
			if err := store.Put(save); err != nil {
				return err
			}
			s.Emit("game-saved", save.Id)
			return nil
		})
	})

	server.OnEvent("/", "load-game", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)
		gameID := result["game_id"]

		save, err := store.Get(result["save_id"])
		if err != nil {
			s.Emit("error-message", "Save not found")
			return
		}
		snap, err := persist.Decode(save.Data)
		if err != nil {
			log.WithError(err).Warn("refusing corrupt save")
			s.Emit("error-message", "Save is corrupt")
			return
		}

		conn := pool.Get()
		defer conn.Close()
		members, err := queries.LobbyMembers(gameID, &conn)
		if err != nil || len(members) == 0 {
			s.Emit("error-message", "Join the lobby before loading")
			return
		}

		seats, err := claimSeats(members, snap.Players)
		if err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		sess := &session{gameID: gameID, seats: seats}

		emitter := &roomEmitter{server: server, room: gameID, pool: pool, db: db, registry: registry}
		sess.game = engine.NewGame(gameID, nil, nil, gameTuning, engine.NewRoller(), emitter)
		registry.put(sess)
		if err := sess.game.Restore(snap); err != nil {
			registry.drop(gameID)
			log.WithError(err).Warn("refusing inconsistent save")
			s.Emit("error-message", "Save is corrupt")
			return
		}
		payload, _ := json.Marshal(snap.Players)
		server.BroadcastToRoom("/", gameID, "game-start", string(payload))
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		log.WithError(e).Error("socket error")
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		for _, room := range s.Rooms() {
			server.BroadcastToRoom("/", room, "player-left")
		}
		s.LeaveAll()
	})

	go server.Serve()
	defer server.Close()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{os.Getenv("CLIENT_ORIGIN")},
		AllowCredentials: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server)
	log.Info("socket.io listening on :8000")
	http.ListenAndServe(":8000", c.Handler(mux))
}

// withSeat resolves the session and the caller's seat, then runs the action,
// forwarding any engine error to the client.
func withSeat(s socketio.Conn, registry *sessionRegistry, jsonStr string,
	fn func(sess *session, seat int, result map[string]string) error) {

	var result map[string]string
	json.Unmarshal([]byte(jsonStr), &result)

	sess := registry.get(result["game_id"])
	if sess == nil {
		s.Emit("error-message", "Game not running")
		return
	}
	seat, ok := sess.seatOf(result["user_id"])
	if !ok {
		s.Emit("error-message", "Not seated at this table")
		return
	}
	if err := fn(sess, seat, result); err != nil {
		s.Emit("error-message", err.Error())
	}
}

// claimSeats maps lobby members onto a save's human seats in join order. Every
// human seat needs a controller or the restored game would stall at that seat,
// so the member count must match the save exactly.
func claimSeats(members []string, players []models.Player) (map[string]int, error) {
	humanSeats := make([]int, 0, len(players))
	for i, p := range players {
		if !p.IsBot {
			humanSeats = append(humanSeats, i)
		}
	}
	if len(members) != len(humanSeats) {
		return nil, fmt.Errorf("this save needs exactly %d players, lobby has %d",
			len(humanSeats), len(members))
	}
	seats := make(map[string]int, len(members))
	for i, userID := range members {
		seats[userID] = humanSeats[i]
	}
	return seats, nil
}

func createStore(db *pg.DB) persist.Store {
	if path := os.Getenv("SAVE_DB_PATH"); path != "" {
		store, err := persist.NewSqliteStore(path)
		if err != nil {
			log.WithError(err).Fatal("sqlite save store")
		}
		return store
	}
	return persist.NewPostgresStore(db)
}
