package socket

import (
	"encoding/json"
	"strconv"

	"github.com/go-pg/pg/v10"
	"github.com/gomodule/redigo/redis"
	socketio "github.com/googollee/go-socket.io"

	"istopoly/app/models"
	"istopoly/platform/queries"
)

// roomEmitter implements the engine callback contract by broadcasting room
// events. The engine calls these under its own lock; nothing here calls back
// into the engine. Prompts are seat-addressed and filtered client-side.
type roomEmitter struct {
	server   *socketio.Server
	room     string
	pool     *redis.Pool
	db       *pg.DB
	registry *sessionRegistry
}

func (e *roomEmitter) emitJSON(event string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	e.server.BroadcastToRoom("/", e.room, event, string(raw))
}

func (e *roomEmitter) DiceRolled(d1 int, d2 int) {
	e.emitJSON("dice-rolled", map[string]int{"d1": d1, "d2": d2})
}

func (e *roomEmitter) PlayerMoved(seat int, pos int) {
	e.emitJSON("player-moved", map[string]int{"seat": seat, "pos": pos})
}

func (e *roomEmitter) Message(text string) {
	e.server.BroadcastToRoom("/", e.room, "message", text)
}

func (e *roomEmitter) AskDecision(seat int, prompt string, options []string) {
	e.emitJSON("decision-request", map[string]interface{}{
		"seat": seat, "prompt": prompt, "options": options,
	})
}

func (e *roomEmitter) AskAmount(seat int, prompt string, amount int) {
	e.emitJSON("amount-request", map[string]interface{}{
		"seat": seat, "prompt": prompt, "amount": amount,
	})
}

func (e *roomEmitter) RollEnabled(seat int, enabled bool) {
	e.emitJSON("roll-enabled", map[string]interface{}{"seat": seat, "enabled": enabled})
}

func (e *roomEmitter) BalancesChanged(pot int, players []models.PlayerDto) {
	e.emitJSON("balances", map[string]interface{}{"pot": pot, "players": players})
}

func (e *roomEmitter) TurnChanged(seat int) {
	conn := e.pool.Get()
	defer conn.Close()
	queries.SetTurn(e.room, seat, &conn)
	e.server.BroadcastToRoom("/", e.room, "change-turn", strconv.Itoa(seat))
}

func (e *roomEmitter) GameOver(winner int) {
	e.emitJSON("game-over", map[string]int{"winner": winner})
	conn := e.pool.Get()
	defer conn.Close()
	queries.CleanUp(e.room, e.db, &conn)
	e.registry.drop(e.room)
}
