package engine

import (
	"testing"

	"istopoly/app/models"
	"istopoly/platform/board"
)

// scriptRoller feeds predetermined dice and card draws; it falls back to a
// non-double roll and the first card once the script runs out.
type scriptRoller struct {
	rolls [][2]int
	draws []int
}

func (r *scriptRoller) Roll() (int, int) {
	if len(r.rolls) == 0 {
		return 1, 2
	}
	v := r.rolls[0]
	r.rolls = r.rolls[1:]
	return v[0], v[1]
}

func (r *scriptRoller) Intn(n int) int {
	if len(r.draws) == 0 {
		return 0
	}
	v := r.draws[0]
	r.draws = r.draws[1:]
	if v >= n {
		return 0
	}
	return v
}

type ask struct {
	seat    int
	prompt  string
	options []string
}

// recorder captures callback traffic for assertions.
type recorder struct {
	NopCallbacks
	messages []string
	asks     []ask
	dice     [][2]int
	winner   int
	over     bool
}

func newRecorder() *recorder { return &recorder{winner: -1} }

func (r *recorder) Message(text string) { r.messages = append(r.messages, text) }

func (r *recorder) AskDecision(seat int, prompt string, options []string) {
	r.asks = append(r.asks, ask{seat: seat, prompt: prompt, options: options})
}

func (r *recorder) DiceRolled(d1, d2 int) { r.dice = append(r.dice, [2]int{d1, d2}) }

func (r *recorder) GameOver(winner int) {
	r.over = true
	r.winner = winner
}

func (r *recorder) lastAsk(t *testing.T) ask {
	t.Helper()
	if len(r.asks) == 0 {
		t.Fatal("no decision was asked")
	}
	return r.asks[len(r.asks)-1]
}

func testPlayers(names ...string) []models.Player {
	players := make([]models.Player, len(names))
	for i, name := range names {
		players[i] = models.Player{Name: name, Color: "#000000", Money: 1500}
	}
	return players
}

func newTestGame(players []models.Player, roller Roller) (*Game, *recorder) {
	rec := newRecorder()
	if roller == nil {
		roller = &scriptRoller{}
	}
	g := NewGame("test", players, board.Default(), DefaultTuning(), roller, rec)
	return g, rec
}

// totalMoney sums every cash pile in the system.
func totalMoney(g *Game) int {
	total := g.pot
	for i := range g.players {
		total += g.players[i].Money
	}
	return total
}

func own(g *Game, seat int, positions ...int) {
	for _, pos := range positions {
		g.squares[pos].OwnerId = seat + 1
	}
}
