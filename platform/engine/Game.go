package engine

import (
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"istopoly/app/models"
	"istopoly/platform/board"
)

// State is the turn controller's current phase.
type State string

const (
	StateAwaitingRoll     State = "awaiting-roll"
	StateMoving           State = "moving"
	StateResolvingSquare  State = "resolving-square"
	StateAwaitingDecision State = "awaiting-decision"
	StateInJail           State = "in-jail"
	StateTurnComplete     State = "turn-complete"
	StateGameOver         State = "game-over"
)

// Decision option labels exchanged with the presentation layer.
const (
	OptBuy     = "buy"
	OptPass    = "pass"
	OptBuild   = "build"
	OptPayBail = "pay-bail"
	OptRoll    = "roll"
	OptAccept  = "accept"
	OptReject  = "reject"
	OptManage  = "manage"
)

var (
	ErrNotYourTurn = errors.New("not your turn")
	ErrNotNow      = errors.New("action not available in this state")
	ErrNoDecision  = errors.New("no decision pending")
	ErrBadOption   = errors.New("unknown decision option")
	ErrGameOver    = errors.New("game is over")
	ErrBadTrade    = errors.New("invalid trade")
	ErrBadBuild    = errors.New("construction not allowed here")
	ErrBadMortgage = errors.New("mortgage action not allowed here")
	ErrBadSnapshot = errors.New("snapshot is not internally consistent")
	ErrNotEnough   = errors.New("insufficient funds")
)

type decisionKind int

const (
	decisionNone decisionKind = iota
	decisionBuy
	decisionBuild
	decisionJail
	decisionTrade
	decisionDebt
)

type decision struct {
	kind   decisionKind
	seat   int
	square int
}

// Game is the authoritative state of one table. All mutation happens under mu;
// each public method runs a full resolution step (including any bot turns it
// unblocks) before returning.
type Game struct {
	mu sync.Mutex

	players []models.Player
	squares []models.Square
	cur     int
	round   int
	pot     int

	lastD1, lastD2 int
	state          State
	pending        decision
	debt           *models.PendingDebt
	trade          *models.TradeProposal

	chance []models.GameCard
	chest  []models.GameCard

	tuning Tuning
	roller Roller
	cb     Callbacks
	log    *log.Entry
}

func NewGame(id string, players []models.Player, squares []models.Square, t Tuning, r Roller, cb Callbacks) *Game {
	if cb == nil {
		cb = NopCallbacks{}
	}
	if r == nil {
		r = NewRoller()
	}
	return &Game{
		players: players,
		squares: squares,
		state:   StateTurnComplete,
		chance:  DefaultChanceDeck(),
		chest:   DefaultChestDeck(),
		tuning:  t,
		roller:  r,
		cb:      cb,
		log:     log.WithField("game", id),
	}
}

// NewPlayers builds the ordered seat list from the lobby's names/colors/bots.
func NewPlayers(humans []string, colors []string, bots int, t Tuning) []models.Player {
	players := make([]models.Player, 0, len(humans)+bots)
	for i, name := range humans {
		players = append(players, models.Player{Name: name, Color: colors[i%len(colors)], Money: t.StartMoney})
	}
	for i := 0; i < bots; i++ {
		players = append(players, models.Player{
			Name:  fmt.Sprintf("Bot %d", i+1),
			Color: colors[(len(humans)+i)%len(colors)],
			Money: t.StartMoney,
			IsBot: true,
		})
	}
	return players
}

// Start begins the first turn and plays through any leading bot turns.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.loop()
}

// State reports the controller phase.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Game) CurrentSeat() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cur
}

func (g *Game) Pot() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pot
}

func (g *Game) Round() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.round
}

// Winner returns the surviving seat, or -1 while the game is live.
func (g *Game) Winner() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winner()
}

func (g *Game) winner() int {
	alive := -1
	for i := range g.players {
		if !g.players[i].Bankrupt {
			if alive != -1 {
				return -1
			}
			alive = i
		}
	}
	return alive
}

// Players returns a display copy of the seats.
func (g *Game) Players() []models.PlayerDto {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playerDtos()
}

func (g *Game) playerDtos() []models.PlayerDto {
	dtos := make([]models.PlayerDto, len(g.players))
	for i, p := range g.players {
		dtos[i] = models.PlayerDto{
			Seat: i, Name: p.Name, Color: p.Color, Money: p.Money,
			Pos: p.Pos, InJail: p.InJail, IsBot: p.IsBot, Bankrupt: p.Bankrupt,
		}
	}
	return dtos
}

// Squares returns a copy of the board.
func (g *Game) Squares() []models.Square {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]models.Square, len(g.squares))
	copy(out, g.squares)
	return out
}

// Snapshot captures the persistable state. Transients (pending debt, open
// trade) are dropped, matching abandon semantics.
func (g *Game) Snapshot() models.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	snap := models.Snapshot{
		Version:   models.SnapshotVersion,
		Players:   make([]models.Player, len(g.players)),
		Board:     make([]models.Square, len(g.squares)),
		CurPlayer: g.cur,
		Round:     g.round,
		Pot:       g.pot,
	}
	copy(snap.Players, g.players)
	copy(snap.Board, g.squares)
	return snap
}

// Restore replaces the in-memory state with a snapshot and resumes at the
// stored player's turn. A bundle that breaks the state invariants is refused.
func (g *Game) Restore(snap models.Snapshot) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := checkSnapshot(snap); err != nil {
		return err
	}
	g.players = make([]models.Player, len(snap.Players))
	copy(g.players, snap.Players)
	g.squares = make([]models.Square, len(snap.Board))
	copy(g.squares, snap.Board)
	g.cur = snap.CurPlayer
	g.round = snap.Round
	g.pot = snap.Pot
	g.debt = nil
	g.trade = nil
	g.pending = decision{}
	g.lastD1, g.lastD2 = 0, 0
	g.state = StateTurnComplete
	g.loop()
	return nil
}

func checkSnapshot(snap models.Snapshot) error {
	if snap.Version != models.SnapshotVersion {
		return fmt.Errorf("%w: version %d", ErrBadSnapshot, snap.Version)
	}
	if len(snap.Players) < 2 {
		return fmt.Errorf("%w: %d players", ErrBadSnapshot, len(snap.Players))
	}
	if err := board.Validate(snap.Board); err != nil {
		return fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if snap.CurPlayer < 0 || snap.CurPlayer >= len(snap.Players) {
		return fmt.Errorf("%w: current player %d", ErrBadSnapshot, snap.CurPlayer)
	}
	if snap.Round < 0 || snap.Pot < 0 {
		return fmt.Errorf("%w: negative counters", ErrBadSnapshot)
	}
	alive := 0
	for i, p := range snap.Players {
		if p.Money < 0 || p.Pos < 0 || p.Pos >= board.Size {
			return fmt.Errorf("%w: player %d out of range", ErrBadSnapshot, i)
		}
		if p.Bankrupt && p.Money != 0 {
			return fmt.Errorf("%w: bankrupt player %d holds cash", ErrBadSnapshot, i)
		}
		if !p.Bankrupt {
			alive++
		}
	}
	if alive < 2 {
		return fmt.Errorf("%w: game already decided", ErrBadSnapshot)
	}
	for i, sq := range snap.Board {
		if sq.OwnerId == 0 || sq.OwnerId > len(snap.Players) {
			return fmt.Errorf("%w: square %d owner %d", ErrBadSnapshot, i, sq.OwnerId)
		}
		if sq.OwnerId > 0 && snap.Players[sq.OwnerId-1].Bankrupt {
			return fmt.Errorf("%w: square %d owned by bankrupt seat", ErrBadSnapshot, i)
		}
		if sq.Houses < 0 || sq.Houses > 5 {
			return fmt.Errorf("%w: square %d houses %d", ErrBadSnapshot, i, sq.Houses)
		}
		if sq.Mortgaged && sq.Houses > 0 {
			return fmt.Errorf("%w: square %d mortgaged with houses", ErrBadSnapshot, i)
		}
	}
	return nil
}
