package engine

import (
	"errors"
	"reflect"
	"testing"

	"istopoly/app/models"
)

func TestSnapshotRoundTrip(t *testing.T) {
	roller := &scriptRoller{rolls: [][2]int{{1, 2}}}
	g, _ := newTestGame(testPlayers("A", "B"), roller)
	g.Start()
	if err := g.RollDice(0); err != nil {
		t.Fatalf("RollDice: %v", err)
	}
	if err := g.Decide(0, OptBuy); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	g.pot = 75
	snap := g.Snapshot()

	g2, _ := newTestGame(nil, nil)
	if err := g2.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !reflect.DeepEqual(g2.Snapshot(), snap) {
		t.Fatal("restored state does not round-trip")
	}
	if g2.CurrentSeat() != 1 || g2.State() != StateAwaitingRoll {
		t.Fatalf("resume point: seat %d state %q", g2.CurrentSeat(), g2.State())
	}
	if g2.Pot() != 75 {
		t.Fatalf("pot = %d, want 75", g2.Pot())
	}
}

func TestSnapshotIsADetachedCopy(t *testing.T) {
	g, _ := newTestGame(testPlayers("A", "B"), nil)
	snap := g.Snapshot()
	snap.Players[0].Money = 1
	snap.Board[3].OwnerId = 1

	if g.players[0].Money != 1500 || g.squares[3].OwnerId != -1 {
		t.Fatal("snapshot aliases live state")
	}
}

func TestSnapshotDropsOpenTrade(t *testing.T) {
	g, _ := newTestGame(testPlayers("A", "B"), nil)
	g.Start()
	g.round = 2
	own(g, 1, 3)
	if err := g.InitiateTrade(0, 1, 3, -1, 100); err != nil {
		t.Fatalf("InitiateTrade: %v", err)
	}
	snap := g.Snapshot()

	g2, _ := newTestGame(nil, nil)
	if err := g2.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if err := g2.ResolveTrade(1, true); err != ErrNoDecision {
		t.Fatalf("trade survived the snapshot: %v", err)
	}
	if g2.squares[3].OwnerId != 2 {
		t.Fatalf("owner = %d, want 2", g2.squares[3].OwnerId)
	}
}

func TestRestoreRefusesInconsistentSnapshots(t *testing.T) {
	base := func() models.Snapshot {
		g, _ := newTestGame(testPlayers("A", "B"), nil)
		return g.Snapshot()
	}

	cases := []struct {
		name string
		warp func(*models.Snapshot)
	}{
		{"wrong version", func(s *models.Snapshot) { s.Version = 99 }},
		{"single player", func(s *models.Snapshot) { s.Players = s.Players[:1] }},
		{"short board", func(s *models.Snapshot) { s.Board = s.Board[:39] }},
		{"current player out of range", func(s *models.Snapshot) { s.CurPlayer = 7 }},
		{"negative pot", func(s *models.Snapshot) { s.Pot = -1 }},
		{"negative cash", func(s *models.Snapshot) { s.Players[0].Money = -5 }},
		{"position off the board", func(s *models.Snapshot) { s.Players[0].Pos = 40 }},
		{"bankrupt with cash", func(s *models.Snapshot) {
			s.Players[0].Bankrupt = true
			s.Players[0].Money = 100
			s.Players = append(s.Players, models.Player{Name: "C", Money: 1})
		}},
		{"already decided", func(s *models.Snapshot) {
			s.Players[0].Bankrupt = true
			s.Players[0].Money = 0
		}},
		{"owner out of range", func(s *models.Snapshot) { s.Board[3].OwnerId = 9 }},
		{"owned by bankrupt seat", func(s *models.Snapshot) {
			s.Players = append(s.Players, models.Player{Name: "C", Money: 1})
			s.Players[2].Bankrupt = true
			s.Players[2].Money = 0
			s.Board[3].OwnerId = 3
		}},
		{"too many houses", func(s *models.Snapshot) {
			s.Board[3].OwnerId = 1
			s.Board[3].Houses = 6
		}},
		{"mortgaged with houses", func(s *models.Snapshot) {
			s.Board[3].OwnerId = 1
			s.Board[3].Houses = 2
			s.Board[3].Mortgaged = true
		}},
	}

	for _, tc := range cases {
		snap := base()
		tc.warp(&snap)
		g, _ := newTestGame(testPlayers("A", "B"), nil)
		if err := g.Restore(snap); !errors.Is(err, ErrBadSnapshot) {
			t.Fatalf("%s: Restore = %v, want ErrBadSnapshot", tc.name, err)
		}
	}
}

func TestRestoreLeavesGameUntouchedOnRefusal(t *testing.T) {
	g, _ := newTestGame(testPlayers("A", "B"), nil)
	g.Start()
	before := g.Snapshot()

	bad := g.Snapshot()
	bad.Version = 99
	if err := g.Restore(bad); !errors.Is(err, ErrBadSnapshot) {
		t.Fatalf("Restore = %v, want ErrBadSnapshot", err)
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Fatal("refused restore mutated the game")
	}
}
