package engine

import (
	"reflect"
	"testing"
)

// tradeGame starts a two-seat game already past the trade grace rounds, with
// seat 0 about to roll.
func tradeGame(t *testing.T, players ...string) (*Game, *recorder) {
	t.Helper()
	if len(players) == 0 {
		players = []string{"A", "B"}
	}
	g, rec := newTestGame(testPlayers(players...), nil)
	g.Start()
	g.round = 2
	return g, rec
}

func TestTradeGuards(t *testing.T) {
	g, _ := tradeGame(t)
	own(g, 1, 3)

	g.round = 1
	if err := g.InitiateTrade(0, 1, 3, -1, 0); err != ErrBadTrade {
		t.Fatalf("early trade = %v, want ErrBadTrade", err)
	}
	g.round = 2

	if err := g.InitiateTrade(1, 0, 3, -1, 0); err != ErrNotYourTurn {
		t.Fatalf("off-turn trade = %v, want ErrNotYourTurn", err)
	}
	if err := g.InitiateTrade(0, 0, 3, -1, 0); err != ErrBadTrade {
		t.Fatalf("self trade = %v, want ErrBadTrade", err)
	}
	if err := g.InitiateTrade(0, 1, 5, -1, 0); err != ErrBadTrade {
		t.Fatalf("unowned wanted square = %v, want ErrBadTrade", err)
	}
	if err := g.InitiateTrade(0, 1, 3, -1, 2000); err != ErrBadTrade {
		t.Fatalf("cash beyond balance = %v, want ErrBadTrade", err)
	}
	if err := g.InitiateTrade(0, 1, 3, 5, 0); err != ErrBadTrade {
		t.Fatalf("offered square not owned = %v, want ErrBadTrade", err)
	}

	g.squares[3].Mortgaged = true
	if err := g.InitiateTrade(0, 1, 3, -1, 100); err != ErrBadTrade {
		t.Fatalf("mortgaged wanted square = %v, want ErrBadTrade", err)
	}
}

func TestTradeOnlyBeforeRolling(t *testing.T) {
	roller := &scriptRoller{rolls: [][2]int{{1, 2}}}
	g, _ := newTestGame(testPlayers("A", "B"), roller)
	own(g, 1, 1)
	g.Start()
	g.round = 2

	if err := g.RollDice(0); err != nil {
		t.Fatalf("RollDice: %v", err)
	}
	// seat 0 now has a buy prompt open; no trade may start
	if err := g.InitiateTrade(0, 1, 1, -1, 100); err != ErrNotNow {
		t.Fatalf("mid-resolution trade = %v, want ErrNotNow", err)
	}
}

func TestTradeWithHumanTargetAccepted(t *testing.T) {
	g, rec := tradeGame(t)
	own(g, 1, 3)

	if err := g.InitiateTrade(0, 1, 3, -1, 120); err != nil {
		t.Fatalf("InitiateTrade: %v", err)
	}
	if g.State() != StateAwaitingDecision {
		t.Fatalf("state = %q, want %q", g.State(), StateAwaitingDecision)
	}
	got := rec.lastAsk(t)
	if got.seat != 1 || got.options[0] != OptAccept || got.options[1] != OptReject {
		t.Fatalf("ask = %+v", got)
	}

	if err := g.ResolveTrade(1, true); err != nil {
		t.Fatalf("ResolveTrade: %v", err)
	}
	if g.squares[3].OwnerId != 1 {
		t.Fatalf("owner = %d, want 1", g.squares[3].OwnerId)
	}
	if g.players[0].Money != 1380 || g.players[1].Money != 1620 {
		t.Fatalf("cash flow: requester %d target %d", g.players[0].Money, g.players[1].Money)
	}
	if g.State() != StateAwaitingRoll || g.CurrentSeat() != 0 {
		t.Fatalf("requester not resumed: state %q seat %d", g.State(), g.CurrentSeat())
	}
}

func TestTradeRejectionChangesNothing(t *testing.T) {
	g, _ := tradeGame(t)
	own(g, 1, 3)
	before := g.Snapshot()

	if err := g.InitiateTrade(0, 1, 3, -1, 120); err != nil {
		t.Fatalf("InitiateTrade: %v", err)
	}
	if err := g.ResolveTrade(1, false); err != nil {
		t.Fatalf("ResolveTrade: %v", err)
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Fatal("rejected trade left a trace in the game state")
	}
	if g.State() != StateAwaitingRoll {
		t.Fatalf("state = %q, want %q", g.State(), StateAwaitingRoll)
	}
}

func TestTradeSwapIsAtomic(t *testing.T) {
	g, _ := tradeGame(t)
	own(g, 0, 1)
	own(g, 1, 3)

	if err := g.InitiateTrade(0, 1, 3, 1, 50); err != nil {
		t.Fatalf("InitiateTrade: %v", err)
	}
	if err := g.Decide(1, OptAccept); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if g.squares[3].OwnerId != 1 || g.squares[1].OwnerId != 2 {
		t.Fatalf("swap incomplete: sq3 %d sq1 %d", g.squares[3].OwnerId, g.squares[1].OwnerId)
	}
	if g.players[0].Money != 1450 || g.players[1].Money != 1550 {
		t.Fatalf("cash flow: %d / %d", g.players[0].Money, g.players[1].Money)
	}
}

func TestBotTradeThreshold(t *testing.T) {
	// wanted price 60, markup 1.3: the bot wants at least 78
	for _, tc := range []struct {
		cash   int
		accept bool
	}{
		{78, true},
		{77, false},
	} {
		g, _ := tradeGame(t)
		g.players[1].IsBot = true
		own(g, 1, 3)

		if err := g.InitiateTrade(0, 1, 3, -1, tc.cash); err != nil {
			t.Fatalf("InitiateTrade(%d): %v", tc.cash, err)
		}
		gotAccept := g.squares[3].OwnerId == 1
		if gotAccept != tc.accept {
			t.Fatalf("cash %d: accepted=%v, want %v", tc.cash, gotAccept, tc.accept)
		}
		if g.trade != nil {
			t.Fatal("bot answer left the proposal open")
		}
	}
}

func TestBotValuesASetCompletingSquare(t *testing.T) {
	// wanted Yeniköy (400) prices at 520; the offered Karaköy (100) plus 120
	// cash only clears that bar with the set bonus
	g, _ := tradeGame(t)
	g.players[1].IsBot = true
	own(g, 1, 39)
	own(g, 0, 8)

	if err := g.InitiateTrade(0, 1, 39, 8, 120); err != nil {
		t.Fatalf("InitiateTrade: %v", err)
	}
	if g.squares[39].OwnerId == 1 {
		t.Fatal("bot accepted without the set bonus")
	}

	g2, _ := tradeGame(t)
	g2.players[1].IsBot = true
	own(g2, 1, 39, 6, 9) // two of three Açık Mavi squares
	own(g2, 0, 8)

	if err := g2.InitiateTrade(0, 1, 39, 8, 120); err != nil {
		t.Fatalf("InitiateTrade: %v", err)
	}
	if g2.squares[39].OwnerId != 1 {
		t.Fatal("bot rejected a set-completing offer")
	}
}

func TestOfferableExcludesMortgagedAndBuilt(t *testing.T) {
	g, _ := tradeGame(t)
	own(g, 0, 1, 3, 5)
	g.squares[1].Mortgaged = true
	g.squares[3].Houses = 2

	got := g.OfferableSquares(0)
	if len(got) != 1 || got[0] != 5 {
		t.Fatalf("offerable = %v, want [5]", got)
	}
}

func TestAcceptanceRechecksRequesterCash(t *testing.T) {
	// the requester spends down below the offered cash while the target is
	// deliberating; accepting the stale offer must not drive cash negative
	g, _ := tradeGame(t)
	own(g, 0, 1)
	g.squares[1].Mortgaged = true
	own(g, 1, 3)

	if err := g.InitiateTrade(0, 1, 3, -1, 1500); err != nil {
		t.Fatalf("InitiateTrade: %v", err)
	}
	if err := g.Unmortgage(0, 1); err != nil {
		t.Fatalf("Unmortgage: %v", err)
	}
	if err := g.ResolveTrade(1, true); err != ErrBadTrade {
		t.Fatalf("stale acceptance = %v, want ErrBadTrade", err)
	}
	if g.players[0].Money < 0 {
		t.Fatalf("requester cash = %d", g.players[0].Money)
	}
	if g.squares[3].OwnerId != 2 {
		t.Fatalf("owner = %d, want 2", g.squares[3].OwnerId)
	}
	if g.State() != StateAwaitingRoll || g.CurrentSeat() != 0 {
		t.Fatalf("requester not resumed: state %q seat %d", g.State(), g.CurrentSeat())
	}
}

func TestAcceptanceRechecksOfferedSquare(t *testing.T) {
	// the offered square is mortgaged mid-deliberation; the target must not
	// receive it
	g, _ := tradeGame(t)
	own(g, 0, 1)
	own(g, 1, 3)

	if err := g.InitiateTrade(0, 1, 3, 1, 0); err != nil {
		t.Fatalf("InitiateTrade: %v", err)
	}
	if err := g.Mortgage(0, 1); err != nil {
		t.Fatalf("Mortgage: %v", err)
	}
	if err := g.Decide(1, OptAccept); err != ErrBadTrade {
		t.Fatalf("stale acceptance = %v, want ErrBadTrade", err)
	}
	if g.squares[1].OwnerId != 1 || g.squares[3].OwnerId != 2 {
		t.Fatalf("ownership moved: sq1 %d sq3 %d", g.squares[1].OwnerId, g.squares[3].OwnerId)
	}
}

func TestAcceptanceRechecksWantedSquare(t *testing.T) {
	g, _ := tradeGame(t)
	own(g, 1, 3)

	if err := g.InitiateTrade(0, 1, 3, -1, 100); err != nil {
		t.Fatalf("InitiateTrade: %v", err)
	}
	g.squares[3].Mortgaged = true
	if err := g.ResolveTrade(1, true); err != ErrBadTrade {
		t.Fatalf("stale acceptance = %v, want ErrBadTrade", err)
	}
	if g.players[0].Money != 1500 || g.players[1].Money != 1500 {
		t.Fatalf("cash moved: %d / %d", g.players[0].Money, g.players[1].Money)
	}
}

func TestResolveTradeWithoutProposal(t *testing.T) {
	g, _ := tradeGame(t)
	if err := g.ResolveTrade(1, true); err != ErrNoDecision {
		t.Fatalf("resolve without proposal = %v, want ErrNoDecision", err)
	}
}
