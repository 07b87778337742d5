package engine

import (
	"fmt"

	"istopoly/app/models"
)

// OfferableSquares lists the seat's holdings that may enter a trade:
// unmortgaged and unimproved. Mortgaged or built-up squares are simply
// excluded, never rejected loudly.
func (g *Game) OfferableSquares(seat int) []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.offerable(seat)
}

func (g *Game) offerable(seat int) []int {
	var out []int
	id := seat + 1
	for i := range g.squares {
		sq := &g.squares[i]
		if sq.OwnerId == id && !sq.Mortgaged && sq.Houses == 0 {
			out = append(out, i)
		}
	}
	return out
}

// InitiateTrade opens one proposal: the requester wants a square the target
// owns, offering an optional square of their own plus cash. Bot targets answer
// immediately; a human target suspends the turn until ResolveTrade.
func (g *Game) InitiateTrade(seat int, target int, wanted int, offered int, cash int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateGameOver {
		return ErrGameOver
	}
	if seat != g.cur {
		return ErrNotYourTurn
	}
	if g.state != StateAwaitingRoll {
		return ErrNotNow
	}
	p := &g.players[seat]
	if p.InJail || g.round < g.tuning.TradeGraceRounds {
		return ErrBadTrade
	}
	if target == seat || target < 0 || target >= len(g.players) {
		return ErrBadTrade
	}
	if wanted < 0 || wanted >= len(g.squares) {
		return ErrBadTrade
	}
	if offered != -1 && (offered < 0 || offered >= len(g.squares)) {
		return ErrBadTrade
	}
	proposal := models.TradeProposal{
		Requester: seat, Target: target,
		WantedSquare: wanted, OfferedSquare: offered, OfferedCash: cash,
	}
	if err := g.checkTrade(proposal); err != nil {
		return err
	}
	g.trade = &proposal
	want := &g.squares[wanted]

	if g.players[target].IsBot {
		if g.botEvaluateTrade(*g.trade) {
			g.performTrade(*g.trade)
			g.cb.Message(fmt.Sprintf("%s accepted the deal", g.players[target].Name))
		} else {
			g.cb.Message(fmt.Sprintf("%s rejected the deal", g.players[target].Name))
		}
		g.trade = nil
		return nil
	}

	offerTxt := fmt.Sprintf("%d cash", cash)
	if offered != -1 {
		offerTxt = fmt.Sprintf("%s + %d cash", g.squares[offered].Name, cash)
	}
	g.askDecision(decisionTrade, target, wanted,
		fmt.Sprintf("%s wants %s for %s", p.Name, want.Name, offerTxt),
		[]string{OptAccept, OptReject})
	return nil
}

// ResolveTrade is the human target's answer. Either the whole exchange happens
// or nothing does; the requester then resumes their roll.
func (g *Game) ResolveTrade(seat int, accept bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateGameOver {
		return ErrGameOver
	}
	if g.trade == nil || g.pending.kind != decisionTrade || seat != g.trade.Target {
		return ErrNoDecision
	}
	return g.resolveTradeLocked(accept)
}

func (g *Game) decideTrade(label string) error {
	switch label {
	case OptAccept:
		return g.resolveTradeLocked(true)
	case OptReject:
		return g.resolveTradeLocked(false)
	default:
		return ErrBadOption
	}
}

func (g *Game) resolveTradeLocked(accept bool) error {
	if g.trade == nil {
		return ErrNoDecision
	}
	trade := *g.trade
	g.trade = nil
	g.pending = decision{}
	g.state = StateAwaitingRoll
	g.cb.RollEnabled(trade.Requester, true)
	if !accept {
		g.cb.Message("Deal rejected")
		return nil
	}
	// the requester can mortgage or spend while a human target deliberates,
	// so an accepted proposal is checked again against current state
	if err := g.checkTrade(trade); err != nil {
		g.cb.Message("Deal fell through")
		return err
	}
	g.performTrade(trade)
	g.cb.Message("Deal agreed")
	return nil
}

// checkTrade verifies a proposal against the live game state. It runs at
// initiation and again on acceptance; square indices are already in range.
func (g *Game) checkTrade(t models.TradeProposal) error {
	if g.players[t.Requester].Bankrupt || g.players[t.Target].Bankrupt {
		return ErrBadTrade
	}
	want := &g.squares[t.WantedSquare]
	if want.OwnerId != t.Target+1 || want.Mortgaged || want.Houses > 0 {
		return ErrBadTrade
	}
	if t.OfferedSquare != -1 {
		off := &g.squares[t.OfferedSquare]
		if off.OwnerId != t.Requester+1 || off.Mortgaged || off.Houses > 0 {
			return ErrBadTrade
		}
	}
	if t.OfferedCash < 0 || t.OfferedCash > g.players[t.Requester].Money {
		return ErrBadTrade
	}
	return nil
}

// performTrade executes the swap atomically: wanted square to the requester,
// offered square (if any) and cash to the target.
func (g *Game) performTrade(t models.TradeProposal) {
	g.squares[t.WantedSquare].OwnerId = t.Requester + 1
	if t.OfferedCash > 0 {
		g.players[t.Requester].Money -= t.OfferedCash
		g.players[t.Target].Money += t.OfferedCash
	}
	if t.OfferedSquare != -1 {
		g.squares[t.OfferedSquare].OwnerId = t.Target + 1
	}
	g.cb.BalancesChanged(g.pot, g.playerDtos())
}

// botEvaluateTrade prices the wanted square with a markup and accepts when the
// offer covers it. An offered square that completes one of the bot's color
// groups is worth a flat bonus on top of its price.
func (g *Game) botEvaluateTrade(t models.TradeProposal) bool {
	want := float64(g.squares[t.WantedSquare].Price) * g.tuning.TradeMarkup
	offer := float64(t.OfferedCash)
	if t.OfferedSquare != -1 {
		off := &g.squares[t.OfferedSquare]
		offer += float64(off.Price)
		if g.completesGroup(t.Target, off.Group) {
			offer += float64(g.tuning.TradeSetBonus)
		}
	}
	return offer >= want
}

// completesGroup reports whether gaining one more square of the group would
// hand the seat the full color set.
func (g *Game) completesGroup(seat int, group string) bool {
	if group == "" {
		return false
	}
	id := seat + 1
	size, owned := 0, 0
	for i := range g.squares {
		sq := &g.squares[i]
		if sq.Group != group {
			continue
		}
		if sq.Kind != models.KindStreet {
			return false
		}
		size++
		if sq.OwnerId == id {
			owned++
		}
	}
	return size > 0 && owned+1 == size
}
