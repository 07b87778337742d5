package engine

import (
	"fmt"

	"istopoly/app/models"
	"istopoly/platform/board"
)

// loop drives turns until the game suspends waiting for a human or ends. Bot
// turns complete synchronously inside beginTurn, so each iteration here is one
// full bot turn (or the setup of a human one).
// botTurnCap bounds one loop invocation so an all-bot endgame that refuses to
// converge cannot spin the server forever; the richest seat takes the win.
const botTurnCap = 100000

func (g *Game) loop() {
	for i := 0; g.state == StateTurnComplete; i++ {
		if i > botTurnCap {
			g.log.Warn("bot stalemate, settling on net worth")
			g.gameOver(g.richest())
			return
		}
		g.beginTurn()
	}
}

func (g *Game) richest() int {
	best, bestWorth := 0, -1
	for i := range g.players {
		if g.players[i].Bankrupt {
			continue
		}
		if worth := g.totalAssets(i); worth > bestWorth {
			best, bestWorth = i, worth
		}
	}
	return best
}

func (g *Game) beginTurn() {
	if w := g.winner(); w != -1 {
		g.gameOver(w)
		return
	}
	g.lastD1, g.lastD2 = 0, 0
	p := &g.players[g.cur]
	if p.Bankrupt {
		g.advanceTurn()
		return
	}
	g.cb.TurnChanged(g.cur)
	g.cb.BalancesChanged(g.pot, g.playerDtos())

	if p.IsBot {
		g.botTurn()
		return
	}
	if p.InJail {
		g.state = StateInJail
		g.pending = decision{kind: decisionJail, seat: g.cur}
		g.cb.Message(fmt.Sprintf("%s is in jail", p.Name))
		g.cb.AskDecision(g.cur, fmt.Sprintf("Pay %d bail or try for doubles?", g.tuning.Bail),
			[]string{OptPayBail, OptRoll})
		return
	}
	g.state = StateAwaitingRoll
	g.cb.Message(fmt.Sprintf("%s to roll", p.Name))
	g.cb.RollEnabled(g.cur, true)
}

// RollDice is the human roll action. While jailed it doubles as the escape
// attempt when the jail decision asked for a roll.
func (g *Game) RollDice(seat int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateGameOver {
		return ErrGameOver
	}
	if seat != g.cur || g.players[seat].IsBot {
		return ErrNotYourTurn
	}
	switch g.state {
	case StateAwaitingRoll:
		g.cb.RollEnabled(seat, false)
		g.rollAndMove()
	case StateInJail:
		g.pending = decision{}
		g.jailRoll()
	default:
		return ErrNotNow
	}
	g.loop()
	return nil
}

// rollAndMove runs one dice throw for the current player: streak bookkeeping,
// the three-doubles jail rule, then movement and square resolution.
func (g *Game) rollAndMove() {
	p := &g.players[g.cur]
	d1, d2 := g.roller.Roll()
	g.lastD1, g.lastD2 = d1, d2
	g.cb.DiceRolled(d1, d2)

	if d1 == d2 {
		p.Doubles++
	} else {
		p.Doubles = 0
	}
	if p.Doubles >= g.tuning.MaxDoubles {
		g.cb.Message(fmt.Sprintf("%s rolled three doubles: jail", p.Name))
		g.sendToJail(g.cur)
		return
	}

	g.state = StateMoving
	g.move(g.cur, d1+d2)
	g.state = StateResolvingSquare
	g.handleSquare(g.cur)
}

// move advances one step at a time with wrap-around; crossing the start square
// pays the salary.
func (g *Game) move(seat int, steps int) {
	p := &g.players[seat]
	for i := 0; i < steps; i++ {
		p.Pos = (p.Pos + 1) % board.Size
		if p.Pos == board.GoPos {
			p.Money += g.tuning.Salary
			g.cb.Message(fmt.Sprintf("%s collects %d salary", p.Name, g.tuning.Salary))
		}
		g.cb.PlayerMoved(seat, p.Pos)
	}
}

// handleSquare dispatches the effect of the square the player stands on.
func (g *Game) handleSquare(seat int) {
	p := &g.players[seat]
	sq := &g.squares[p.Pos]

	switch sq.Kind {
	case models.KindGoToJail:
		g.sendToJail(seat)

	case models.KindJail:
		g.cb.Message("Just visiting")
		g.advanceTurn()

	case models.KindTax:
		g.cb.Message(fmt.Sprintf("%s: pay %d tax", sq.Name, sq.TaxAmount))
		g.processPayment(seat, -1, sq.TaxAmount)

	case models.KindJackpot:
		if g.pot > 0 {
			p.Money += g.pot
			g.cb.Message(fmt.Sprintf("Jackpot! %s wins %d", p.Name, g.pot))
			g.pot = 0
			g.cb.BalancesChanged(g.pot, g.playerDtos())
		}
		g.advanceTurn()

	case models.KindChance:
		g.drawCard(seat, "Chance", g.chance)

	case models.KindChest:
		g.drawCard(seat, "Community fund", g.chest)

	case models.KindGo:
		g.advanceTurn()

	default: // street, transit, utility
		g.handleProperty(seat, p.Pos)
	}
}

func (g *Game) handleProperty(seat int, pos int) {
	p := &g.players[seat]
	sq := &g.squares[pos]
	id := seat + 1

	switch {
	case sq.OwnerId != -1 && sq.OwnerId != id:
		g.payRent(seat, pos)

	case sq.OwnerId == id && g.canBuild(seat, pos):
		if p.IsBot {
			g.build(seat, pos)
			g.advanceTurn()
			return
		}
		g.askDecision(decisionBuild, seat, pos,
			fmt.Sprintf("Build on %s for %d?", sq.Name, sq.HousePrice),
			[]string{OptBuild, OptPass})

	case sq.OwnerId == -1 && sq.Price > 0:
		if p.IsBot {
			g.botConsiderBuy(seat, pos)
			return
		}
		g.askDecision(decisionBuy, seat, pos,
			fmt.Sprintf("Buy %s for %d?", sq.Name, sq.Price),
			[]string{OptBuy, OptPass})

	default:
		g.advanceTurn()
	}
}

func (g *Game) askDecision(kind decisionKind, seat int, square int, prompt string, options []string) {
	g.state = StateAwaitingDecision
	g.pending = decision{kind: kind, seat: seat, square: square}
	g.cb.AskDecision(seat, prompt, options)
}

// Decide answers a pending decision prompt with one of its option labels.
func (g *Game) Decide(seat int, label string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateGameOver {
		return ErrGameOver
	}
	if g.pending.kind == decisionNone || seat != g.pending.seat {
		return ErrNoDecision
	}
	var err error
	switch g.pending.kind {
	case decisionBuy:
		err = g.decideBuy(label)
	case decisionBuild:
		err = g.decideBuild(label)
	case decisionJail:
		err = g.decideJail(label)
	case decisionTrade:
		err = g.decideTrade(label)
	case decisionDebt:
		err = g.decideDebt(label)
	default:
		err = ErrNoDecision
	}
	if err != nil {
		return err
	}
	g.loop()
	return nil
}

func (g *Game) decideBuy(label string) error {
	pos := g.pending.square
	seat := g.pending.seat
	sq := &g.squares[pos]
	p := &g.players[seat]
	switch label {
	case OptBuy:
		if p.Money < sq.Price {
			g.cb.Message("Insufficient funds")
			return ErrNotEnough
		}
		g.pending = decision{}
		g.buy(seat, pos)
		g.advanceTurn()
	case OptPass:
		g.pending = decision{}
		g.cb.Message("Passed")
		g.advanceTurn()
	default:
		return ErrBadOption
	}
	return nil
}

func (g *Game) decideBuild(label string) error {
	pos := g.pending.square
	seat := g.pending.seat
	switch label {
	case OptBuild:
		if !g.canBuild(seat, pos) {
			g.cb.Message("Construction not allowed")
			return ErrBadBuild
		}
		g.pending = decision{}
		g.build(seat, pos)
		g.advanceTurn()
	case OptPass:
		g.pending = decision{}
		g.advanceTurn()
	default:
		return ErrBadOption
	}
	return nil
}

func (g *Game) decideDebt(label string) error {
	if label != OptManage {
		return ErrBadOption
	}
	// the debt stays pending; the client mortgages holdings and then calls
	// SettleDebt
	if g.debt != nil {
		g.cb.Message(fmt.Sprintf("Debt outstanding: %d", g.debt.Amount))
	}
	return nil
}

func (g *Game) decideJail(label string) error {
	switch label {
	case OptPayBail:
		return g.payBail(g.pending.seat)
	case OptRoll:
		g.pending = decision{}
		g.jailRoll()
		return nil
	default:
		return ErrBadOption
	}
}

// PayBail frees the current player immediately for the bail amount; they then
// roll as normal.
func (g *Game) PayBail(seat int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateGameOver {
		return ErrGameOver
	}
	if seat != g.cur {
		return ErrNotYourTurn
	}
	if !g.players[seat].InJail {
		return ErrNotNow
	}
	if err := g.payBail(seat); err != nil {
		return err
	}
	g.loop()
	return nil
}

func (g *Game) payBail(seat int) error {
	p := &g.players[seat]
	if p.Money < g.tuning.Bail {
		g.cb.Message("Insufficient funds")
		return ErrNotEnough
	}
	p.Money -= g.tuning.Bail
	g.pot += g.tuning.Bail
	p.InJail = false
	p.JailTurns = 0
	g.pending = decision{}
	g.cb.Message(fmt.Sprintf("%s paid %d bail", p.Name, g.tuning.Bail))
	g.cb.BalancesChanged(g.pot, g.playerDtos())
	if p.IsBot {
		g.rollAndMove()
		return nil
	}
	g.state = StateAwaitingRoll
	g.cb.RollEnabled(seat, true)
	return nil
}

// jailRoll is the escape attempt: doubles free and move, the third failure
// forces the fine and release without a move.
func (g *Game) jailRoll() {
	p := &g.players[g.cur]
	d1, d2 := g.roller.Roll()
	g.lastD1, g.lastD2 = d1, d2
	g.cb.DiceRolled(d1, d2)

	if d1 == d2 {
		p.InJail = false
		p.JailTurns = 0
		p.Doubles = 0
		g.cb.Message(fmt.Sprintf("%s rolled doubles and is free", p.Name))
		g.state = StateMoving
		g.move(g.cur, d1+d2)
		g.state = StateResolvingSquare
		g.handleSquare(g.cur)
		return
	}
	p.JailTurns++
	g.cb.Message("No doubles")
	if p.JailTurns >= g.tuning.MaxJailTurns {
		p.InJail = false
		p.JailTurns = 0
		g.cb.Message(fmt.Sprintf("%s pays the %d fine and walks next turn", p.Name, g.tuning.Bail))
		g.processPayment(g.cur, -1, g.tuning.Bail)
		return
	}
	g.advanceTurn()
}

func (g *Game) sendToJail(seat int) {
	p := &g.players[seat]
	p.InJail = true
	p.Pos = board.JailPos
	p.JailTurns = 0
	p.Doubles = 0
	g.cb.Message(fmt.Sprintf("%s goes to jail", p.Name))
	g.cb.PlayerMoved(seat, p.Pos)
	g.advanceTurn()
}

// advanceTurn ends the current resolution step: the mover keeps the turn after
// doubles while solvent and free, otherwise control passes to the next seat.
// The departing player's double streak resets with the handover.
func (g *Game) advanceTurn() {
	g.debt = nil
	g.trade = nil
	g.pending = decision{}

	p := &g.players[g.cur]
	again := !p.Bankrupt && !p.InJail && g.lastD1 != 0 && g.lastD1 == g.lastD2
	if again {
		g.cb.Message(fmt.Sprintf("Doubles! %s rolls again", p.Name))
	} else {
		p.Doubles = 0
		next := (g.cur + 1) % len(g.players)
		for safe := 0; g.players[next].Bankrupt && safe < len(g.players); safe++ {
			next = (next + 1) % len(g.players)
		}
		g.cur = next
		if g.cur == 0 {
			g.round++
		}
	}
	g.state = StateTurnComplete
}

func (g *Game) gameOver(winner int) {
	g.state = StateGameOver
	g.log.WithField("winner", g.players[winner].Name).Info("game over")
	g.cb.Message(fmt.Sprintf("Game over, %s wins", g.players[winner].Name))
	g.cb.GameOver(winner)
}
