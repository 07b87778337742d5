package engine

import (
	"fmt"

	"istopoly/app/models"
)

// payRent charges the mover for standing on someone else's square.
func (g *Game) payRent(seat int, pos int) {
	sq := &g.squares[pos]
	if sq.Mortgaged {
		g.cb.Message(fmt.Sprintf("%s is mortgaged, no rent due", sq.Name))
		g.advanceTurn()
		return
	}
	owner := sq.OwnerId - 1
	if g.players[owner].Bankrupt {
		g.advanceTurn()
		return
	}
	rent := g.rentFor(pos)
	g.cb.Message(fmt.Sprintf("%s pays %d rent to %s", g.players[seat].Name, rent, g.players[owner].Name))
	g.processPayment(seat, owner, rent)
}

// rentFor computes rent for an unmortgaged owned square. Transit squares share
// one ladder across both transit groups; utilities multiply the last dice sum;
// streets double the base rent while the whole group is owned unimproved.
func (g *Game) rentFor(pos int) int {
	sq := &g.squares[pos]
	switch sq.Kind {
	case models.KindTransit:
		owned := 0
		for i := range g.squares {
			if g.squares[i].Kind == models.KindTransit && g.squares[i].OwnerId == sq.OwnerId {
				owned++
			}
		}
		return 25 << (owned - 1)

	case models.KindUtility:
		owned := 0
		for i := range g.squares {
			if g.squares[i].Kind == models.KindUtility && g.squares[i].OwnerId == sq.OwnerId {
				owned++
			}
		}
		sum := g.lastD1 + g.lastD2
		if owned >= 2 {
			return sum * 10
		}
		return sum * 4

	case models.KindStreet:
		if sq.Houses == 0 && g.hasFullGroup(sq.OwnerId-1, sq.Group) {
			return sq.Rents[0] * 2
		}
		n := sq.Houses
		if n > 5 {
			n = 5
		}
		return sq.Rents[n]
	}
	return 0
}

// processPayment moves amount from the debtor to the creditor (or to the pot
// when creditor is -1). A shortfall that liquidation can cover becomes a
// pending debt: bots mortgage their way out immediately, humans are handed to
// asset management. A shortfall liquidation cannot cover is bankruptcy.
func (g *Game) processPayment(debtor int, creditor int, amount int) {
	p := &g.players[debtor]
	if p.Money >= amount {
		g.transfer(debtor, creditor, amount)
		g.advanceTurn()
		return
	}
	if g.totalAssets(debtor) >= amount {
		g.debt = &models.PendingDebt{Amount: amount, CreditorId: creditor}
		g.cb.Message(fmt.Sprintf("%s is short %d and must mortgage", p.Name, amount-p.Money))
		if p.IsBot {
			g.botManageFinances(debtor, amount)
			if p.Money >= amount {
				g.debt = nil
				g.transfer(debtor, creditor, amount)
				g.advanceTurn()
				return
			}
			g.bankrupt(debtor, creditor)
			return
		}
		g.state = StateAwaitingDecision
		g.pending = decision{kind: decisionDebt, seat: debtor}
		g.cb.AskAmount(debtor, "Raise cash to settle the debt", amount)
		g.cb.AskDecision(debtor, fmt.Sprintf("Debt: %d. Manage your holdings.", amount),
			[]string{OptManage})
		return
	}
	g.bankrupt(debtor, creditor)
}

func (g *Game) transfer(debtor int, creditor int, amount int) {
	g.players[debtor].Money -= amount
	if creditor >= 0 {
		g.players[creditor].Money += amount
	} else {
		g.pot += amount
	}
	g.cb.Message(fmt.Sprintf("Paid %d", amount))
	g.cb.BalancesChanged(g.pot, g.playerDtos())
}

// totalAssets is cash plus everything liquidation could raise: half the price
// of each unmortgaged holding and half of each building.
func (g *Game) totalAssets(seat int) int {
	total := g.players[seat].Money
	id := seat + 1
	for i := range g.squares {
		sq := &g.squares[i]
		if sq.OwnerId == id && !sq.Mortgaged {
			total += sq.Price/2 + sq.Houses*sq.HousePrice/2
		}
	}
	return total
}

// bankrupt removes the debtor from play. A player creditor inherits the
// debtor's remaining cash and every square as-is; the bank clears the squares
// back to unowned and the cash joins the pot.
func (g *Game) bankrupt(debtor int, creditor int) {
	p := &g.players[debtor]
	p.Bankrupt = true
	g.debt = nil
	id := debtor + 1

	if creditor >= 0 {
		g.players[creditor].Money += p.Money
		g.cb.Message(fmt.Sprintf("%s is bankrupt, assets go to %s", p.Name, g.players[creditor].Name))
	} else {
		g.pot += p.Money
		g.cb.Message(fmt.Sprintf("%s is bankrupt, deeds return to the bank", p.Name))
	}
	p.Money = 0
	p.InJail = false
	p.JailTurns = 0
	p.Doubles = 0

	for i := range g.squares {
		sq := &g.squares[i]
		if sq.OwnerId != id {
			continue
		}
		if creditor >= 0 {
			sq.OwnerId = creditor + 1
		} else {
			sq.OwnerId = -1
			sq.Mortgaged = false
			sq.Houses = 0
		}
	}
	g.cb.BalancesChanged(g.pot, g.playerDtos())
	g.log.WithField("player", p.Name).Info("bankruptcy")

	if w := g.winner(); w != -1 {
		g.gameOver(w)
		return
	}
	g.advanceTurn()
}

// hasFullGroup reports whether the seat owns every street in the color group.
// Transit, utility and ungrouped squares never qualify.
func (g *Game) hasFullGroup(seat int, group string) bool {
	if group == "" {
		return false
	}
	id := seat + 1
	found := false
	for i := range g.squares {
		sq := &g.squares[i]
		if sq.Group != group {
			continue
		}
		if sq.Kind != models.KindStreet {
			return false
		}
		found = true
		if sq.OwnerId != id {
			return false
		}
	}
	return found
}

// canBuild applies the construction legality rules, including the even-build
// rule: no square may rise above the lowest building count in its group.
func (g *Game) canBuild(seat int, pos int) bool {
	sq := &g.squares[pos]
	if sq.Kind != models.KindStreet || sq.Mortgaged || sq.HousePrice == 0 {
		return false
	}
	if !g.hasFullGroup(seat, sq.Group) {
		return false
	}
	groupMin := 6
	for i := range g.squares {
		other := &g.squares[i]
		if other.Group != sq.Group {
			continue
		}
		if other.Mortgaged {
			return false
		}
		if other.Houses < groupMin {
			groupMin = other.Houses
		}
	}
	if g.players[seat].Money < sq.HousePrice || sq.Houses >= 5 {
		return false
	}
	return sq.Houses == groupMin
}

func (g *Game) buy(seat int, pos int) {
	sq := &g.squares[pos]
	g.players[seat].Money -= sq.Price
	sq.OwnerId = seat + 1
	g.cb.Message(fmt.Sprintf("%s bought %s", g.players[seat].Name, sq.Name))
	g.cb.BalancesChanged(g.pot, g.playerDtos())
}

func (g *Game) build(seat int, pos int) {
	sq := &g.squares[pos]
	g.players[seat].Money -= sq.HousePrice
	sq.Houses++
	if sq.Houses == 5 {
		g.cb.Message(fmt.Sprintf("Hotel on %s", sq.Name))
	} else {
		g.cb.Message(fmt.Sprintf("House on %s", sq.Name))
	}
	g.cb.BalancesChanged(g.pot, g.playerDtos())
}

// OwnSquareActions lists what the owner can currently do with a square; the
// presentation layer builds its management menu from this.
type OwnSquareActions struct {
	Square        int  `json:"square"`
	CanBuild      bool `json:"can_build"`
	CanMortgage   bool `json:"can_mortgage"`
	CanUnmortgage bool `json:"can_unmortgage"`
	HousePrice    int  `json:"house_price"`
	MortgageValue int  `json:"mortgage_value"`
	RedeemCost    int  `json:"redeem_cost"`
}

// SquareClicked routes a board tap on the player's own square to the
// construction/mortgage options available right now.
func (g *Game) SquareClicked(seat int, pos int) (OwnSquareActions, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateGameOver {
		return OwnSquareActions{}, ErrGameOver
	}
	if pos < 0 || pos >= len(g.squares) {
		return OwnSquareActions{}, ErrBadMortgage
	}
	sq := &g.squares[pos]
	if seat != g.cur || sq.OwnerId != seat+1 {
		return OwnSquareActions{}, ErrNotYourTurn
	}
	return OwnSquareActions{
		Square:        pos,
		CanBuild:      g.canBuild(seat, pos),
		CanMortgage:   !sq.Mortgaged && sq.Houses == 0,
		CanUnmortgage: sq.Mortgaged && g.players[seat].Money >= sq.UnmortgageCost(),
		HousePrice:    sq.HousePrice,
		MortgageValue: sq.MortgageValue(),
		RedeemCost:    sq.UnmortgageCost(),
	}, nil
}

// Mortgage converts an unimproved holding to cash at half price.
func (g *Game) Mortgage(seat int, pos int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateGameOver {
		return ErrGameOver
	}
	if seat != g.cur {
		return ErrNotYourTurn
	}
	sq := &g.squares[pos]
	if sq.OwnerId != seat+1 || sq.Mortgaged || sq.Houses > 0 || sq.Price == 0 {
		return ErrBadMortgage
	}
	sq.Mortgaged = true
	g.players[seat].Money += sq.MortgageValue()
	g.cb.Message(fmt.Sprintf("%s mortgaged %s for %d", g.players[seat].Name, sq.Name, sq.MortgageValue()))
	g.cb.BalancesChanged(g.pot, g.playerDtos())
	return nil
}

// Unmortgage redeems a mortgaged holding for the mortgage value plus the fee.
func (g *Game) Unmortgage(seat int, pos int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateGameOver {
		return ErrGameOver
	}
	if seat != g.cur {
		return ErrNotYourTurn
	}
	sq := &g.squares[pos]
	if sq.OwnerId != seat+1 || !sq.Mortgaged {
		return ErrBadMortgage
	}
	cost := sq.UnmortgageCost()
	if g.players[seat].Money < cost {
		g.cb.Message("Insufficient funds")
		return ErrNotEnough
	}
	g.players[seat].Money -= cost
	sq.Mortgaged = false
	g.cb.Message(fmt.Sprintf("%s redeemed %s for %d", g.players[seat].Name, sq.Name, cost))
	g.cb.BalancesChanged(g.pot, g.playerDtos())
	return nil
}

// BuildAt is the off-landing construction path: the owner taps one of their
// squares before rolling and adds a building when legal. It does not end the
// turn.
func (g *Game) BuildAt(seat int, pos int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateGameOver {
		return ErrGameOver
	}
	if seat != g.cur {
		return ErrNotYourTurn
	}
	if g.squares[pos].OwnerId != seat+1 || !g.canBuild(seat, pos) {
		return ErrBadBuild
	}
	g.build(seat, pos)
	return nil
}

// SettleDebt retries a pending debt after the player has raised cash. It
// either completes the payment or reports that more liquidation is needed.
func (g *Game) SettleDebt(seat int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateGameOver {
		return ErrGameOver
	}
	if seat != g.cur || g.debt == nil {
		return ErrNoDecision
	}
	p := &g.players[seat]
	if p.Money < g.debt.Amount {
		if g.totalAssets(seat) < g.debt.Amount {
			creditor := g.debt.CreditorId
			g.bankrupt(seat, creditor)
			g.loop()
			return nil
		}
		g.cb.Message(fmt.Sprintf("Still short %d", g.debt.Amount-p.Money))
		return ErrNotEnough
	}
	amount, creditor := g.debt.Amount, g.debt.CreditorId
	g.debt = nil
	g.pending = decision{}
	g.transfer(seat, creditor, amount)
	g.advanceTurn()
	g.loop()
	return nil
}
