package engine

import "fmt"

// botTurn plays one full bot turn synchronously: a finance pass, then jail
// handling or a normal roll. Everything a human decides interactively the bot
// resolves inline from the same state.
func (g *Game) botTurn() {
	seat := g.cur
	g.botManageFinances(seat, 0)
	p := &g.players[seat]
	g.cb.Message(fmt.Sprintf("%s is thinking...", p.Name))

	if p.InJail {
		g.botJailTurn(seat)
		return
	}
	g.rollAndMove()
}

// botJailTurn pays bail when the bot is flush, otherwise gambles on doubles.
func (g *Game) botJailTurn(seat int) {
	if g.players[seat].Money >= g.tuning.BotBailMin {
		// payBail cannot fail here and rolls on for bots
		if err := g.payBail(seat); err == nil {
			return
		}
	}
	g.jailRoll()
}

// botConsiderBuy takes an unowned square only while a safety margin of cash
// remains afterwards.
func (g *Game) botConsiderBuy(seat int, pos int) {
	sq := &g.squares[pos]
	if g.players[seat].Money > sq.Price+g.tuning.BotBuyMargin {
		g.buy(seat, pos)
	} else {
		g.cb.Message(fmt.Sprintf("%s passes on %s", g.players[seat].Name, sq.Name))
	}
	g.advanceTurn()
}

// botManageFinances is the self-management pass: mortgage the cheapest
// unimproved holdings until the requirement is met, and with no requirement
// redeem the most valuable mortgaged holding when flush.
func (g *Game) botManageFinances(seat int, required int) {
	p := &g.players[seat]
	id := seat + 1

	for p.Money < required {
		pick := -1
		for i := range g.squares {
			sq := &g.squares[i]
			if sq.OwnerId != id || sq.Mortgaged || sq.Houses > 0 || sq.Price == 0 {
				continue
			}
			if pick == -1 || sq.Price < g.squares[pick].Price {
				pick = i
			}
		}
		if pick == -1 {
			break
		}
		g.squares[pick].Mortgaged = true
		p.Money += g.squares[pick].MortgageValue()
		g.cb.Message(fmt.Sprintf("%s mortgaged %s", p.Name, g.squares[pick].Name))
	}

	if required == 0 && p.Money > g.tuning.BotCashFloor {
		pick := -1
		for i := range g.squares {
			sq := &g.squares[i]
			if sq.OwnerId != id || !sq.Mortgaged {
				continue
			}
			if pick == -1 || sq.Price > g.squares[pick].Price {
				pick = i
			}
		}
		if pick != -1 {
			cost := g.squares[pick].UnmortgageCost()
			if p.Money >= cost+g.tuning.BotRedeemBuffer {
				p.Money -= cost
				g.squares[pick].Mortgaged = false
				g.cb.Message(fmt.Sprintf("%s redeemed %s", p.Name, g.squares[pick].Name))
			}
		}
	}
	g.cb.BalancesChanged(g.pot, g.playerDtos())
}
