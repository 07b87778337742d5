package engine

import (
	"fmt"

	"istopoly/app/models"
	"istopoly/platform/board"
)

// DefaultChanceDeck is the stock card list. Decks never shrink; a draw samples
// uniformly with replacement.
func DefaultChanceDeck() []models.GameCard {
	return []models.GameCard{
		{Text: "Advance to start", Effect: models.EffectMoveTo, Target: board.GoPos},
		{Text: "Fine: pay 150 to the pot", Effect: models.EffectPayPot, Amount: 150},
		{Text: "Go directly to jail", Effect: models.EffectGoToJail},
		{Text: "Bank error in your favour: collect 100", Effect: models.EffectCredit, Amount: 100},
		{Text: "Take a trip to Taksim", Effect: models.EffectMoveTo, Target: 14},
		{Text: "It is your birthday: collect 50 from every player", Effect: models.EffectLevyOthers, Amount: 50},
	}
}

// DefaultChestDeck mirrors the chance deck, as the stock game ships one list
// for both draw squares.
func DefaultChestDeck() []models.GameCard {
	return DefaultChanceDeck()
}

func (g *Game) drawCard(seat int, deckName string, deck []models.GameCard) {
	card := deck[g.roller.Intn(len(deck))]
	g.cb.Message(fmt.Sprintf("%s: %s", deckName, card.Text))
	g.applyCard(seat, card)
}

// applyCard interprets one card effect against the drawing player. Effects
// re-enter payment and turn-advance logic where the rules demand it.
func (g *Game) applyCard(seat int, card models.GameCard) {
	p := &g.players[seat]
	switch card.Effect {
	case models.EffectCredit:
		p.Money += card.Amount
		g.cb.BalancesChanged(g.pot, g.playerDtos())
		g.advanceTurn()

	case models.EffectPayPot:
		g.processPayment(seat, -1, card.Amount)

	case models.EffectGoToJail:
		g.sendToJail(seat)

	case models.EffectMoveTo:
		// a backward relocation is logically a lap: pay the salary, except
		// for teleports to the jail corner
		if p.Pos > card.Target && card.Target != board.JailPos {
			p.Money += g.tuning.Salary
			g.cb.Message(fmt.Sprintf("%s passes start: +%d", p.Name, g.tuning.Salary))
		}
		p.Pos = card.Target
		g.cb.PlayerMoved(seat, p.Pos)
		g.handleSquare(seat)

	case models.EffectLevyOthers:
		for i := range g.players {
			other := &g.players[i]
			if i == seat || other.Bankrupt {
				continue
			}
			if other.Money >= card.Amount {
				other.Money -= card.Amount
				p.Money += card.Amount
			}
		}
		g.cb.BalancesChanged(g.pot, g.playerDtos())
		g.advanceTurn()

	default:
		g.advanceTurn()
	}
}
