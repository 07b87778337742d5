package models

// CardEffect enumerates everything a drawn card can do. Keeping the effects as
// data instead of closures keeps the decks serializable.
type CardEffect string

const (
	EffectCredit     CardEffect = "credit"  // bank pays Amount to the drawer
	EffectPayPot     CardEffect = "pay-pot" // drawer pays Amount into the pot
	EffectMoveTo     CardEffect = "move-to" // relocate to Target, salary on logical wrap
	EffectGoToJail   CardEffect = "go-to-jail"
	EffectLevyOthers CardEffect = "levy-others" // every other active player pays Amount to the drawer
)

type GameCard struct {
	Text   string     `json:"text"`
	Effect CardEffect `json:"effect"`
	Amount int        `json:"amount,omitempty"`
	Target int        `json:"target,omitempty"`
}
