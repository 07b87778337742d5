package engine

import "istopoly/app/models"

// Callbacks is the contract the presentation layer provides. The engine calls
// these while holding the game lock, so implementations must not call back
// into the engine.
type Callbacks interface {
	DiceRolled(d1 int, d2 int)
	PlayerMoved(seat int, pos int)
	Message(text string)
	AskDecision(seat int, prompt string, options []string)
	AskAmount(seat int, prompt string, amount int)
	RollEnabled(seat int, enabled bool)
	BalancesChanged(pot int, players []models.PlayerDto)
	TurnChanged(seat int)
	GameOver(winner int)
}

// NopCallbacks runs a game headless.
type NopCallbacks struct{}

func (NopCallbacks) DiceRolled(int, int)                     {}
func (NopCallbacks) PlayerMoved(int, int)                    {}
func (NopCallbacks) Message(string)                          {}
func (NopCallbacks) AskDecision(int, string, []string)       {}
func (NopCallbacks) AskAmount(int, string, int)              {}
func (NopCallbacks) RollEnabled(int, bool)                   {}
func (NopCallbacks) BalancesChanged(int, []models.PlayerDto) {}
func (NopCallbacks) TurnChanged(int)                         {}
func (NopCallbacks) GameOver(int)                            {}
