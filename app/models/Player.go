package models

// Player is one seat at the table. Board squares refer back to a player by the
// 1-based seat id (see Square.OwnerId); slice position is the 0-based seat.
type Player struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	Money     int    `json:"money"`
	Pos       int    `json:"pos"`
	InJail    bool   `json:"in_jail"`
	JailTurns int    `json:"jail_turns"`
	Doubles   int    `json:"doubles"`
	IsBot     bool   `json:"is_bot"`
	Bankrupt  bool   `json:"bankrupt"`
}

type PlayerDto struct {
	Seat     int    `json:"seat"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Money    int    `json:"money"`
	Pos      int    `json:"pos"`
	InJail   bool   `json:"in_jail"`
	IsBot    bool   `json:"is_bot"`
	Bankrupt bool   `json:"bankrupt"`
}
