package models

// SnapshotVersion guards restores across incompatible layout changes.
const SnapshotVersion = 1

// Snapshot is the full persistable game state: everything needed to resume at
// the stored player's next roll. Transients (pending debt, open trade) are
// deliberately absent; abandoning a game drops them.
type Snapshot struct {
	Version   int      `json:"version"`
	Players   []Player `json:"players"`
	Board     []Square `json:"board"`
	CurPlayer int      `json:"cur_player"`
	Round     int      `json:"round"`
	Pot       int      `json:"pot"`
}
