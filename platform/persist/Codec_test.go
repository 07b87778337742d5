package persist

import (
	"reflect"
	"testing"

	"istopoly/app/models"
	"istopoly/platform/board"
)

func testSnapshot() models.Snapshot {
	return models.Snapshot{
		Version: models.SnapshotVersion,
		Players: []models.Player{
			{Name: "A", Color: "#ff0000", Money: 1380, Pos: 3},
			{Name: "B", Color: "#0000ff", Money: 1500, Pos: 0, IsBot: true},
		},
		Board:     board.Default(),
		CurPlayer: 1,
		Round:     4,
		Pot:       75,
	}
}

func TestCodecRoundTrip(t *testing.T) {
	want := testSnapshot()
	blob, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestDecodeRefusesGarbage(t *testing.T) {
	if _, err := Decode([]byte("not a save file")); err == nil {
		t.Fatal("garbage blob accepted")
	}
}

func TestDecodeRefusesTruncatedBlob(t *testing.T) {
	blob, err := Encode(testSnapshot())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(blob[:len(blob)/2]); err == nil {
		t.Fatal("truncated blob accepted")
	}
}

func TestDecodeRefusesSchemaViolations(t *testing.T) {
	cases := []struct {
		name string
		warp func(*models.Snapshot)
	}{
		{"short board", func(s *models.Snapshot) { s.Board = s.Board[:39] }},
		{"single player", func(s *models.Snapshot) { s.Players = s.Players[:1] }},
		{"negative cash", func(s *models.Snapshot) { s.Players[0].Money = -10 }},
		{"position off the board", func(s *models.Snapshot) { s.Players[0].Pos = 41 }},
		{"current player out of range", func(s *models.Snapshot) { s.CurPlayer = 9 }},
		{"too many houses", func(s *models.Snapshot) { s.Board[1].Houses = 7 }},
		{"nameless player", func(s *models.Snapshot) { s.Players[0].Name = "" }},
	}
	for _, tc := range cases {
		snap := testSnapshot()
		tc.warp(&snap)
		blob, err := Encode(snap)
		if err != nil {
			t.Fatalf("%s: Encode: %v", tc.name, err)
		}
		if _, err := Decode(blob); err == nil {
			t.Fatalf("%s: accepted", tc.name)
		}
	}
}
