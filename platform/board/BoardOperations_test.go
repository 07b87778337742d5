package board

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"istopoly/app/models"
)

func TestDefaultLayoutIsValid(t *testing.T) {
	squares := Default()
	if err := Validate(squares); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if squares[GoPos].Kind != models.KindGo {
		t.Fatalf("square %d kind = %q", GoPos, squares[GoPos].Kind)
	}
	if squares[JailPos].Kind != models.KindJail {
		t.Fatalf("square %d kind = %q", JailPos, squares[JailPos].Kind)
	}
	for i, sq := range squares {
		if sq.OwnerId != -1 {
			t.Fatalf("square %d starts owned by %d", i, sq.OwnerId)
		}
	}
}

func TestDefaultGroupSizes(t *testing.T) {
	counts := map[string]int{}
	for _, sq := range Default() {
		if sq.Kind == models.KindStreet {
			counts[sq.Group]++
		}
	}
	if counts["Kahverengi"] != 2 || counts["Lacivert"] != 2 {
		t.Fatalf("corner groups: %v", counts)
	}
	if counts["Açık Mavi"] != 3 || counts["Yeşil"] != 3 {
		t.Fatalf("three-square groups: %v", counts)
	}
}

func TestValidateRejectsBrokenLayouts(t *testing.T) {
	cases := []struct {
		name string
		warp func([]models.Square) []models.Square
	}{
		{"wrong length", func(s []models.Square) []models.Square { return s[:39] }},
		{"street without rents", func(s []models.Square) []models.Square {
			s[1].Rents = s[1].Rents[:3]
			return s
		}},
		{"street without group", func(s []models.Square) []models.Square {
			s[1].Group = ""
			return s
		}},
		{"transit without price", func(s []models.Square) []models.Square {
			s[5].Price = 0
			return s
		}},
		{"tax without amount", func(s []models.Square) []models.Square {
			s[4].TaxAmount = 0
			return s
		}},
		{"unknown kind", func(s []models.Square) []models.Square {
			s[2].Kind = "casino"
			return s
		}},
		{"misplaced start", func(s []models.Square) []models.Square {
			s[0], s[2] = s[2], s[0]
			return s
		}},
		{"misplaced jail", func(s []models.Square) []models.Square {
			s[10], s[17] = s[17], s[10]
			return s
		}},
	}
	for _, tc := range cases {
		if err := Validate(tc.warp(Default())); err == nil {
			t.Fatalf("%s: accepted", tc.name)
		}
	}
}

func TestLoadReadsAYamlLayout(t *testing.T) {
	raw, err := yaml.Marshal(struct {
		Squares []models.Square `yaml:"squares"`
	}{Squares: Default()})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "board.yml")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	squares, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(squares) != Size {
		t.Fatalf("loaded %d squares, want %d", len(squares), Size)
	}
	if squares[3].Name != "Dolapdere" || squares[3].Price != 60 {
		t.Fatalf("square 3 = %+v", squares[3])
	}
	if squares[3].OwnerId != -1 {
		t.Fatalf("loaded square owned by %d", squares[3].OwnerId)
	}
}

func TestLoadRejectsInvalidLayouts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yml")
	if err := os.WriteFile(path, []byte("squares:\n  - name: Lonely\n    kind: street\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("undersized layout accepted")
	}
}
