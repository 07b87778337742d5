package board

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"istopoly/app/models"
)

const (
	Size    = 40
	GoPos   = 0
	JailPos = 10
)

// Load reads a board layout override from a yaml file. The built-in table is
// used when no file is configured.
func Load(path string) ([]models.Square, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var layout struct {
		Squares []models.Square `yaml:"squares"`
	}
	if err := yaml.Unmarshal(raw, &layout); err != nil {
		return nil, fmt.Errorf("board layout: %w", err)
	}
	for i := range layout.Squares {
		layout.Squares[i].OwnerId = -1
	}
	if err := Validate(layout.Squares); err != nil {
		return nil, err
	}
	return layout.Squares, nil
}

// Validate checks the structural invariants any playable layout must hold.
func Validate(squares []models.Square) error {
	if len(squares) != Size {
		return fmt.Errorf("board layout: %d squares, want %d", len(squares), Size)
	}
	for i, sq := range squares {
		switch sq.Kind {
		case models.KindStreet:
			if len(sq.Rents) != 6 {
				return fmt.Errorf("square %d %q: %d rent entries, want 6", i, sq.Name, len(sq.Rents))
			}
			if sq.Group == "" || sq.Price <= 0 || sq.HousePrice <= 0 {
				return fmt.Errorf("square %d %q: incomplete street", i, sq.Name)
			}
		case models.KindTransit, models.KindUtility:
			if sq.Price <= 0 {
				return fmt.Errorf("square %d %q: missing price", i, sq.Name)
			}
		case models.KindTax:
			if sq.TaxAmount <= 0 {
				return fmt.Errorf("square %d %q: missing tax amount", i, sq.Name)
			}
		case models.KindGo, models.KindJail, models.KindGoToJail, models.KindJackpot,
			models.KindChance, models.KindChest:
		default:
			return fmt.Errorf("square %d %q: unknown kind %q", i, sq.Name, sq.Kind)
		}
	}
	if squares[GoPos].Kind != models.KindGo {
		return fmt.Errorf("square %d must be the start square", GoPos)
	}
	if squares[JailPos].Kind != models.KindJail {
		return fmt.Errorf("square %d must be the jail square", JailPos)
	}
	return nil
}

func street(name string, price int, rents []int, group string, housePrice int) models.Square {
	return models.Square{Name: name, Kind: models.KindStreet, Group: group,
		Price: price, Rents: rents, HousePrice: housePrice, OwnerId: -1}
}

func plain(name string, kind models.SquareKind) models.Square {
	return models.Square{Name: name, Kind: kind, OwnerId: -1}
}

// Default returns the stock Istanbul layout.
func Default() []models.Square {
	return []models.Square{
		plain("BAŞLANGIÇ", models.KindGo),
		street("Kasımpaşa", 60, []int{2, 10, 30, 90, 160, 250}, "Kahverengi", 50),
		plain("K.Fonu", models.KindChest),
		street("Dolapdere", 60, []int{4, 20, 60, 180, 320, 450}, "Kahverengi", 50),
		{Name: "Gelir V.", Kind: models.KindTax, TaxAmount: 200, OwnerId: -1},
		{Name: "H.Paşa Gar", Kind: models.KindTransit, Group: "İstasyon", Price: 200, OwnerId: -1},
		street("Sultanahmet", 100, []int{6, 30, 90, 270, 400, 550}, "Açık Mavi", 50),
		plain("ŞANS", models.KindChance),
		street("Karaköy", 100, []int{6, 30, 90, 270, 400, 550}, "Açık Mavi", 50),
		street("Sirkeci", 120, []int{8, 40, 100, 300, 450, 600}, "Açık Mavi", 50),
		plain("KODES (Ziyaret)", models.KindJail),
		street("Beyoğlu", 140, []int{10, 50, 150, 450, 625, 750}, "Pembe", 100),
		{Name: "Elek. İd.", Kind: models.KindUtility, Group: "Şirket", Price: 150, OwnerId: -1},
		street("Beşiktaş", 140, []int{10, 50, 150, 450, 625, 750}, "Pembe", 100),
		street("Taksim", 160, []int{12, 60, 180, 500, 700, 900}, "Pembe", 100),
		{Name: "Kadıköy Vap.", Kind: models.KindTransit, Group: "İskele", Price: 200, OwnerId: -1},
		street("Harbiye", 180, []int{14, 70, 200, 550, 750, 950}, "Turuncu", 100),
		plain("K.Fonu", models.KindChest),
		street("Şişli", 180, []int{14, 70, 200, 550, 750, 950}, "Turuncu", 100),
		street("Mecidiyeköy", 200, []int{16, 80, 220, 600, 800, 1000}, "Turuncu", 100),
		plain("BANKA", models.KindJackpot),
		street("Bostancı", 220, []int{18, 90, 250, 700, 875, 1050}, "Kırmızı", 150),
		plain("ŞANS", models.KindChance),
		street("Erenköy", 220, []int{18, 90, 250, 700, 875, 1050}, "Kırmızı", 150),
		street("Caddebostan", 240, []int{20, 100, 300, 750, 925, 1110}, "Kırmızı", 150),
		{Name: "Kabataş Vap.", Kind: models.KindTransit, Group: "İskele", Price: 200, OwnerId: -1},
		street("Nişantaşı", 260, []int{22, 110, 330, 800, 975, 1150}, "Sarı", 150),
		street("Teşvikiye", 260, []int{22, 110, 330, 800, 975, 1150}, "Sarı", 150),
		{Name: "Sular İd.", Kind: models.KindUtility, Group: "Şirket", Price: 150, OwnerId: -1},
		street("Maçka", 280, []int{24, 120, 360, 850, 1025, 1200}, "Sarı", 150),
		plain("HAPSE GİR", models.KindGoToJail),
		street("Levent", 300, []int{26, 130, 390, 900, 1100, 1275}, "Yeşil", 200),
		street("Etiler", 300, []int{26, 130, 390, 900, 1100, 1275}, "Yeşil", 200),
		plain("K.Fonu", models.KindChest),
		street("Bebek", 320, []int{28, 150, 450, 1000, 1200, 1400}, "Yeşil", 200),
		{Name: "Sir. Tren", Kind: models.KindTransit, Group: "İstasyon", Price: 200, OwnerId: -1},
		plain("ŞANS", models.KindChance),
		street("Tarabya", 350, []int{35, 175, 500, 1100, 1300, 1500}, "Lacivert", 200),
		{Name: "Lüks V.", Kind: models.KindTax, TaxAmount: 100, OwnerId: -1},
		street("Yeniköy", 400, []int{50, 200, 600, 1400, 1700, 2000}, "Lacivert", 200),
	}
}
