package models

// SquareKind is the closed set of square categories. Turn resolution switches
// over this instead of matching on names.
type SquareKind string

const (
	KindGo       SquareKind = "go"
	KindJail     SquareKind = "jail" // visiting only
	KindGoToJail SquareKind = "go-to-jail"
	KindJackpot  SquareKind = "jackpot"
	KindTax      SquareKind = "tax"
	KindChance   SquareKind = "chance"
	KindChest    SquareKind = "chest"
	KindStreet   SquareKind = "street"
	KindTransit  SquareKind = "transit" // stations and docks, one rent ladder
	KindUtility  SquareKind = "utility"
)

// Square is one of the 40 board positions. OwnerId is -1 while unowned,
// otherwise the 1-based seat id of the owner. Houses runs 0..5 where 5 is the
// hotel. Rents is the six-entry schedule: unimproved, 1-4 houses, hotel.
type Square struct {
	Name       string     `json:"name" yaml:"name"`
	Kind       SquareKind `json:"kind" yaml:"kind"`
	Group      string     `json:"group,omitempty" yaml:"group"`
	Price      int        `json:"price,omitempty" yaml:"price"`
	Rents      []int      `json:"rents,omitempty" yaml:"rents"`
	HousePrice int        `json:"house_price,omitempty" yaml:"house_price"`
	TaxAmount  int        `json:"tax_amount,omitempty" yaml:"tax"`
	OwnerId    int        `json:"owner_id" yaml:"-"`
	Houses     int        `json:"houses" yaml:"-"`
	Mortgaged  bool       `json:"mortgaged" yaml:"-"`
}

// MortgageValue is the cash raised by mortgaging the square.
func (s Square) MortgageValue() int { return s.Price / 2 }

// UnmortgageCost is the mortgage value plus the 10% redemption fee.
func (s Square) UnmortgageCost() int {
	return s.Price/2 + s.Price/20
}
