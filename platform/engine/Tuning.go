package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning carries every game constant. Values mirror the stock rules; a yaml
// file can override them per deployment.
type Tuning struct {
	StartMoney       int     `yaml:"start_money"`
	Salary           int     `yaml:"salary"`
	Bail             int     `yaml:"bail"`
	MaxJailTurns     int     `yaml:"max_jail_turns"`
	MaxDoubles       int     `yaml:"max_doubles"`
	BotBailMin       int     `yaml:"bot_bail_min"`
	BotBuyMargin     int     `yaml:"bot_buy_margin"`
	BotCashFloor     int     `yaml:"bot_cash_floor"`
	BotRedeemBuffer  int     `yaml:"bot_redeem_buffer"`
	TradeMarkup      float64 `yaml:"trade_markup"`
	TradeSetBonus    int     `yaml:"trade_set_bonus"`
	TradeGraceRounds int     `yaml:"trade_grace_rounds"`
}

func DefaultTuning() Tuning {
	return Tuning{
		StartMoney:       1500,
		Salary:           200,
		Bail:             50,
		MaxJailTurns:     3,
		MaxDoubles:       3,
		BotBailMin:       500,
		BotBuyMargin:     150,
		BotCashFloor:     500,
		BotRedeemBuffer:  200,
		TradeMarkup:      1.3,
		TradeSetBonus:    300,
		TradeGraceRounds: 2,
	}
}

// LoadTuning overlays yaml overrides onto the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning: %w", err)
	}
	return t, nil
}
