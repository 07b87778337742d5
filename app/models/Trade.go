package models

// TradeProposal lives only for the duration of one negotiation and is never
// persisted. Squares are board indices; OfferedSquare is -1 when the offer is
// cash only.
type TradeProposal struct {
	Requester     int `json:"requester"`
	Target        int `json:"target"`
	WantedSquare  int `json:"wanted_square"`
	OfferedSquare int `json:"offered_square"`
	OfferedCash   int `json:"offered_cash"`
}

// PendingDebt tracks an in-progress forced liquidation. CreditorId is -1 when
// the debt is owed to the bank pot.
type PendingDebt struct {
	Amount     int `json:"amount"`
	CreditorId int `json:"creditor_id"`
}
