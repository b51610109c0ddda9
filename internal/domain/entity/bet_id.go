package entity

// MinBetIDLength is the shortest bet identifier accepted when adding one
const MinBetIDLength = 3

// AcceptedCurrencyID is the remote currency id of XOF, the only currency bet accounts may hold
const AcceptedCurrencyID = 27

// BetID is the user's account identifier on a betting platform
type BetID struct {
	ID        int64  `json:"id"`
	UserAppID string `json:"user_app_id"`
	App       string `json:"app"`
}

// BetAccount is what search-user reports about a bet identifier
type BetAccount struct {
	UserID     int64  `json:"UserId"`
	Name       string `json:"Name"`
	CurrencyID int    `json:"CurrencyId"`
}

// Found reports whether the platform knows the identifier
func (a BetAccount) Found() bool {
	return a.UserID != 0
}
