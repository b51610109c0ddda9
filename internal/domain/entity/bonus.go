package entity

// Bonus is a referral reward credited to the user
type Bonus struct {
	ID          int64  `json:"id"`
	Amount      Amount `json:"amount"`
	Reason      string `json:"reason_bonus"`
	Transaction int64  `json:"transaction,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// TotalBonus sums the amounts of a page of bonuses
func TotalBonus(bonuses []Bonus) Amount {
	var total Amount
	for _, b := range bonuses {
		total += b.Amount
	}
	return total
}

// BonusTransactionRequest converts available bonus into a platform deposit
type BonusTransactionRequest struct {
	App       string `json:"app"`
	UserAppID string `json:"user_app_id"`
	Amount    Amount `json:"amount"`
}

// Coupon is a betting coupon shared with the user
type Coupon struct {
	ID         int64           `json:"id"`
	Code       string          `json:"code"`
	BetApp     string          `json:"bet_app,omitempty"`
	BetAppInfo *CouponPlatform `json:"bet_app_details,omitempty"`
	CreatedAt  string          `json:"created_at"`
}

// CouponPlatform is the platform summary embedded in a coupon
type CouponPlatform struct {
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}
