package entity

import "strings"

// Settings is the remote feature configuration of the wallet
type Settings struct {
	ReferralBonus     bool   `json:"referral_bonus"`
	MoovMerchantPhone string `json:"moov_marchand_phone"`
}

// MerchantPhone returns the trimmed Moov merchant number, "" when unset
func (s Settings) MerchantPhone() string {
	return strings.TrimSpace(s.MoovMerchantPhone)
}

// Profile is the subset of the authenticated user the wallet needs
type Profile struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	BonusAvailable Amount `json:"bonus_available"`
}
