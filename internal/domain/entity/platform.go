package entity

// Platform is a betting platform the wallet can fund or withdraw from
type Platform struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Image                  string `json:"image,omitempty"`
	Enabled                bool   `json:"enable"`
	MinDeposit             Amount `json:"minimun_deposit"`
	MaxDeposit             Amount `json:"max_deposit"`
	MinWithdraw            Amount `json:"minimun_with"`
	MaxWithdraw            Amount `json:"max_win"`
	DepositTutorialLink    string `json:"deposit_tuto_link,omitempty"`
	WithdrawalTutorialLink string `json:"withdrawal_tuto_link,omitempty"`
	City                   string `json:"city,omitempty"`
	Street                 string `json:"street,omitempty"`
}

// Bounds returns the inclusive amount range of the platform for a flow
func (p Platform) Bounds(flow Flow) (lower, upper Amount) {
	if flow == FlowWithdraw {
		return p.MinWithdraw, p.MaxWithdraw
	}
	return p.MinDeposit, p.MaxDeposit
}

// TutorialLink returns the help video for a flow, if any
func (p Platform) TutorialLink(flow Flow) string {
	if flow == FlowWithdraw {
		return p.WithdrawalTutorialLink
	}
	return p.DepositTutorialLink
}

// EnabledPlatforms keeps the platforms flagged as enabled, preserving order
func EnabledPlatforms(all []Platform) []Platform {
	out := make([]Platform, 0, len(all))
	for _, p := range all {
		if p.Enabled {
			out = append(out, p)
		}
	}
	return out
}
