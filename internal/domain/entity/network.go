package entity

import (
	"strconv"
	"strings"
)

// DepositAPIConnect marks networks whose deposits are settled by a USSD merchant payment
const DepositAPIConnect = "connect"

// Network is a mobile-money operator
type Network struct {
	ID                int64  `json:"id"`
	UID               string `json:"uid,omitempty"`
	Name              string `json:"name"`
	PublicName        string `json:"public_name,omitempty"`
	Image             string `json:"image,omitempty"`
	ActiveForDeposit  bool   `json:"active_for_deposit"`
	ActiveForWithdraw bool   `json:"active_for_with"`
	DepositAPI        string `json:"deposit_api,omitempty"`
	DepositMessage    string `json:"deposit_message,omitempty"`
	WithdrawalMessage string `json:"withdrawal_message,omitempty"`
}

// Key is the identifier used to list the phones of a network: uid when set, else id
func (n Network) Key() string {
	if n.UID != "" {
		return n.UID
	}
	return strconv.FormatInt(n.ID, 10)
}

// DisplayName prefers the public name
func (n Network) DisplayName() string {
	if n.PublicName != "" {
		return n.PublicName
	}
	return n.Name
}

// ActiveFor reports whether the network accepts the given flow
func (n Network) ActiveFor(flow Flow) bool {
	if flow == FlowWithdraw {
		return n.ActiveForWithdraw
	}
	return n.ActiveForDeposit
}

// Message returns the operator notice shown for a flow
func (n Network) Message(flow Flow) string {
	if flow == FlowWithdraw {
		return n.WithdrawalMessage
	}
	return n.DepositMessage
}

// NameContains matches the name or public name, case-insensitively
func (n Network) NameContains(fragment string) bool {
	fragment = strings.ToLower(fragment)
	return strings.Contains(strings.ToLower(n.Name), fragment) ||
		strings.Contains(strings.ToLower(n.PublicName), fragment)
}

// NetworksFor keeps the networks active for a flow, preserving order
func NetworksFor(all []Network, flow Flow) []Network {
	out := make([]Network, 0, len(all))
	for _, n := range all {
		if n.ActiveFor(flow) {
			out = append(out, n)
		}
	}
	return out
}
