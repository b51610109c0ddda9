package wizard

import (
	"strconv"
	"strings"

	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
)

const moovMarker = "moov"

// USSDCode is a merchant payment code to dial, with its tel: form
type USSDCode struct {
	Code   string `json:"code"`
	TelURI string `json:"tel_uri"`
}

// IsMoovNetwork matches the Moov family by name or public name
func IsMoovNetwork(n entity.Network) bool {
	return n.NameContains(moovMarker)
}

// UsesMoovUSSD reports whether a deposit on n must be settled by dialing the merchant code
func UsesMoovUSSD(n entity.Network, merchantPhone string) bool {
	return IsMoovNetwork(n) && n.DepositAPI == entity.DepositAPIConnect && merchantPhone != ""
}

// DeriveMoovUSSD builds the Moov merchant payment code for amount.
// The dialed amount is 99% of the deposit, floored to whole FCFA.
func DeriveMoovUSSD(amount entity.Amount, merchantPhone string) USSDCode {
	adjusted := int64(amount) * 99 / 10000
	code := "*155*2*1*" + merchantPhone + "*" + strconv.FormatInt(adjusted, 10) + "#"
	return USSDCode{
		Code:   code,
		TelURI: "tel:" + strings.ReplaceAll(code, "#", "%23"),
	}
}
