package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
)

func TestDeriveMoovUSSD(t *testing.T) {
	tests := []struct {
		amount   entity.Amount
		merchant string
		code     string
		tel      string
	}{
		{entity.AmountFromWhole(1000), "0700000001", "*155*2*1*0700000001*990#", "tel:*155*2*1*0700000001*990%23"},
		{entity.AmountFromWhole(500), "0101010101", "*155*2*1*0101010101*495#", "tel:*155*2*1*0101010101*495%23"},
		{entity.AmountFromWhole(1), "01", "*155*2*1*01*0#", "tel:*155*2*1*01*0%23"},
		{entity.AmountFromWhole(1999), "01", "*155*2*1*01*1979#", "tel:*155*2*1*01*1979%23"},
		{entity.Amount(100050), "01", "*155*2*1*01*990#", "tel:*155*2*1*01*990%23"},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			got := DeriveMoovUSSD(tc.amount, tc.merchant)
			assert.Equal(t, tc.code, got.Code)
			assert.Equal(t, tc.tel, got.TelURI)
		})
	}
}

func TestMoovDetection(t *testing.T) {
	moov := entity.Network{Name: "MOOV CI", DepositAPI: entity.DepositAPIConnect}
	byPublicName := entity.Network{Name: "flooz", PublicName: "Moov Money", DepositAPI: entity.DepositAPIConnect}
	other := entity.Network{Name: "Wave", DepositAPI: entity.DepositAPIConnect}
	moovWithoutConnect := entity.Network{Name: "moov", DepositAPI: "barkapay"}

	assert.True(t, IsMoovNetwork(moov))
	assert.True(t, IsMoovNetwork(byPublicName))
	assert.False(t, IsMoovNetwork(other))

	assert.True(t, UsesMoovUSSD(moov, "0700000001"))
	assert.True(t, UsesMoovUSSD(byPublicName, "0700000001"))
	assert.False(t, UsesMoovUSSD(moov, ""))
	assert.False(t, UsesMoovUSSD(other, "0700000001"))
	assert.False(t, UsesMoovUSSD(moovWithoutConnect, "0700000001"))
}
