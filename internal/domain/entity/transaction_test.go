package entity

import (
	"encoding/json"
	"testing"

	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeSelection() Selection {
	return Selection{
		Platform:       &Platform{ID: "1xbet", City: "Abidjan", Street: "Rue 12"},
		BetID:          &BetID{ID: 9, UserAppID: "123456789", App: "1xbet"},
		Network:        &Network{ID: 4, Name: "MTN"},
		Phone:          &UserPhone{ID: 7, Phone: "+225 05 00 00 00 00", Network: 4},
		Amount:         "1000",
		WithdrawalCode: "AB12",
	}
}

func TestNewTransactionRequest(t *testing.T) {
	t.Run("Deposit payload", func(t *testing.T) {
		req, err := NewTransactionRequest(FlowDeposit, completeSelection(), AmountFromWhole(1000))
		require.NoError(t, err)

		out, err := json.Marshal(req)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"amount": 1000,
			"phone_number": "2250500000000",
			"app": "1xbet",
			"user_app_id": "123456789",
			"network": 4,
			"source": "web",
			"city": "Abidjan",
			"street": "Rue 12"
		}`, string(out))
	})

	t.Run("Withdrawal payload carries the code", func(t *testing.T) {
		sel := completeSelection()
		sel.Platform.City = ""
		sel.Platform.Street = ""

		req, err := NewTransactionRequest(FlowWithdraw, sel, Amount(150050))
		require.NoError(t, err)

		out, err := json.Marshal(req)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"amount": 1500.5,
			"phone_number": "2250500000000",
			"app": "1xbet",
			"user_app_id": "123456789",
			"network": 4,
			"source": "web",
			"withdriwal_code": "AB12"
		}`, string(out))
	})

	t.Run("Incomplete selection", func(t *testing.T) {
		sel := completeSelection()
		sel.Phone = nil
		_, err := NewTransactionRequest(FlowDeposit, sel, AmountFromWhole(1000))
		assert.ErrorIs(t, err, errs.ErrPhoneRequired)

		sel = completeSelection()
		sel.Platform = nil
		_, err = NewTransactionRequest(FlowDeposit, sel, AmountFromWhole(1000))
		assert.ErrorIs(t, err, errs.ErrPlatformRequired)
	})

	t.Run("Zero amount", func(t *testing.T) {
		_, err := NewTransactionRequest(FlowDeposit, completeSelection(), 0)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestPageRequestNormalize(t *testing.T) {
	assert.Equal(t, PageRequest{Page: 1, PageSize: 10}, PageRequest{}.Normalize())
	assert.Equal(t, PageRequest{Page: 3, PageSize: 100}, PageRequest{Page: 3, PageSize: 500}.Normalize())
}

func TestTotalBonus(t *testing.T) {
	bonuses := []Bonus{{Amount: AmountFromWhole(500)}, {Amount: Amount(2550)}}
	assert.Equal(t, Amount(52550), TotalBonus(bonuses))
	assert.Equal(t, Amount(0), TotalBonus(nil))
}

func TestSettingsMerchantPhone(t *testing.T) {
	assert.Equal(t, "0700000001", Settings{MoovMerchantPhone: " 0700000001 "}.MerchantPhone())
	assert.Empty(t, Settings{}.MerchantPhone())
}
