package wizard

import "github.com/turaincash/mobcash-wallet/internal/domain/entity"

func findPlatform(items []entity.Platform, id string) *entity.Platform {
	for i := range items {
		if items[i].ID == id {
			p := items[i]
			return &p
		}
	}
	return nil
}

func findBetID(items []entity.BetID, userAppID string) *entity.BetID {
	for i := range items {
		if items[i].UserAppID == userAppID {
			b := items[i]
			return &b
		}
	}
	return nil
}

func findBetIDByID(items []entity.BetID, id int64) *entity.BetID {
	for i := range items {
		if items[i].ID == id {
			b := items[i]
			return &b
		}
	}
	return nil
}

func findNetwork(items []entity.Network, id int64) *entity.Network {
	for i := range items {
		if items[i].ID == id {
			n := items[i]
			return &n
		}
	}
	return nil
}

// findPhone compares digits only, so "+225 07 00" matches "2250700"
func findPhone(items []entity.UserPhone, digits string) *entity.UserPhone {
	digits = entity.FormatDigits(digits)
	if digits == "" {
		return nil
	}
	for i := range items {
		if items[i].Digits() == digits {
			p := items[i]
			return &p
		}
	}
	return nil
}

func findPhoneByID(items []entity.UserPhone, id int64) *entity.UserPhone {
	for i := range items {
		if items[i].ID == id {
			p := items[i]
			return &p
		}
	}
	return nil
}
