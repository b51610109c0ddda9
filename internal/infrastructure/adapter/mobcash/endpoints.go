package mobcash

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/gateway"
)

// ListPlatforms retrieves every betting platform, enabled or not
func (c *Client) ListPlatforms(ctx context.Context) ([]entity.Platform, error) {
	var out []entity.Platform
	if err := c.do(ctx, http.MethodGet, "/mobcash/plateform", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListNetworks retrieves the mobile-money networks
func (c *Client) ListNetworks(ctx context.Context) ([]entity.Network, error) {
	var out []entity.Network
	if err := c.do(ctx, http.MethodGet, "/mobcash/network", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListBetIDs retrieves the user's bet IDs on a platform
func (c *Client) ListBetIDs(ctx context.Context, platformID string) ([]entity.BetID, error) {
	var out []entity.BetID
	query := url.Values{"app_name": []string{platformID}}
	if err := c.do(ctx, http.MethodGet, "/mobcash/user-app-id", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPhones retrieves the user's phones on a network, keyed by uid or id
func (c *Client) ListPhones(ctx context.Context, networkKey string) ([]entity.UserPhone, error) {
	var out []entity.UserPhone
	query := url.Values{"network": []string{networkKey}}
	if err := c.do(ctx, http.MethodGet, "/mobcash/user-phone/", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchUser looks up a bet account on its platform
func (c *Client) SearchUser(ctx context.Context, in gateway.SearchUserInput) (*entity.BetAccount, error) {
	var out entity.BetAccount
	if err := c.do(ctx, http.MethodPost, "/mobcash/search-user", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBetID registers a bet ID
func (c *Client) CreateBetID(ctx context.Context, in gateway.BetIDInput) (*entity.BetID, error) {
	var out entity.BetID
	if err := c.do(ctx, http.MethodPost, "/mobcash/user-app-id/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBetID changes a bet ID by ID
func (c *Client) UpdateBetID(ctx context.Context, id int64, in gateway.BetIDInput) (*entity.BetID, error) {
	var out entity.BetID
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/mobcash/user-app-id/%d/", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBetID removes a bet ID by ID
func (c *Client) DeleteBetID(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/mobcash/user-app-id/%d/", id), nil, nil, nil)
}

// CreatePhone registers a phone number
func (c *Client) CreatePhone(ctx context.Context, in gateway.PhoneInput) (*entity.UserPhone, error) {
	var out entity.UserPhone
	if err := c.do(ctx, http.MethodPost, "/mobcash/user-phone/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePhone changes a phone by ID
func (c *Client) UpdatePhone(ctx context.Context, id int64, in gateway.PhoneInput) (*entity.UserPhone, error) {
	var out entity.UserPhone
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/mobcash/user-phone/%d/", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePhone removes a phone by ID
func (c *Client) DeletePhone(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/mobcash/user-phone/%d/", id), nil, nil, nil)
}

// CreateDeposit submits a deposit
func (c *Client) CreateDeposit(ctx context.Context, req *entity.TransactionRequest) (*entity.TransactionResult, error) {
	var out entity.TransactionResult
	if err := c.do(ctx, http.MethodPost, "/mobcash/transaction-deposit", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateWithdrawal submits a withdrawal
func (c *Client) CreateWithdrawal(ctx context.Context, req *entity.TransactionRequest) (*entity.TransactionResult, error) {
	var out entity.TransactionResult
	if err := c.do(ctx, http.MethodPost, "/mobcash/transaction-withdrawal", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSettings retrieves the application settings
func (c *Client) GetSettings(ctx context.Context) (*entity.Settings, error) {
	var out entity.Settings
	if err := c.do(ctx, http.MethodGet, "/mobcash/setting", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile reads the signed-in user, which carries the bonus balance
func (c *Client) GetProfile(ctx context.Context) (*entity.Profile, error) {
	var out entity.Profile
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBonuses retrieves a page of the user's bonuses
func (c *Client) ListBonuses(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.Bonus], error) {
	var out entity.Page[entity.Bonus]
	if err := c.do(ctx, http.MethodGet, "/mobcash/bonus", pageQuery(page), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCoupons retrieves a page of coupons
func (c *Client) ListCoupons(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.Coupon], error) {
	var out entity.Page[entity.Coupon]
	if err := c.do(ctx, http.MethodGet, "/mobcash/coupon", pageQuery(page), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBonusTransaction spends bonus on a bet ID
func (c *Client) CreateBonusTransaction(ctx context.Context, req *entity.BonusTransactionRequest) (*entity.TransactionResult, error) {
	var out entity.TransactionResult
	if err := c.do(ctx, http.MethodPost, "/mobcash/transaction-bonus", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTransactions retrieves a page of the user's transaction history
func (c *Client) ListTransactions(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.Transaction], error) {
	var out entity.Page[entity.Transaction]
	if err := c.do(ctx, http.MethodGet, "/mobcash/transaction-history", pageQuery(page), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
