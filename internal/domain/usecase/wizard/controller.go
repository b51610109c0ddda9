package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/gateway"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/persistence"
)

// HomePath is where the wallet lands after a completed transaction
const HomePath = "/dashboard"

// maxRehydrationRounds bounds one reconcile pass; a full addPhone resume needs four
const maxRehydrationRounds = 8

// SettingsSource provides the remote wallet settings
type SettingsSource interface {
	Settings(ctx context.Context) (*entity.Settings, error)
}

// Action tells the client what to do once a submission returns
type Action string

// Actions
const (
	ActionNone         Action = "none"
	ActionDialUSSD     Action = "dial_ussd"
	ActionOpenLink     Action = "open_link"
	ActionNavigateHome Action = "navigate_home"
)

// Outcome is the result of a confirmed submission.
// DialUSSD and OpenLink are followed by a move to HomePath.
type Outcome struct {
	Action   Action                    `json:"action"`
	USSD     *USSDCode                 `json:"ussd,omitempty"`
	Link     string                    `json:"link,omitempty"`
	HomePath string                    `json:"home_path,omitempty"`
	Result   *entity.TransactionResult `json:"result,omitempty"`
}

// Snapshot is a read-only copy of the wizard state
type Snapshot struct {
	Flow                 entity.Flow            `json:"flow"`
	Step                 entity.Step            `json:"step"`
	Selection            entity.Selection       `json:"selection"`
	Platforms            List[entity.Platform]  `json:"platforms"`
	BetIDs               List[entity.BetID]     `json:"bet_ids"`
	Networks             List[entity.Network]   `json:"networks"`
	Phones               List[entity.UserPhone] `json:"phones"`
	AwaitingConfirmation bool                   `json:"awaiting_confirmation"`
	Submitting           bool                   `json:"submitting"`
	Completed            bool                   `json:"completed"`
	ReturnStatus         ReturnStatus           `json:"return_status"`
	Outcome              *Outcome               `json:"outcome,omitempty"`
	LoadError            string                 `json:"load_error,omitempty"`
	TutorialLink         string                 `json:"tutorial_link,omitempty"`
	NetworkNotice        string                 `json:"network_notice,omitempty"`
}

// Controller owns one wizard instance: its step, its selection and the
// reference lists loaded for it. It is safe for concurrent use; events are
// serialized, and a submission releases the lock while the remote call runs.
type Controller struct {
	mu sync.Mutex

	flow      entity.Flow
	owner     string
	gateway   gateway.MobcashGateway
	mailbox   persistence.ReturnMailbox
	settings  SettingsSource
	validator *StepValidator
	logger    core.Logger

	mounted   bool
	step      entity.Step
	sel       entity.Selection
	platforms List[entity.Platform]
	betIDs    List[entity.BetID]
	networks  List[entity.Network]
	phones    List[entity.UserPhone]
	loadErr   error

	returnState          ReturnState
	awaitingConfirmation bool
	submitting           bool
	completed            bool
	outcome              *Outcome
}

// NewController creates a wizard for flow on behalf of owner
func NewController(
	flow entity.Flow,
	owner string,
	gw gateway.MobcashGateway,
	mailbox persistence.ReturnMailbox,
	settings SettingsSource,
	logger core.Logger,
) *Controller {
	return &Controller{
		flow:      flow,
		owner:     owner,
		gateway:   gw,
		mailbox:   mailbox,
		settings:  settings,
		validator: NewStepValidator(),
		logger:    logger.With(map[string]any{"flow": string(flow), "owner": owner}),
		step:      entity.FirstStep,
	}
}

// Flow returns the wizard flow
func (c *Controller) Flow() entity.Flow {
	return c.flow
}

// Owner returns the device or user the wizard belongs to
func (c *Controller) Owner() string {
	return c.owner
}

func (c *Controller) slotKey() persistence.SlotKey {
	return persistence.SlotKey{Owner: c.owner, Flow: c.flow}
}

// Mount consumes the return slot of the flow, loads platforms and resumes
// a detour when the slot held one. A corrupt slot value is logged and ignored.
// The returned error only reports reference lists that failed to load.
func (c *Controller) Mount(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mounted {
		return fmt.Errorf("%w: wizard already mounted", errs.ErrInvalidRequest)
	}
	c.mounted = true

	raw, takeErr := c.mailbox.Take(ctx, c.slotKey())
	if err := c.returnState.Mount(raw, takeErr); err != nil {
		if errors.Is(err, errs.ErrInvalidReturnPayload) {
			c.logger.Warn("Discarding corrupt return-state", map[string]any{
				"slot":  c.slotKey().String(),
				"error": err.Error(),
			})
		} else {
			c.logger.Error("Failed to read return-state", map[string]any{
				"slot":  c.slotKey().String(),
				"error": err.Error(),
			})
		}
	}

	if c.returnState.Status() == ReturnRehydrating {
		p := c.returnState.Payload()
		c.logger.Info("Resuming wizard after detour", map[string]any{
			"action":      string(p.Action),
			"platform_id": p.PlatformID,
			"target_step": int(p.TargetStep),
		})
	}

	err := c.loadPlatforms(ctx)
	c.reconcile(ctx)
	return err
}

// Reload fetches the reference lists of the current selection again and
// re-evaluates a pending resume.
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.completed {
		return errs.ErrWizardCompleted
	}

	c.loadErr = nil
	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	keep(c.loadPlatforms(ctx))
	if c.sel.Platform != nil {
		keep(c.loadBetIDs(ctx, c.sel.Platform.ID))
		keep(c.loadNetworks(ctx))
	}
	if c.sel.Network != nil {
		keep(c.loadPhones(ctx, *c.sel.Network))
	}
	c.reconcile(ctx)
	return firstErr
}

// SelectPlatform selects a loaded platform by id
func (c *Controller) SelectPlatform(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkMutable(); err != nil {
		return err
	}
	p := findPlatform(c.platforms.Items, id)
	if p == nil {
		return fmt.Errorf("%w: platform %q", errs.ErrUnknownReference, id)
	}

	c.takeOver()
	c.applyPlatform(ctx, *p)
	return nil
}

// SelectBetID selects one of the platform's bet IDs
func (c *Controller) SelectBetID(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkMutable(); err != nil {
		return err
	}
	if c.sel.Platform == nil {
		return fmt.Errorf("%w: platform first", errs.ErrSelectionOrder)
	}
	b := findBetIDByID(c.betIDs.Items, id)
	if b == nil {
		return fmt.Errorf("%w: bet ID %d", errs.ErrUnknownReference, id)
	}

	c.takeOver()
	c.applyBetID(ctx, *b)
	return nil
}

// SelectNetwork selects one of the networks active for the flow
func (c *Controller) SelectNetwork(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkMutable(); err != nil {
		return err
	}
	if c.sel.BetID == nil {
		return fmt.Errorf("%w: bet ID first", errs.ErrSelectionOrder)
	}
	n := findNetwork(c.networks.Items, id)
	if n == nil {
		return fmt.Errorf("%w: network %d", errs.ErrUnknownReference, id)
	}

	c.takeOver()
	c.applyNetwork(ctx, *n)
	return nil
}

// SelectPhone selects one of the network's phones
func (c *Controller) SelectPhone(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkMutable(); err != nil {
		return err
	}
	if c.sel.Network == nil {
		return fmt.Errorf("%w: network first", errs.ErrSelectionOrder)
	}
	p := findPhoneByID(c.phones.Items, id)
	if p == nil {
		return fmt.Errorf("%w: phone %d", errs.ErrUnknownReference, id)
	}

	c.takeOver()
	c.applyPhone(*p)
	return nil
}

// SetAmount records the raw amount; it is only checked by GoNext
func (c *Controller) SetAmount(amount string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkMutable(); err != nil {
		return err
	}
	if c.sel.Phone == nil {
		return fmt.Errorf("%w: phone first", errs.ErrSelectionOrder)
	}
	c.sel.Amount = amount
	c.awaitingConfirmation = false
	return nil
}

// SetWithdrawalCode records the platform withdrawal code of a withdraw wizard
func (c *Controller) SetWithdrawalCode(code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkMutable(); err != nil {
		return err
	}
	if c.flow != entity.FlowWithdraw {
		return fmt.Errorf("%w: withdrawal code only applies to withdrawals", errs.ErrInvalidFlow)
	}
	if c.sel.Phone == nil {
		return fmt.Errorf("%w: phone first", errs.ErrSelectionOrder)
	}
	c.sel.WithdrawalCode = code
	c.awaitingConfirmation = false
	return nil
}

// GoBack closes a pending confirmation, or moves one step back
func (c *Controller) GoBack() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkMutable(); err != nil {
		return err
	}
	if c.awaitingConfirmation {
		c.awaitingConfirmation = false
		return nil
	}
	if c.step > entity.FirstStep {
		c.step--
	}
	return nil
}

// GoNext validates the current step and advances. At the last step it asks
// for confirmation instead. A rejection leaves the wizard untouched.
func (c *Controller) GoNext() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkMutable(); err != nil {
		return err
	}
	if c.awaitingConfirmation {
		return nil
	}

	if err := c.validator.Validate(c.step, c.flow, c.sel); err != nil {
		c.logger.Debug("Step rejected", map[string]any{
			"step":  c.step.String(),
			"error": err.Error(),
		})
		return err
	}

	if c.step < entity.LastStep {
		c.step++
		return nil
	}
	c.awaitingConfirmation = true
	return nil
}

// ConfirmSubmit sends the transaction. Only one submission runs at a time:
// a confirm received while one is in flight returns ActionNone.
// On failure the wizard stays on the last step, still awaiting confirmation.
func (c *Controller) ConfirmSubmit(ctx context.Context) (*Outcome, error) {
	c.mu.Lock()
	if c.completed {
		c.mu.Unlock()
		return nil, errs.ErrWizardCompleted
	}
	if c.submitting {
		c.mu.Unlock()
		return &Outcome{Action: ActionNone}, nil
	}
	if !c.awaitingConfirmation {
		c.mu.Unlock()
		return nil, errs.ErrConfirmationRequired
	}

	amount, err := c.validator.ValidateAmount(c.flow, c.sel)
	if err != nil {
		c.awaitingConfirmation = false
		c.mu.Unlock()
		return nil, err
	}
	req, err := entity.NewTransactionRequest(c.flow, c.sel, amount)
	if err != nil {
		c.awaitingConfirmation = false
		c.mu.Unlock()
		return nil, err
	}
	network := *c.sel.Network
	c.submitting = true
	c.mu.Unlock()

	c.logger.Info("Submitting transaction", map[string]any{
		"platform_id": req.App,
		"network_id":  req.Network,
		"network":     network.DisplayName(),
		"amount":      amount.String(),
	})

	var result *entity.TransactionResult
	if c.flow == entity.FlowWithdraw {
		result, err = c.gateway.CreateWithdrawal(ctx, req)
	} else {
		result, err = c.gateway.CreateDeposit(ctx, req)
	}

	var outcome *Outcome
	if err == nil {
		if result == nil {
			result = &entity.TransactionResult{}
		}
		outcome = c.successOutcome(ctx, network, amount, result)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if err != nil {
		subErr := errs.NewSubmissionError(string(c.flow), err, fmt.Sprintf("%s failed", c.flow))
		c.logger.Warn("Transaction rejected", subErr.LogFields())
		return nil, subErr
	}

	c.completed = true
	c.awaitingConfirmation = false
	c.outcome = outcome
	c.logger.Info("Transaction created", map[string]any{
		"reference": result.Reference,
		"action":    string(outcome.Action),
	})
	return outcome, nil
}

// successOutcome branches a successful submission. Moov deposits settled by
// USSD win over a continuation link.
func (c *Controller) successOutcome(ctx context.Context, network entity.Network, amount entity.Amount, result *entity.TransactionResult) *Outcome {
	if c.flow == entity.FlowWithdraw {
		return &Outcome{Action: ActionNavigateHome, HomePath: HomePath, Result: result}
	}

	if IsMoovNetwork(network) && network.DepositAPI == entity.DepositAPIConnect && c.settings != nil {
		settings, err := c.settings.Settings(ctx)
		if err != nil {
			c.logger.Warn("Settings unavailable, skipping USSD branch", map[string]any{"error": err.Error()})
		} else if UsesMoovUSSD(network, settings.MerchantPhone()) {
			code := DeriveMoovUSSD(amount, settings.MerchantPhone())
			return &Outcome{Action: ActionDialUSSD, USSD: &code, HomePath: HomePath, Result: result}
		}
	}

	if result.TransactionLink != "" {
		return &Outcome{Action: ActionOpenLink, Link: result.TransactionLink, HomePath: HomePath, Result: result}
	}
	return &Outcome{Action: ActionNavigateHome, HomePath: HomePath, Result: result}
}

// BeginBetIDDetour records that the user leaves to add a bet ID on the selected platform
func (c *Controller) BeginBetIDDetour() (*NavigationIntent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkMutable(); err != nil {
		return nil, err
	}
	if c.sel.Platform == nil {
		return nil, fmt.Errorf("%w: platform first", errs.ErrSelectionOrder)
	}

	intent := NavigationIntent{
		Flow:       c.flow,
		Action:     ReturnAddBet,
		PlatformID: c.sel.Platform.ID,
		TargetStep: ReturnAddBet.DefaultTargetStep(),
		ReturnPath: "/" + string(c.flow),
	}
	if err := c.returnState.NavigateAway(intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// BeginPhoneDetour records that the user leaves to add a phone on the selected network
func (c *Controller) BeginPhoneDetour() (*NavigationIntent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkMutable(); err != nil {
		return nil, err
	}
	if c.sel.Platform == nil || c.sel.BetID == nil || c.sel.Network == nil {
		return nil, fmt.Errorf("%w: platform, bet ID and network first", errs.ErrSelectionOrder)
	}

	intent := NavigationIntent{
		Flow:       c.flow,
		Action:     ReturnAddPhone,
		PlatformID: c.sel.Platform.ID,
		BetAppID:   c.sel.BetID.UserAppID,
		NetworkID:  c.sel.Network.ID,
		TargetStep: ReturnAddPhone.DefaultTargetStep(),
		ReturnPath: "/" + string(c.flow),
	}
	if err := c.returnState.NavigateAway(intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// Snapshot returns a copy of the wizard state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Flow:                 c.flow,
		Step:                 c.step,
		Selection:            c.sel,
		Platforms:            c.platforms,
		BetIDs:               c.betIDs,
		Networks:             c.networks,
		Phones:               c.phones,
		AwaitingConfirmation: c.awaitingConfirmation,
		Submitting:           c.submitting,
		Completed:            c.completed,
		ReturnStatus:         c.returnState.Status(),
		Outcome:              c.outcome,
	}
	if c.loadErr != nil {
		snap.LoadError = errs.UserMessage(c.loadErr, "failed to load data")
	}
	if c.sel.Platform != nil {
		snap.TutorialLink = c.sel.Platform.TutorialLink(c.flow)
	}
	if c.sel.Network != nil {
		snap.NetworkNotice = c.sel.Network.Message(c.flow)
	}
	return snap
}

func (c *Controller) checkMutable() error {
	if c.completed {
		return errs.ErrWizardCompleted
	}
	if c.submitting {
		return errs.ErrSubmissionInProgress
	}
	return nil
}

// takeOver stops a resume in progress once the user selects by hand
func (c *Controller) takeOver() {
	if c.returnState.Abandon() {
		c.logger.Info("Resume abandoned by user selection", nil)
	}
}

// reconcile applies rehydration decisions until the machine waits
func (c *Controller) reconcile(ctx context.Context) {
	for i := 0; i < maxRehydrationRounds; i++ {
		d := c.returnState.Evaluate(c.view())
		switch d.Kind {
		case DecisionWait:
			return
		case DecisionAbandon:
			c.logger.Info("Resume abandoned, platform no longer available", nil)
			return
		case DecisionSelectPlatform:
			c.applyPlatform(ctx, *d.Platform)
		case DecisionSelectBetID:
			c.applyBetID(ctx, *d.BetID)
		case DecisionSelectNetwork:
			c.applyNetwork(ctx, *d.Network)
		case DecisionComplete:
			c.applyBetID(ctx, *d.BetID)
			if d.Phone != nil {
				c.applyPhone(*d.Phone)
			}
			c.jumpTo(d.TargetStep)
			c.logger.Info("Wizard resumed", map[string]any{"step": c.step.String()})
			return
		}
	}
}

func (c *Controller) view() ReferenceView {
	return ReferenceView{
		Selection: c.sel,
		Platforms: c.platforms,
		BetIDs:    c.betIDs,
		Networks:  c.networks,
		Phones:    c.phones,
	}
}

// jumpTo moves to target, never past the first step without a selection
func (c *Controller) jumpTo(target entity.Step) {
	if limit := c.sel.Filled() + 1; target > limit {
		target = limit
	}
	c.step = target
	c.awaitingConfirmation = false
}

// clampStep keeps the step on or before the first empty selection
func (c *Controller) clampStep() {
	if limit := c.sel.Filled() + 1; c.step > limit {
		c.step = limit
	}
}

func (c *Controller) applyPlatform(ctx context.Context, p entity.Platform) {
	if c.sel.Platform != nil && c.sel.Platform.ID == p.ID {
		return
	}
	c.sel.ClearFrom(entity.StepPlatform)
	c.sel.Platform = &p
	c.betIDs = List[entity.BetID]{}
	c.phones = List[entity.UserPhone]{}
	c.awaitingConfirmation = false
	c.clampStep()

	_ = c.loadBetIDs(ctx, p.ID)
	if !c.networks.Loaded {
		_ = c.loadNetworks(ctx)
	}
}

func (c *Controller) applyBetID(ctx context.Context, b entity.BetID) {
	if c.sel.BetID != nil && c.sel.BetID.ID == b.ID {
		return
	}
	c.sel.ClearFrom(entity.StepBetID)
	c.sel.BetID = &b
	c.phones = List[entity.UserPhone]{}
	c.awaitingConfirmation = false
	c.clampStep()

	if !c.networks.Loaded {
		_ = c.loadNetworks(ctx)
	}
}

func (c *Controller) applyNetwork(ctx context.Context, n entity.Network) {
	if c.sel.Network != nil && c.sel.Network.ID == n.ID {
		return
	}
	c.sel.ClearFrom(entity.StepNetwork)
	c.sel.Network = &n
	c.phones = List[entity.UserPhone]{}
	c.awaitingConfirmation = false
	c.clampStep()

	_ = c.loadPhones(ctx, n)
}

func (c *Controller) applyPhone(p entity.UserPhone) {
	if c.sel.Phone != nil && c.sel.Phone.ID == p.ID {
		return
	}
	c.sel.ClearFrom(entity.StepPhone)
	c.sel.Phone = &p
	c.awaitingConfirmation = false
	c.clampStep()
}

func (c *Controller) loadPlatforms(ctx context.Context) error {
	all, err := c.gateway.ListPlatforms(ctx)
	if err != nil {
		return c.loadFailed("platforms", err)
	}
	c.platforms = Loaded(entity.EnabledPlatforms(all))
	return nil
}

func (c *Controller) loadBetIDs(ctx context.Context, platformID string) error {
	items, err := c.gateway.ListBetIDs(ctx, platformID)
	if err != nil {
		return c.loadFailed("bet_ids", err)
	}
	c.betIDs = Loaded(items)
	return nil
}

func (c *Controller) loadNetworks(ctx context.Context) error {
	all, err := c.gateway.ListNetworks(ctx)
	if err != nil {
		return c.loadFailed("networks", err)
	}
	c.networks = Loaded(entity.NetworksFor(all, c.flow))
	return nil
}

func (c *Controller) loadPhones(ctx context.Context, n entity.Network) error {
	items, err := c.gateway.ListPhones(ctx, n.Key())
	if err != nil {
		return c.loadFailed("phones", err)
	}
	c.phones = Loaded(items)
	return nil
}

func (c *Controller) loadFailed(list string, err error) error {
	c.loadErr = err
	c.logger.Error("Failed to load reference list", map[string]any{
		"list":  list,
		"error": err.Error(),
	})
	return fmt.Errorf("load %s: %w", list, err)
}
