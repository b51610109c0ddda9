package wizard

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
)

// ReturnAction names the detour a return payload comes back from
type ReturnAction string

// Return actions
const (
	ReturnAddBet   ReturnAction = "addBet"
	ReturnAddPhone ReturnAction = "addPhone"
)

// DefaultTargetStep is where the wizard resumes when the payload does not say
func (a ReturnAction) DefaultTargetStep() entity.Step {
	if a == ReturnAddPhone {
		return entity.StepAmount
	}
	return entity.StepNetwork
}

// ReturnPayload describes how to resume a wizard after a detour.
// For addBet, BetAppID is the identifier that was just added.
// For addPhone, Phone holds the digits of the number that was just added.
type ReturnPayload struct {
	Action     ReturnAction
	PlatformID string
	BetAppID   string
	NetworkID  int64
	Phone      string
	TargetStep entity.Step
}

type returnWire struct {
	Action       ReturnAction `json:"action"`
	PlatformID   string       `json:"platformId"`
	UserAppID    string       `json:"user_app_id,omitempty"`
	BetUserAppID string       `json:"betUserAppId,omitempty"`
	NetworkID    *int64       `json:"networkId,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	TargetStep   *int         `json:"targetStep,omitempty"`
}

// MarshalJSON writes the payload in the slot wire format
func (p ReturnPayload) MarshalJSON() ([]byte, error) {
	step := int(p.TargetStep)
	if step == 0 {
		step = int(p.Action.DefaultTargetStep())
	}
	w := returnWire{
		Action:     p.Action,
		PlatformID: p.PlatformID,
		TargetStep: &step,
	}
	switch p.Action {
	case ReturnAddBet:
		w.UserAppID = p.BetAppID
	case ReturnAddPhone:
		networkID := p.NetworkID
		w.BetUserAppID = p.BetAppID
		w.NetworkID = &networkID
		w.Phone = p.Phone
	default:
		return nil, fmt.Errorf("%w: unknown action %q", errs.ErrInvalidReturnPayload, p.Action)
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads the slot wire format and rejects incomplete payloads
func (p *ReturnPayload) UnmarshalJSON(data []byte) error {
	var w returnWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInvalidReturnPayload, err.Error())
	}
	if strings.TrimSpace(w.PlatformID) == "" {
		return fmt.Errorf("%w: missing platformId", errs.ErrInvalidReturnPayload)
	}

	out := ReturnPayload{Action: w.Action, PlatformID: w.PlatformID}
	switch w.Action {
	case ReturnAddBet:
		if w.UserAppID == "" {
			return fmt.Errorf("%w: missing user_app_id", errs.ErrInvalidReturnPayload)
		}
		out.BetAppID = w.UserAppID
	case ReturnAddPhone:
		if w.BetUserAppID == "" || w.NetworkID == nil || entity.FormatDigits(w.Phone) == "" {
			return fmt.Errorf("%w: incomplete addPhone payload", errs.ErrInvalidReturnPayload)
		}
		out.BetAppID = w.BetUserAppID
		out.NetworkID = *w.NetworkID
		out.Phone = entity.FormatDigits(w.Phone)
	default:
		return fmt.Errorf("%w: unknown action %q", errs.ErrInvalidReturnPayload, w.Action)
	}

	out.TargetStep = out.Action.DefaultTargetStep()
	if w.TargetStep != nil {
		out.TargetStep = entity.Step(*w.TargetStep)
		if !out.TargetStep.Valid() {
			return fmt.Errorf("%w: target step %d out of range", errs.ErrInvalidReturnPayload, *w.TargetStep)
		}
	}

	*p = out
	return nil
}

// DecodeReturnPayload parses a slot value
func DecodeReturnPayload(raw []byte) (*ReturnPayload, error) {
	var p ReturnPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		if errors.Is(err, errs.ErrInvalidReturnPayload) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidReturnPayload, err.Error())
	}
	return &p, nil
}

// NavigationIntent is created by the wizard right before a detour to an add page.
// The add page completes it into a ReturnPayload once the new entity exists.
type NavigationIntent struct {
	Flow       entity.Flow  `json:"flow"`
	Action     ReturnAction `json:"action"`
	PlatformID string       `json:"platform_id"`
	BetAppID   string       `json:"bet_app_id,omitempty"`
	NetworkID  int64        `json:"network_id,omitempty"`
	TargetStep entity.Step  `json:"target_step"`
	ReturnPath string       `json:"return_path"`
}

// Validate checks that the intent carries what its completion will need
func (i NavigationIntent) Validate() error {
	if _, err := entity.ParseFlow(string(i.Flow)); err != nil {
		return err
	}
	if i.PlatformID == "" {
		return fmt.Errorf("%w: intent without platform", errs.ErrInvalidRequest)
	}
	switch i.Action {
	case ReturnAddBet:
	case ReturnAddPhone:
		if i.BetAppID == "" || i.NetworkID == 0 {
			return fmt.Errorf("%w: phone intent needs bet ID and network", errs.ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("%w: unknown intent action %q", errs.ErrInvalidRequest, i.Action)
	}
	if i.TargetStep != 0 && !i.TargetStep.Valid() {
		return fmt.Errorf("%w: target step out of range", errs.ErrInvalidRequest)
	}
	return nil
}

// CompleteWithBetID turns an addBet intent into its payload
func (i NavigationIntent) CompleteWithBetID(userAppID string) (*ReturnPayload, error) {
	if i.Action != ReturnAddBet {
		return nil, fmt.Errorf("%w: intent is %q, not addBet", errs.ErrInvalidRequest, i.Action)
	}
	return &ReturnPayload{
		Action:     ReturnAddBet,
		PlatformID: i.PlatformID,
		BetAppID:   userAppID,
		TargetStep: i.targetStep(),
	}, nil
}

// CompleteWithPhone turns an addPhone intent into its payload
func (i NavigationIntent) CompleteWithPhone(phone string) (*ReturnPayload, error) {
	if i.Action != ReturnAddPhone {
		return nil, fmt.Errorf("%w: intent is %q, not addPhone", errs.ErrInvalidRequest, i.Action)
	}
	return &ReturnPayload{
		Action:     ReturnAddPhone,
		PlatformID: i.PlatformID,
		BetAppID:   i.BetAppID,
		NetworkID:  i.NetworkID,
		Phone:      entity.FormatDigits(phone),
		TargetStep: i.targetStep(),
	}, nil
}

func (i NavigationIntent) targetStep() entity.Step {
	if i.TargetStep.Valid() {
		return i.TargetStep
	}
	return i.Action.DefaultTargetStep()
}

// ReturnStatus is the position of a wizard instance in the resume protocol
type ReturnStatus int

// Return statuses
const (
	ReturnIdle ReturnStatus = iota
	ReturnPending
	ReturnRehydrating
	ReturnConsumed
)

// String returns the status name used in snapshots and logs
func (s ReturnStatus) String() string {
	switch s {
	case ReturnIdle:
		return "idle"
	case ReturnPending:
		return "pending"
	case ReturnRehydrating:
		return "rehydrating"
	case ReturnConsumed:
		return "consumed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText lets the status appear by name in JSON
func (s ReturnStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// legalReturnTransitions maps a status to the statuses it may move to.
// Pending is terminal for an instance: the next instance picks the slot up.
var legalReturnTransitions = map[ReturnStatus]map[ReturnStatus]bool{
	ReturnIdle: {
		ReturnPending:     true,
		ReturnRehydrating: true,
	},
	ReturnRehydrating: {
		ReturnConsumed: true,
		ReturnPending:  true,
	},
	ReturnConsumed: {
		ReturnPending: true,
	},
	ReturnPending: {},
}

// ErrIllegalReturnTransition is returned for events that do not apply to the current status
var ErrIllegalReturnTransition = errors.New("illegal return-state transition")

// List is a reference list that may not have loaded yet
type List[T any] struct {
	Items  []T  `json:"items"`
	Loaded bool `json:"loaded"`
}

// Loaded wraps items that finished loading
func Loaded[T any](items []T) List[T] {
	if items == nil {
		items = []T{}
	}
	return List[T]{Items: items, Loaded: true}
}

// ReferenceView is what the wizard currently knows: its selection and the lists
// loaded for it. BetIDs belong to the selected platform, Phones to the selected network.
type ReferenceView struct {
	Selection entity.Selection
	Platforms List[entity.Platform]
	BetIDs    List[entity.BetID]
	Networks  List[entity.Network]
	Phones    List[entity.UserPhone]
}

// DecisionKind is what rehydration asks the wizard to do next
type DecisionKind int

// Decision kinds
const (
	DecisionWait DecisionKind = iota
	DecisionAbandon
	DecisionSelectPlatform
	DecisionSelectBetID
	DecisionSelectNetwork
	DecisionComplete
)

// Decision is the result of one rehydration evaluation.
// Complete carries BetID for addBet and BetID plus Phone for addPhone.
type Decision struct {
	Kind       DecisionKind
	Platform   *entity.Platform
	BetID      *entity.BetID
	Network    *entity.Network
	Phone      *entity.UserPhone
	TargetStep entity.Step
}

// Rehydrate computes the next resume step from a payload and the current view.
// A missing platform abandons; any other miss waits for the list to change.
func Rehydrate(p ReturnPayload, view ReferenceView) Decision {
	if !view.Platforms.Loaded {
		return Decision{Kind: DecisionWait}
	}
	platform := findPlatform(view.Platforms.Items, p.PlatformID)
	if platform == nil {
		return Decision{Kind: DecisionAbandon}
	}
	sel := view.Selection
	if sel.Platform == nil || sel.Platform.ID != platform.ID {
		return Decision{Kind: DecisionSelectPlatform, Platform: platform}
	}

	if !view.BetIDs.Loaded {
		return Decision{Kind: DecisionWait}
	}
	bet := findBetID(view.BetIDs.Items, p.BetAppID)
	if bet == nil {
		return Decision{Kind: DecisionWait}
	}
	if p.Action == ReturnAddBet {
		return Decision{Kind: DecisionComplete, BetID: bet, TargetStep: p.TargetStep}
	}

	if sel.BetID == nil || sel.BetID.ID != bet.ID {
		return Decision{Kind: DecisionSelectBetID, BetID: bet}
	}

	if !view.Networks.Loaded {
		return Decision{Kind: DecisionWait}
	}
	network := findNetwork(view.Networks.Items, p.NetworkID)
	if network == nil {
		return Decision{Kind: DecisionWait}
	}
	if sel.Network == nil || sel.Network.ID != network.ID {
		return Decision{Kind: DecisionSelectNetwork, Network: network}
	}

	if !view.Phones.Loaded {
		return Decision{Kind: DecisionWait}
	}
	phone := findPhone(view.Phones.Items, p.Phone)
	if phone == nil {
		return Decision{Kind: DecisionWait}
	}
	return Decision{Kind: DecisionComplete, BetID: bet, Phone: phone, TargetStep: p.TargetStep}
}

// ReturnState is the explicit resume state machine of one wizard instance
type ReturnState struct {
	status  ReturnStatus
	payload *ReturnPayload
	intent  *NavigationIntent
}

// Status returns the current status
func (s *ReturnState) Status() ReturnStatus {
	return s.status
}

// Payload returns the payload being rehydrated, nil outside Rehydrating
func (s *ReturnState) Payload() *ReturnPayload {
	return s.payload
}

// Intent returns the detour intent once Pending
func (s *ReturnState) Intent() *NavigationIntent {
	return s.intent
}

func (s *ReturnState) transition(to ReturnStatus) error {
	if !legalReturnTransitions[s.status][to] {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalReturnTransition, s.status, to)
	}
	s.status = to
	return nil
}

// Mount feeds the value taken from the durable slot.
// An empty slot keeps the state Idle. A corrupt value also keeps it Idle and
// is reported as errs.ErrInvalidReturnPayload for logging only.
func (s *ReturnState) Mount(raw []byte, takeErr error) error {
	if s.status != ReturnIdle {
		return fmt.Errorf("%w: mount while %s", ErrIllegalReturnTransition, s.status)
	}
	if takeErr != nil {
		if errors.Is(takeErr, errs.ErrSlotEmpty) {
			return nil
		}
		return takeErr
	}
	if len(raw) == 0 {
		return nil
	}

	payload, err := DecodeReturnPayload(raw)
	if err != nil {
		return err
	}
	s.payload = payload
	return s.transition(ReturnRehydrating)
}

// NavigateAway records the detour the wizard is leaving for
func (s *ReturnState) NavigateAway(intent NavigationIntent) error {
	if err := s.transition(ReturnPending); err != nil {
		return err
	}
	s.payload = nil
	s.intent = &intent
	return nil
}

// Abandon drops a rehydration in progress, e.g. when the user takes over the selection
func (s *ReturnState) Abandon() bool {
	if s.status != ReturnRehydrating {
		return false
	}
	_ = s.transition(ReturnConsumed)
	s.payload = nil
	return true
}

// Evaluate runs one rehydration step against view.
// Outside Rehydrating it always waits. Abandon and Complete consume the payload.
func (s *ReturnState) Evaluate(view ReferenceView) Decision {
	if s.status != ReturnRehydrating || s.payload == nil {
		return Decision{Kind: DecisionWait}
	}
	d := Rehydrate(*s.payload, view)
	if d.Kind == DecisionAbandon || d.Kind == DecisionComplete {
		_ = s.transition(ReturnConsumed)
		s.payload = nil
	}
	return d
}
