package domain

import (
	"fmt"
	"strings"
	"time"
)

// Stage is the lifecycle position of a campaign run. Stages only move
// forward, except StageFailed which may be entered from any pipeline stage
// and is left again through a retry of the failed step.
type Stage string

const (
	StageInitialized           Stage = "initialized"
	StageStrategyReady         Stage = "strategy_ready"
	StageSegmented             Stage = "segmented"
	StageContentReady          Stage = "content_ready"
	StageDeliverabilityChecked Stage = "deliverability_checked"
	StageAwaitingDispatch      Stage = "awaiting_dispatch"
	StagePartiallyDispatched   Stage = "partially_dispatched"
	StageAllDispatched         Stage = "all_dispatched"
	StageFinalized             Stage = "finalized"
	StageFailed                Stage = "failed"
)

var stageRank = map[Stage]int{
	StageInitialized:           0,
	StageStrategyReady:         1,
	StageSegmented:             2,
	StageContentReady:          3,
	StageDeliverabilityChecked: 4,
	StageAwaitingDispatch:      5,
	StagePartiallyDispatched:   6,
	StageAllDispatched:         7,
	StageFinalized:             8,
}

// Valid reports whether s is one of the known stages.
func (s Stage) Valid() bool {
	_, ok := stageRank[s]
	return ok || s == StageFailed
}

// Before reports whether s strictly precedes other in the forward order.
// StageFailed is not ordered and always returns false.
func (s Stage) Before(other Stage) bool {
	a, okA := stageRank[s]
	b, okB := stageRank[other]
	return okA && okB && a < b
}

// Dispatchable reports whether variants may be sent while in this stage.
func (s Stage) Dispatchable() bool {
	switch s {
	case StageAwaitingDispatch, StagePartiallyDispatched, StageAllDispatched:
		return true
	default:
		return false
	}
}

// Step names one unit of the automatic pipeline.
type Step string

const (
	StepStrategy       Step = "strategy"
	StepSegmentation   Step = "segmentation"
	StepContent        Step = "content"
	StepAssignment     Step = "assignment"
	StepDeliverability Step = "deliverability"
	StepDispatch       Step = "dispatch"
	StepFinalize       Step = "finalize"
)

// Label identifies one arm of the experiment.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
)

// Labels is the fixed label order used for assignment, iteration and
// winner selection.
var Labels = []Label{LabelA, LabelB, LabelC}

// ParseLabel validates a user supplied label.
func ParseLabel(s string) (Label, bool) {
	for _, l := range Labels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Recipient is one addressable member of the audience.
type Recipient struct {
	ID    string `json:"recipient_id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Content is the generated message for a single variant.
type Content struct {
	Subject  string            `json:"subject"`
	Body     string            `json:"body"`
	Footer   string            `json:"footer,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Empty reports whether there is nothing to send.
func (c Content) Empty() bool {
	return c.Subject == "" && c.Body == ""
}

// NamePlaceholder is replaced by the recipient's name when a message is
// personalised.
const NamePlaceholder = "{name}"

// For returns the content personalised for r. Recipients without a name
// are greeted generically.
func (c Content) For(r Recipient) Content {
	name := r.Name
	if name == "" {
		name = "there"
	}
	out := c
	out.Subject = strings.ReplaceAll(c.Subject, NamePlaceholder, name)
	out.Body = strings.ReplaceAll(c.Body, NamePlaceholder, name)
	return out
}

// Strategy is the structured output of the strategy generator. Keys are
// owned by the generator; the core only reads a few well-known ones for
// reporting.
type Strategy map[string]any

// StateError describes the last failure recorded on a campaign.
type StateError struct {
	Step    Step      `json:"step"`
	From    Stage     `json:"from"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// CampaignState is the aggregate for one campaign run. It is mutated only
// by the workflow use case and persisted after every mutation.
type CampaignState struct {
	ID             string                    `json:"campaign_id"`
	Brief          string                    `json:"brief"`
	AudienceRef    string                    `json:"audience_ref"`
	Variants       int                       `json:"variants"`
	Stage          Stage                     `json:"stage"`
	Strategy       Strategy                  `json:"strategy,omitempty"`
	Recipients     []Recipient               `json:"recipients,omitempty"`
	Groups         map[Label][]Recipient     `json:"groups"`
	Content        map[Label]Content         `json:"content"`
	Deliverability map[Label]CheckResult     `json:"deliverability"`
	Dispatch       map[Label]DispatchRecord  `json:"dispatch"`
	Metrics        map[Label]MetricsSnapshot `json:"metrics"`
	Report         *Report                   `json:"report,omitempty"`
	Error          *StateError               `json:"error,omitempty"`
	Version        int64                     `json:"version"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`
}

// NewCampaignState returns an initialized campaign with empty collections.
func NewCampaignState(id, brief, audienceRef string, variants int, now time.Time) CampaignState {
	return CampaignState{
		ID:             id,
		Brief:          brief,
		AudienceRef:    audienceRef,
		Variants:       variants,
		Stage:          StageInitialized,
		Groups:         map[Label][]Recipient{},
		Content:        map[Label]Content{},
		Deliverability: map[Label]CheckResult{},
		Dispatch:       map[Label]DispatchRecord{},
		Metrics:        map[Label]MetricsSnapshot{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Clone copies the state so that map mutations on the copy do not leak into
// the original. Recipient slices and records are treated as immutable
// values once written.
func (s CampaignState) Clone() CampaignState {
	out := s
	out.Groups = cloneMap(s.Groups)
	out.Content = cloneMap(s.Content)
	out.Deliverability = cloneMap(s.Deliverability)
	out.Dispatch = cloneMap(s.Dispatch)
	out.Metrics = cloneMap(s.Metrics)
	if s.Error != nil {
		e := *s.Error
		out.Error = &e
	}
	return out
}

// InitMaps replaces nil collections with empty ones. Stores call it after
// decoding a state that may have dropped empty maps.
func (s *CampaignState) InitMaps() {
	if s.Groups == nil {
		s.Groups = map[Label][]Recipient{}
	}
	if s.Content == nil {
		s.Content = map[Label]Content{}
	}
	if s.Deliverability == nil {
		s.Deliverability = map[Label]CheckResult{}
	}
	if s.Dispatch == nil {
		s.Dispatch = map[Label]DispatchRecord{}
	}
	if s.Metrics == nil {
		s.Metrics = map[Label]MetricsSnapshot{}
	}
}

// PresentLabels returns the labels that have a group, in fixed order.
func (s CampaignState) PresentLabels() []Label {
	out := make([]Label, 0, len(s.Groups))
	for _, l := range Labels {
		if _, ok := s.Groups[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// AllSent reports whether every non-empty group has been sent. Empty
// groups have nobody to send to and are skipped; a campaign without any
// recipients is never all sent.
func (s CampaignState) AllSent() bool {
	sent := 0
	for _, l := range s.PresentLabels() {
		if len(s.Groups[l]) == 0 {
			continue
		}
		if !s.Dispatch[l].Sent {
			return false
		}
		sent++
	}
	return sent > 0
}

// Fail moves the campaign into StageFailed and records the failing step.
func (s *CampaignState) Fail(step Step, err error, now time.Time) {
	s.Error = &StateError{Step: step, From: s.Stage, Message: err.Error(), At: now}
	s.Stage = StageFailed
	s.UpdatedAt = now
}

// Advance moves the campaign to next and clears any recorded error. Stages
// never move backwards; a failed campaign may re-enter any stage. Failing
// goes through Fail.
func (s *CampaignState) Advance(next Stage, now time.Time) error {
	if next == StageFailed || !next.Valid() {
		return fmt.Errorf("advance to %q: %w", next, ErrInvalidStage)
	}
	if s.Stage != StageFailed && s.Stage != next && !s.Stage.Before(next) {
		return fmt.Errorf("advance from %s to %s: %w", s.Stage, next, ErrInvalidStage)
	}
	s.Stage = next
	s.Error = nil
	s.UpdatedAt = now
	return nil
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
