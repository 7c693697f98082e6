package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// DefaultVariants is the number of experiment arms used when a request
// does not ask for a specific count.
const DefaultVariants = 2

const defaultListLimit = 50

// Defaults for storing a dispatch record after its emails went out.
const (
	DefaultCommitAttempts = 5
	DefaultCommitBackoff  = 200 * time.Millisecond
)

// Dependencies groups the collaborators of the campaign workflow. Metrics
// and Activity are optional.
type Dependencies struct {
	Repo         port.CampaignRepository
	Results      port.ResultsStore
	Locker       port.Locker
	Strategy     port.StrategyGenerator
	Segmentation port.SegmentationProvider
	Content      port.ContentGenerator
	Dispatcher   port.EmailDispatcher
	Metrics      port.MetricsProvider
	Activity     port.ActivityLog
	Logger       *slog.Logger

	// Rand seeds assignment and estimation. A nil source is seeded from
	// the clock.
	Rand  *rand.Rand
	Clock func() time.Time
	NewID func() string
}

// Options tune the workflow.
type Options struct {
	DefaultVariants int
	PrimaryMetric   string
	DispatchWorkers int
	// CommitAttempts and CommitBackoff bound the retries of saving a
	// dispatch result. The backoff doubles after every failed attempt.
	CommitAttempts int
	CommitBackoff  time.Duration
	Reconciler     ReconcilerConfig
}

// CampaignUseCase drives a campaign through the automatic pipeline, pauses
// at awaiting_dispatch and then accepts independent per-variant dispatch
// requests until every variant is sent and the campaign is finalized. It
// implements port.CampaignUseCase.
type CampaignUseCase struct {
	repo         port.CampaignRepository
	results      port.ResultsStore
	locker       port.Locker
	strategy     port.StrategyGenerator
	segmentation port.SegmentationProvider
	content      port.ContentGenerator
	activity     port.ActivityLog
	log          *slog.Logger
	now          func() time.Time
	newID        func() string

	defaultVariants int
	commitAttempts  int
	commitBackoff   time.Duration

	assigner   *AssignmentEngine
	gate       *DeliverabilityGate
	dispatcher *DispatchCoordinator
	reconciler *MetricsReconciler
	aggregator *ReportAggregator
}

var _ port.CampaignUseCase = (*CampaignUseCase)(nil)

// NewCampaignUseCase wires the workflow components around deps.
func NewCampaignUseCase(deps Dependencies, opts Options) *CampaignUseCase {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	now := deps.Clock
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	newID := deps.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	rnd := deps.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(now().UnixNano()))
	}
	variants := opts.DefaultVariants
	if variants <= 0 {
		variants = DefaultVariants
	}
	attempts := opts.CommitAttempts
	if attempts <= 0 {
		attempts = DefaultCommitAttempts
	}
	backoff := opts.CommitBackoff
	if backoff <= 0 {
		backoff = DefaultCommitBackoff
	}
	// the reconciler gets its own source derived from the shared seed
	estimateRnd := rand.New(rand.NewSource(rnd.Int63()))

	return &CampaignUseCase{
		repo:            deps.Repo,
		results:         deps.Results,
		locker:          deps.Locker,
		strategy:        deps.Strategy,
		segmentation:    deps.Segmentation,
		content:         deps.Content,
		activity:        deps.Activity,
		log:             log,
		now:             now,
		newID:           newID,
		defaultVariants: ClampVariants(variants),
		commitAttempts:  attempts,
		commitBackoff:   backoff,
		assigner:        NewAssignmentEngine(rnd),
		gate:            NewDeliverabilityGate(),
		dispatcher:      NewDispatchCoordinator(deps.Dispatcher, opts.DispatchWorkers, log, now),
		reconciler:      NewMetricsReconciler(deps.Metrics, deps.Activity, estimateRnd, opts.Reconciler, log, now),
		aggregator:      NewReportAggregator(opts.PrimaryMetric, now),
	}
}

type pipelineStep struct {
	step domain.Step
	run  func(ctx context.Context, st *domain.CampaignState) error
	next domain.Stage
}

func (u *CampaignUseCase) pipeline() []pipelineStep {
	return []pipelineStep{
		{domain.StepStrategy, u.runStrategy, domain.StageStrategyReady},
		{domain.StepSegmentation, u.runSegmentation, domain.StageSegmented},
		{domain.StepContent, u.runContent, domain.StageContentReady},
		{domain.StepAssignment, u.runAssignment, domain.StageContentReady},
		{domain.StepDeliverability, u.runDeliverability, domain.StageDeliverabilityChecked},
	}
}

// Start creates a campaign and runs it up to awaiting_dispatch.
func (u *CampaignUseCase) Start(ctx context.Context, req port.StartRequest) (domain.CampaignState, error) {
	if strings.TrimSpace(req.Brief) == "" {
		return domain.CampaignState{}, &domain.ValidationError{Reason: "brief is required"}
	}
	variants := req.Variants
	if variants == 0 {
		variants = u.defaultVariants
	}

	st := domain.NewCampaignState(u.newID(), req.Brief, req.AudienceRef, ClampVariants(variants), u.now())
	if err := u.repo.Create(ctx, &st); err != nil {
		return domain.CampaignState{}, fmt.Errorf("create campaign: %w", err)
	}
	u.log.Info("campaign created",
		slog.String("campaign_id", st.ID),
		slog.Int("variants", st.Variants))

	unlock, err := u.locker.Lock(ctx, campaignKey(st.ID))
	if err != nil {
		return st, err
	}
	defer unlock()
	return u.run(ctx, st, 0)
}

// Retry resumes a failed campaign at the step that failed. A campaign whose
// finalization failed is finalized again. Variants left claimed by an
// interrupted dispatch are released so that they can be dispatched again.
func (u *CampaignUseCase) Retry(ctx context.Context, id string) (domain.CampaignState, error) {
	st, err := u.repo.Get(ctx, id)
	if err != nil {
		return domain.CampaignState{}, err
	}
	if claimed := claimedLabels(st); len(claimed) > 0 && st.Stage.Dispatchable() {
		return u.releaseClaims(ctx, id, claimed)
	}

	unlock, err := u.locker.Lock(ctx, campaignKey(id))
	if err != nil {
		return domain.CampaignState{}, err
	}
	st, err = u.repo.Get(ctx, id)
	if err != nil {
		unlock()
		return domain.CampaignState{}, err
	}
	if st.Stage == domain.StageAllDispatched && st.Error != nil && st.Error.Step == domain.StepFinalize {
		unlock()
		return u.Finalize(ctx, id)
	}
	defer unlock()

	if st.Stage != domain.StageFailed || st.Error == nil {
		return st, fmt.Errorf("retry campaign in stage %s: %w", st.Stage, domain.ErrInvalidStage)
	}
	from := -1
	for i, s := range u.pipeline() {
		if s.step == st.Error.Step {
			from = i
			break
		}
	}
	if from < 0 {
		return st, fmt.Errorf("retry step %s: %w", st.Error.Step, domain.ErrInvalidStage)
	}

	u.log.Info("retrying campaign",
		slog.String("campaign_id", id),
		slog.String("step", string(st.Error.Step)))
	st.Stage = st.Error.From
	return u.run(ctx, st, from)
}

// run executes the pipeline from step index from. The caller holds the
// campaign lock.
func (u *CampaignUseCase) run(ctx context.Context, st domain.CampaignState, from int) (domain.CampaignState, error) {
	for _, s := range u.pipeline()[from:] {
		if err := s.run(ctx, &st); err != nil {
			u.log.Error("pipeline step failed",
				slog.String("campaign_id", st.ID),
				slog.String("step", string(s.step)),
				slog.Any("error", err))
			st.Fail(s.step, err, u.now())
			if serr := u.repo.Save(ctx, &st); serr != nil {
				return st, errors.Join(&domain.StageError{Step: s.step, Err: err}, fmt.Errorf("save failed campaign: %w", serr))
			}
			return st, &domain.StageError{Step: s.step, Err: err}
		}
		if err := st.Advance(s.next, u.now()); err != nil {
			return st, err
		}
		if err := u.repo.Save(ctx, &st); err != nil {
			return st, fmt.Errorf("save campaign after %s: %w", s.step, err)
		}
	}

	if err := st.Advance(domain.StageAwaitingDispatch, u.now()); err != nil {
		return st, err
	}
	if err := u.repo.Save(ctx, &st); err != nil {
		return st, fmt.Errorf("save campaign: %w", err)
	}
	u.log.Info("campaign awaiting dispatch",
		slog.String("campaign_id", st.ID),
		slog.Int("recipients", len(st.Recipients)))
	return st, nil
}

func (u *CampaignUseCase) runStrategy(ctx context.Context, st *domain.CampaignState) error {
	strategy, err := u.strategy.Generate(ctx, st.Brief)
	if err != nil {
		return err
	}
	if strategy == nil {
		strategy = domain.Strategy{}
	}
	st.Strategy = strategy
	return nil
}

func (u *CampaignUseCase) runSegmentation(ctx context.Context, st *domain.CampaignState) error {
	recipients, err := u.segmentation.SelectAudience(ctx, st.Strategy, st.AudienceRef)
	if err != nil {
		return err
	}
	st.Recipients = uniqueRecipients(recipients)
	if dropped := len(recipients) - len(st.Recipients); dropped > 0 {
		u.log.Warn("duplicate recipients dropped",
			slog.String("campaign_id", st.ID),
			slog.Int("dropped", dropped))
	}
	return nil
}

func (u *CampaignUseCase) runContent(ctx context.Context, st *domain.CampaignState) error {
	content := make(map[domain.Label]domain.Content, st.Variants)
	for _, l := range domain.Labels[:ClampVariants(st.Variants)] {
		c, err := u.content.Generate(ctx, st.Strategy, l)
		if err != nil {
			return fmt.Errorf("variant %s: %w", l, err)
		}
		if c.Empty() {
			return &domain.ValidationError{Label: l, Reason: "generated content is empty"}
		}
		content[l] = c
	}
	st.Content = content
	return nil
}

func (u *CampaignUseCase) runAssignment(_ context.Context, st *domain.CampaignState) error {
	st.Groups = u.assigner.Assign(st.Recipients, st.Variants)
	return nil
}

func (u *CampaignUseCase) runDeliverability(_ context.Context, st *domain.CampaignState) error {
	checks := make(map[domain.Label]domain.CheckResult, len(st.Groups))
	for _, l := range st.PresentLabels() {
		c := u.gate.Check(st.Content[l], st.Groups[l])
		if !c.Passed {
			u.log.Warn("deliverability check not passed",
				slog.String("campaign_id", st.ID),
				slog.String("variant", string(l)),
				slog.Int("spam_score", c.Spam.Score),
				slog.Any("issues", c.Issues))
		}
		checks[l] = c
	}
	st.Deliverability = checks
	return nil
}

// Dispatch sends one variant. The label lock is held for the whole call so
// that concurrent requests for the same variant send at most once. The
// variant is claimed in the repository before the first email goes out;
// a claim that was never committed blocks further sends until Retry
// releases it. Once the lock is held, cancelling ctx no longer stops the
// dispatch or the storing of its result.
func (u *CampaignUseCase) Dispatch(ctx context.Context, id string, label domain.Label) (domain.CampaignState, error) {
	if _, ok := domain.ParseLabel(string(label)); !ok {
		return domain.CampaignState{}, &domain.ValidationError{Label: label, Reason: "unknown variant"}
	}
	unlock, err := u.locker.Lock(ctx, labelKey(id, label))
	if err != nil {
		return domain.CampaignState{}, err
	}
	defer unlock()
	ctx = context.WithoutCancel(ctx)

	st, err := u.repo.Get(ctx, id)
	if err != nil {
		return domain.CampaignState{}, err
	}
	if st.Stage == domain.StageFinalized {
		return st, nil
	}
	if !st.Stage.Dispatchable() {
		return st, fmt.Errorf("dispatch variant %s in stage %s: %w", label, st.Stage, domain.ErrInvalidStage)
	}
	rec := st.Dispatch[label]
	if rec.Sent {
		if st.Stage == domain.StageAllDispatched {
			return u.Finalize(ctx, id)
		}
		return st, nil
	}
	if rec.InProgress() {
		return st, fmt.Errorf("variant %s claimed at %s: %w",
			label, rec.ClaimedAt.Format(time.RFC3339), domain.ErrDispatchInProgress)
	}
	if err := u.dispatcher.Validate(st, label); err != nil {
		return st, err
	}

	st, err = u.claimDispatch(ctx, id, label)
	if err != nil {
		return st, fmt.Errorf("claim variant %s: %w", label, err)
	}

	next, err := u.dispatcher.Dispatch(ctx, st, label)
	if err != nil {
		cur, serr := u.releaseDispatch(ctx, id, label, err)
		if serr != nil {
			u.log.Error("failed to release dispatch claim",
				slog.String("campaign_id", id),
				slog.String("variant", string(label)),
				slog.Any("error", serr))
			return st, errors.Join(err, serr)
		}
		return cur, err
	}

	st, err = u.commitDispatch(ctx, id, label, next.Dispatch[label])
	if err != nil {
		rec := next.Dispatch[label]
		u.log.Error("dispatch sent but not persisted, variant stays claimed",
			slog.String("campaign_id", id),
			slog.String("variant", string(label)),
			slog.Int("succeeded", rec.Succeeded()),
			slog.Int("failed", rec.Failed()),
			slog.Any("error", err))
		return next, err
	}
	if st.Stage == domain.StageAllDispatched {
		return u.Finalize(ctx, id)
	}
	return st, nil
}

// claimDispatch stores an in-progress record for label before any email is
// sent.
func (u *CampaignUseCase) claimDispatch(ctx context.Context, id string, label domain.Label) (domain.CampaignState, error) {
	unlock, err := u.locker.Lock(ctx, campaignKey(id))
	if err != nil {
		return domain.CampaignState{}, err
	}
	defer unlock()

	cur, err := u.repo.Get(ctx, id)
	if err != nil {
		return domain.CampaignState{}, err
	}
	now := u.now()
	cur.InitMaps()
	cur.Dispatch[label] = domain.DispatchRecord{ClaimedAt: &now}
	cur.UpdatedAt = now
	if err := u.repo.Save(ctx, &cur); err != nil {
		return cur, err
	}
	return cur, nil
}

// commitDispatch copies a dispatch record into the latest stored state so
// that concurrent dispatches of other variants are preserved. Failed saves
// are retried with a doubling backoff.
func (u *CampaignUseCase) commitDispatch(ctx context.Context, id string, label domain.Label, rec domain.DispatchRecord) (domain.CampaignState, error) {
	delay := u.commitBackoff
	var err error
	for attempt := 1; ; attempt++ {
		var st domain.CampaignState
		st, err = u.saveDispatch(ctx, id, label, rec)
		if err == nil {
			return st, nil
		}
		if errors.Is(err, domain.ErrNotFound) || attempt >= u.commitAttempts {
			break
		}
		u.log.Warn("retrying dispatch commit",
			slog.String("campaign_id", id),
			slog.String("variant", string(label)),
			slog.Int("attempt", attempt),
			slog.Any("error", err))
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return domain.CampaignState{}, errors.Join(err, ctx.Err())
		case <-t.C:
		}
		delay *= 2
	}
	return domain.CampaignState{}, fmt.Errorf("save dispatch of variant %s: %w", label, err)
}

func (u *CampaignUseCase) saveDispatch(ctx context.Context, id string, label domain.Label, rec domain.DispatchRecord) (domain.CampaignState, error) {
	unlock, err := u.locker.Lock(ctx, campaignKey(id))
	if err != nil {
		return domain.CampaignState{}, err
	}
	defer unlock()

	cur, err := u.repo.Get(ctx, id)
	if err != nil {
		return domain.CampaignState{}, err
	}
	cur.InitMaps()
	cur.Dispatch[label] = rec
	next := domain.StagePartiallyDispatched
	if cur.AllSent() {
		next = domain.StageAllDispatched
	}
	if err := cur.Advance(next, u.now()); err != nil {
		return cur, err
	}
	if err := u.repo.Save(ctx, &cur); err != nil {
		return cur, err
	}
	return cur, nil
}

// releaseDispatch drops the claim on label after a dispatch that sent
// nothing lasting and records cause on the campaign.
func (u *CampaignUseCase) releaseDispatch(ctx context.Context, id string, label domain.Label, cause error) (domain.CampaignState, error) {
	unlock, err := u.locker.Lock(ctx, campaignKey(id))
	if err != nil {
		return domain.CampaignState{}, err
	}
	defer unlock()

	cur, err := u.repo.Get(ctx, id)
	if err != nil {
		return domain.CampaignState{}, err
	}
	now := u.now()
	delete(cur.Dispatch, label)
	cur.Error = &domain.StateError{Step: domain.StepDispatch, From: cur.Stage, Message: cause.Error(), At: now}
	cur.UpdatedAt = now
	if err := u.repo.Save(ctx, &cur); err != nil {
		return cur, err
	}
	return cur, nil
}

// releaseClaims clears uncommitted claims so that their variants can be
// dispatched again. Each label lock is taken first, so a dispatch that is
// still running is waited for.
func (u *CampaignUseCase) releaseClaims(ctx context.Context, id string, labels []domain.Label) (domain.CampaignState, error) {
	var cur domain.CampaignState
	for _, l := range labels {
		var err error
		cur, err = u.releaseClaim(ctx, id, l)
		if err != nil {
			return cur, err
		}
	}
	return cur, nil
}

func (u *CampaignUseCase) releaseClaim(ctx context.Context, id string, label domain.Label) (domain.CampaignState, error) {
	unlockLabel, err := u.locker.Lock(ctx, labelKey(id, label))
	if err != nil {
		return domain.CampaignState{}, err
	}
	defer unlockLabel()
	unlock, err := u.locker.Lock(ctx, campaignKey(id))
	if err != nil {
		return domain.CampaignState{}, err
	}
	defer unlock()

	cur, err := u.repo.Get(ctx, id)
	if err != nil {
		return domain.CampaignState{}, err
	}
	rec := cur.Dispatch[label]
	if !rec.InProgress() {
		return cur, nil
	}
	u.log.Warn("releasing interrupted dispatch, recipients may be mailed again",
		slog.String("campaign_id", id),
		slog.String("variant", string(label)),
		slog.Time("claimed_at", *rec.ClaimedAt))
	delete(cur.Dispatch, label)
	cur.Error = nil
	cur.UpdatedAt = u.now()
	if err := u.repo.Save(ctx, &cur); err != nil {
		return cur, err
	}
	return cur, nil
}

func claimedLabels(st domain.CampaignState) []domain.Label {
	var out []domain.Label
	for _, l := range domain.Labels {
		if st.Dispatch[l].InProgress() {
			out = append(out, l)
		}
	}
	return out
}

// Finalize reconciles metrics for every variant, writes the result
// documents and marks the campaign finalized.
func (u *CampaignUseCase) Finalize(ctx context.Context, id string) (domain.CampaignState, error) {
	unlock, err := u.locker.Lock(ctx, campaignKey(id))
	if err != nil {
		return domain.CampaignState{}, err
	}
	defer unlock()

	st, err := u.repo.Get(ctx, id)
	if err != nil {
		return domain.CampaignState{}, err
	}
	if st.Stage == domain.StageFinalized {
		return st, nil
	}
	if st.Stage != domain.StageAllDispatched {
		return st, fmt.Errorf("finalize campaign in stage %s: %w", st.Stage, domain.ErrInvalidStage)
	}

	for _, l := range st.PresentLabels() {
		u.reconciler.Reconcile(ctx, &st, l)
	}
	report := u.aggregator.Aggregate(st)

	if u.results != nil {
		if err := u.results.SaveResults(ctx, st.ID, u.aggregator.Results(st, report)); err != nil {
			return u.failFinalize(ctx, st, fmt.Errorf("save results: %w", err))
		}
		if err := u.results.SaveReport(ctx, report); err != nil {
			return u.failFinalize(ctx, st, fmt.Errorf("save report: %w", err))
		}
	}

	st.Report = &report
	if err := st.Advance(domain.StageFinalized, u.now()); err != nil {
		return st, err
	}
	if err := u.repo.Save(ctx, &st); err != nil {
		return st, fmt.Errorf("save finalized campaign: %w", err)
	}
	u.log.Info("campaign finalized",
		slog.String("campaign_id", st.ID),
		slog.String("winner", string(report.Winner)),
		slog.String("primary_metric", report.PrimaryMetric))
	return st, nil
}

// failFinalize keeps reconciled metrics and the all_dispatched stage so the
// finalization can be retried.
func (u *CampaignUseCase) failFinalize(ctx context.Context, st domain.CampaignState, cause error) (domain.CampaignState, error) {
	u.log.Error("finalization failed", slog.String("campaign_id", st.ID), slog.Any("error", cause))
	now := u.now()
	st.Error = &domain.StateError{Step: domain.StepFinalize, From: st.Stage, Message: cause.Error(), At: now}
	st.UpdatedAt = now
	stageErr := &domain.StageError{Step: domain.StepFinalize, Err: cause}
	if err := u.repo.Save(ctx, &st); err != nil {
		return st, errors.Join(stageErr, err)
	}
	return st, stageErr
}

// Get returns the stored campaign.
func (u *CampaignUseCase) Get(ctx context.Context, id string) (domain.CampaignState, error) {
	return u.repo.Get(ctx, id)
}

// List returns up to limit recent campaigns.
func (u *CampaignUseCase) List(ctx context.Context, limit int) ([]domain.CampaignState, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return u.repo.List(ctx, limit)
}

// RecordProviderEvents stores provider reported activity. Without an
// activity log the events are dropped.
func (u *CampaignUseCase) RecordProviderEvents(ctx context.Context, events []domain.ActivityEvent) error {
	if len(events) == 0 {
		return nil
	}
	now := u.now()
	out := make([]domain.ActivityEvent, len(events))
	for i, e := range events {
		if e.CampaignID == "" {
			return &domain.ValidationError{Reason: fmt.Sprintf("event %d has no campaign id", i)}
		}
		if !domain.ValidAction(e.Action) {
			return &domain.ValidationError{Reason: fmt.Sprintf("event %d has unknown action %q", i, e.Action)}
		}
		e.Source = domain.SourceProvider
		if e.OccurredAt.IsZero() {
			e.OccurredAt = now
		}
		out[i] = e
	}
	if u.activity == nil {
		u.log.Debug("activity log disabled, dropping provider events", slog.Int("count", len(out)))
		return nil
	}
	return u.activity.Record(ctx, out)
}

func campaignKey(id string) string {
	return "campaign:" + id
}

func labelKey(id string, label domain.Label) string {
	return "campaign:" + id + ":" + string(label)
}

// uniqueRecipients drops repeated recipients, keyed by id or, without an
// id, by lower-cased address. Order is preserved.
func uniqueRecipients(in []domain.Recipient) []domain.Recipient {
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.Recipient, 0, len(in))
	for _, r := range in {
		key := r.ID
		if key == "" {
			key = "email:" + strings.ToLower(r.Email)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
