package services

import (
	"context"
	"sync"

	"github.com/Itish41/asset-audit/engine"
	"github.com/Itish41/asset-audit/models"
	"golang.org/x/sync/errgroup"
)

const (
	classAssets  = "assets"
	classActions = "actions"
	classRoster  = "roster"
)

// PlanWorkspace holds a working copy of one plan's assets, action page and
// roster. Every load is tagged with a sequence number per query class and
// its result is applied only while that number is still the latest issued,
// so a slow earlier load never overwrites a newer one.
type PlanWorkspace struct {
	svc    *AuditService
	planID string
	seq    *engine.Sequencer

	mu       sync.RWMutex
	assets   []models.AuditedAsset
	actioned map[string]struct{}
	page     *ActionViewPage
	filter   models.ActionFilter
	roster   []models.Employee
}

func NewPlanWorkspace(svc *AuditService, planID string) *PlanWorkspace {
	return &PlanWorkspace{
		svc:      svc,
		planID:   planID,
		seq:      engine.NewSequencer(),
		actioned: map[string]struct{}{},
		filter:   models.ActionFilter{AuditPlanID: planID},
	}
}

// Refresh reloads every class concurrently.
func (w *PlanWorkspace) Refresh(ctx context.Context) error {
	if _, err := w.svc.plans.Get(ctx, w.planID); err != nil {
		return err
	}
	w.mu.RLock()
	filter := w.filter
	w.mu.RUnlock()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := w.LoadAssets(gctx)
		return err
	})
	g.Go(func() error {
		_, err := w.LoadActions(gctx, filter)
		return err
	})
	g.Go(func() error {
		_, err := w.LoadRoster(gctx)
		return err
	})
	return g.Wait()
}

// LoadAssets reports whether the loaded assets were applied.
func (w *PlanWorkspace) LoadAssets(ctx context.Context) (bool, error) {
	seq := w.seq.Next(classAssets)
	st, err := w.svc.loadPlanState(ctx, w.planID, false)
	if err != nil {
		return false, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.seq.IsLatest(classAssets, seq) {
		return false, nil
	}
	w.assets = st.assets
	w.actioned = st.actioned
	return true, nil
}

// LoadActions fetches one page of actions for filter and, when still the
// latest request, makes filter the workspace's current one.
func (w *PlanWorkspace) LoadActions(ctx context.Context, filter models.ActionFilter) (bool, error) {
	filter.AuditPlanID = w.planID
	seq := w.seq.Next(classActions)
	page, err := w.svc.ListActions(ctx, filter)
	if err != nil {
		return false, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.seq.IsLatest(classActions, seq) {
		return false, nil
	}
	w.page = page
	w.filter = filter
	return true, nil
}

func (w *PlanWorkspace) LoadRoster(ctx context.Context) (bool, error) {
	seq := w.seq.Next(classRoster)
	roster, err := w.svc.roster.List(ctx, "")
	if err != nil {
		return false, engine.Dependency("load roster", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.seq.IsLatest(classRoster, seq) {
		return false, nil
	}
	w.roster = roster
	return true, nil
}

func (w *PlanWorkspace) Assets() []models.AuditedAsset {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]models.AuditedAsset(nil), w.assets...)
}

// Actions returns the current page, or nil before the first load.
func (w *PlanWorkspace) Actions() *ActionViewPage {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.page
}

func (w *PlanWorkspace) Roster() []models.Employee {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]models.Employee(nil), w.roster...)
}

// Discrepancies derives the open findings from the loaded assets.
func (w *PlanWorkspace) Discrepancies() []engine.Discrepancy {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return engine.DetectDiscrepancies(w.assets, w.actioned)
}

// Candidates ranks the loaded roster for location.
func (w *PlanWorkspace) Candidates(location string) engine.Tiers {
	w.mu.RLock()
	defer w.mu.RUnlock()
	candidates := make([]models.Candidate, 0, len(w.roster))
	for _, e := range w.roster {
		candidates = append(candidates, e.Candidate())
	}
	return engine.Resolve(location, candidates)
}
