package services

import (
	"time"

	"go.uber.org/zap"
)

// timeNow is the service clock; tests replace it.
var timeNow = time.Now

const (
	defaultDueMonths = 1
	defaultLockTTL   = 30 * time.Second
)

// Options tune the corrective-action workflow.
type Options struct {
	DefaultDueMonths int
	LockTTL          time.Duration
}

// Deps are the collaborators an AuditService works with. Index, Archiver,
// Locker and Dispatcher may be nil; the related features then degrade.
type Deps struct {
	Assets     AssetStore
	Actions    ActionStore
	Plans      PlanStore
	Roster     RosterStore
	Reminders  ReminderLogStore
	Dispatcher Dispatcher
	Index      ActionIndex
	Archiver   ReportArchiver
	Locker     Locker
	Metrics    *Metrics
	Logger     *zap.Logger
}

// AuditService drives discrepancy detection and the corrective-action
// lifecycle of audit plans.
type AuditService struct {
	assets     AssetStore
	actions    ActionStore
	plans      PlanStore
	roster     RosterStore
	reminders  ReminderLogStore
	dispatcher Dispatcher
	index      ActionIndex
	archiver   ReportArchiver
	locker     Locker
	metrics    *Metrics
	logger     *zap.Logger
	opts       Options
}

// NewAuditService wires the service. Zero options fall back to a one-month
// due date and a 30 second generation lock.
func NewAuditService(d Deps, opts Options) *AuditService {
	if opts.DefaultDueMonths <= 0 {
		opts.DefaultDueMonths = defaultDueMonths
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = defaultLockTTL
	}
	if d.Metrics == nil {
		d.Metrics = NewMetrics(nil)
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &AuditService{
		assets:     d.Assets,
		actions:    d.Actions,
		plans:      d.Plans,
		roster:     d.Roster,
		reminders:  d.Reminders,
		dispatcher: d.Dispatcher,
		index:      d.Index,
		archiver:   d.Archiver,
		locker:     d.Locker,
		metrics:    d.Metrics,
		logger:     d.Logger.Named("audit-service"),
		opts:       opts,
	}
}
