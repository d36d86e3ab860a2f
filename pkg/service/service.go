package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"

	"github.com/nasdeck/nasdeck/pkg/audit"
	"github.com/nasdeck/nasdeck/pkg/logging"
	"github.com/nasdeck/nasdeck/pkg/organizer"
	"github.com/nasdeck/nasdeck/pkg/provider"
	"github.com/nasdeck/nasdeck/pkg/store"
)

// ErrNoProvider is returned by Sync when no provider is configured.
var ErrNoProvider = errors.New("no resource provider configured")

// Service coordinates the store, the provider and the pure organizer core.
type Service struct {
	store       store.OrganizerStore
	provider    provider.Provider
	log         *slog.Logger
	audit       audit.Logger
	syncOnApply bool

	// mu is the in-process queue: one load-mutate-save cycle at a time.
	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithAudit records every applied or rejected action and every sync.
func WithAudit(l audit.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.audit = l
		}
	}
}

// WithProvider sets the resource provider used by Sync.
func WithProvider(p provider.Provider) Option {
	return func(s *Service) { s.provider = p }
}

// WithSyncOnApply reconciles with the provider before every action.
func WithSyncOnApply(on bool) Option {
	return func(s *Service) { s.syncOnApply = on }
}

// New creates a Service backed by st.
func New(st store.OrganizerStore, opts ...Option) *Service {
	s := &Service{store: st, log: logging.Nop(), audit: &audit.NoOpLogger{}}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "service")
	return s
}

// HasProvider reports whether Sync can run.
func (s *Service) HasProvider() bool {
	return s.provider != nil
}

// Snapshot returns the current organizer. The caller owns it.
func (s *Service) Snapshot(ctx context.Context) (*organizer.Organizer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load(ctx)
}

// SyncReport describes the outcome of a Sync.
type SyncReport struct {
	// Resources is the number of resources the provider reported.
	Resources int `json:"resources"`
	// Added lists resources newly placed under the default view's root.
	Added []string `json:"added"`
	// Orphans lists ids still filed in the default view whose resource is gone.
	Orphans []string `json:"orphans"`
	// Saved is false when nothing changed and the store was not written.
	Saved bool `json:"saved"`
}

// Sync fetches the provider's resources, reconciles the default view and
// saves when anything changed.
func (s *Service) Sync(ctx context.Context) (*SyncReport, error) {
	if s.provider == nil {
		return nil, ErrNoProvider
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	next, report, err := s.reconcile(ctx, current)
	if err != nil {
		return nil, err
	}
	if changed(current, next) {
		if err := s.store.Save(ctx, next); err != nil {
			return nil, err
		}
		report.Saved = true
	}
	s.log.Info("sync complete",
		"resources", report.Resources, "added", len(report.Added), "orphans", len(report.Orphans), "saved", report.Saved)
	s.record(audit.NewEntry(audit.EventSyncCompleted).WithSync(&audit.SyncInfo{
		Resources: report.Resources,
		Added:     report.Added,
		Orphans:   report.Orphans,
		Saved:     report.Saved,
	}))
	return report, nil
}

func (s *Service) reconcile(ctx context.Context, current *organizer.Organizer) (*organizer.Organizer, *SyncReport, error) {
	fresh, err := s.provider.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing resources: %w", err)
	}
	next := organizer.Reconcile(current, fresh)

	report := &SyncReport{Resources: len(fresh), Added: []string{}, Orphans: []string{}}
	before := current.Views[organizer.DefaultViewID]
	after := next.Views[organizer.DefaultViewID]
	if after != before && after != nil {
		var prev []string
		if before != nil && before.RootFolder() != nil {
			prev = before.RootFolder().Children
		}
		for _, id := range after.RootFolder().Children {
			if !slices.Contains(prev, id) {
				report.Added = append(report.Added, id)
			}
		}
	}
	if after != nil {
		tree := organizer.ResolveView(after, next.Resources)
		if orphans := tree.Root.Orphans(); orphans != nil {
			report.Orphans = orphans
		}
	}
	for _, id := range report.Added {
		s.log.Debug("resource added", "id", id)
	}
	for _, id := range report.Orphans {
		s.log.Warn("resource no longer reported", "id", id)
	}
	return next, report, nil
}

// Apply runs one action in a load-mutate-save cycle and returns the new
// snapshot. A rejected action leaves the store untouched and returns the
// organizer's *MutationError.
func (s *Service) Apply(ctx context.Context, a Action) (*organizer.Organizer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	base := current
	if s.syncOnApply && s.provider != nil {
		if base, _, err = s.reconcile(ctx, current); err != nil {
			return nil, err
		}
	}

	log := s.log.With("action", a.Op())
	next, err := a.Apply(base)
	if err != nil {
		info := &audit.ErrorInfo{Message: err.Error()}
		var me *organizer.MutationError
		if errors.As(err, &me) {
			log.Info("action rejected", "kind", me.Kind(), "ids", me.IDs)
			info = &audit.ErrorInfo{Kind: me.Kind(), Message: me.Err.Error(), View: me.View, IDs: me.IDs}
		}
		s.record(audit.NewEntry(audit.EventActionRejected).WithAction(a.Op(), a).WithError(info))
		return nil, err
	}
	// State that was already corrupt on load is tolerated, not blamed on the action.
	if err := organizer.Check(next); err != nil && organizer.Check(base) == nil {
		err = fmt.Errorf("%s produced an invalid organizer: %w", a.Op(), err)
		s.record(audit.NewEntry(audit.EventError).WithAction(a.Op(), a).WithError(&audit.ErrorInfo{
			Kind: organizer.ErrorKind(err), Message: err.Error(),
		}))
		return nil, err
	}
	if !changed(current, next) {
		log.Debug("action changed nothing")
		s.record(audit.NewEntry(audit.EventActionUnchanged).WithAction(a.Op(), a))
		return next, nil
	}
	if err := s.store.Save(ctx, next); err != nil {
		return nil, err
	}
	log.Info("action applied")
	s.record(audit.NewEntry(audit.EventActionApplied).WithAction(a.Op(), a))
	return next, nil
}

// record writes e to the audit journal. A journal failure is logged but
// never fails the operation that was already persisted.
func (s *Service) record(e *audit.Entry) {
	if err := s.audit.Log(*e); err != nil {
		s.log.Warn("audit journal write failed", "event", e.Event, "error", err)
	}
}

// changed reports whether next differs from what was loaded. The mutators
// return their input unchanged for no-ops, so pointer equality covers most
// cases without a deep comparison.
func changed(current, next *organizer.Organizer) bool {
	if current == next {
		return false
	}
	return !reflect.DeepEqual(current, next)
}
