package services

import (
	"context"
	"fmt"

	"github.com/alanecode/cymod/internal/db/manager"
	"github.com/alanecode/cymod/internal/params"
	"github.com/alanecode/cymod/pkg/cymod"
)

// LoadServiceDeps bundles the collaborators a LoadService is built from.
// Every field is required.
type LoadServiceDeps struct {
	Locator  cymod.FragmentLocator
	Parser   cymod.StatementParser
	Builder  *BatchBuilder
	Sessions *SessionManager
	Manager  *manager.GraphManager
	Approver cymod.Approver
	Logger   cymod.Logger
}

// LoadService orchestrates a load end to end: the validation stages that
// build a plan, then the commit stage that executes it. One service runs
// one load; it cannot be reused after reaching a terminal state.
//
// Thread-Safety: NOT safe for concurrent use.
type LoadService struct {
	cfg  cymod.Config
	deps LoadServiceDeps

	state cymod.LoadState
	plan  *cymod.LoadPlan
}

// NewLoadService creates a load service.
// Panics if any dependency is nil.
func NewLoadService(cfg cymod.Config, deps LoadServiceDeps) *LoadService {
	if deps.Locator == nil {
		panic("locator cannot be nil")
	}
	if deps.Parser == nil {
		panic("parser cannot be nil")
	}
	if deps.Builder == nil {
		panic("builder cannot be nil")
	}
	if deps.Sessions == nil {
		panic("session manager cannot be nil")
	}
	if deps.Manager == nil {
		panic("graph manager cannot be nil")
	}
	if deps.Approver == nil {
		panic("approver cannot be nil")
	}
	if deps.Logger == nil {
		panic("logger cannot be nil")
	}
	return &LoadService{
		cfg:   cfg,
		deps:  deps,
		state: cymod.StateIdle,
	}
}

// State returns the load's current lifecycle state.
func (s *LoadService) State() cymod.LoadState {
	return s.state
}

// Plan returns the built plan, or nil before a successful Load.
func (s *LoadService) Plan() *cymod.LoadPlan {
	return s.plan
}

// Load runs discovery, parsing, parameter resolution and batch building.
// Nothing here touches the database: any error leaves the graph untouched.
func (s *LoadService) Load(ctx context.Context, root string) (*cymod.LoadPlan, error) {
	if s.state != cymod.StateIdle {
		return nil, fmt.Errorf("load already started in state %s: %w", s.state, cymod.ErrLoadFinished)
	}

	if err := s.cfg.Validate(); err != nil {
		return nil, s.fail(err)
	}

	s.state = cymod.StateLocating
	fragments, err := s.deps.Locator.Locate(root)
	if err != nil {
		return nil, s.fail(err)
	}
	s.deps.Logger.Info("located %d fragment(s) under %s", len(fragments), root)

	s.state = cymod.StateParsing
	parsed := make([]cymod.ParsedFragment, 0, len(fragments))
	for _, frag := range fragments {
		pf, err := s.deps.Parser.Parse(frag)
		if err != nil {
			return nil, s.fail(err)
		}
		parsed = append(parsed, pf)
	}

	s.state = cymod.StateResolving
	globals, err := s.resolveParameters()
	if err != nil {
		return nil, s.fail(err)
	}

	s.state = cymod.StateBuilding
	batches, err := s.deps.Builder.Build(parsed, globals)
	if err != nil {
		return nil, s.fail(err)
	}

	s.plan = &cymod.LoadPlan{
		Root:       root,
		Batches:    batches,
		Parameters: globals,
	}
	s.deps.Logger.Info("plan ready: %d batch(es), %d statement(s)",
		s.plan.FragmentCount(), s.plan.StatementCount())
	return s.plan, nil
}

// resolveParameters layers the parameter sources: project defaults under
// the parameter file under explicit overrides.
func (s *LoadService) resolveParameters() (map[string]any, error) {
	set := params.NewSet(s.cfg.ProjectParameters)
	if s.cfg.ParameterFilePath != "" {
		fileSet, err := params.LoadFile(s.cfg.ParameterFilePath)
		if err != nil {
			return nil, err
		}
		set = set.Merge(fileSet)
		s.deps.Logger.Verbose("loaded %d parameter(s) from %s", fileSet.Len(), s.cfg.ParameterFilePath)
	}
	set = set.Merge(params.NewSet(s.cfg.Parameters))
	return set.Values(), nil
}

// Commit executes the built plan: optional approved clear, then one
// transaction per batch in order, failing fast on the first batch that
// does not commit. Committed batches stay committed.
func (s *LoadService) Commit(ctx context.Context) error {
	if s.state.Terminal() {
		return fmt.Errorf("cannot commit in state %s: %w", s.state, cymod.ErrLoadFinished)
	}
	if s.plan == nil {
		return s.fail(cymod.ErrNoPlan)
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	s.state = cymod.StateCommitting
	session, err := s.deps.Sessions.PrepareSession(ctx)
	if err != nil {
		return s.fail(err)
	}
	defer session.Close(ctx)

	if err := s.clearIfRequested(ctx, session.Conn()); err != nil {
		return s.fail(err)
	}

	for i, batch := range s.plan.Batches {
		if err := s.commitBatch(ctx, session.Conn(), batch, i); err != nil {
			return s.fail(err)
		}
		s.deps.Logger.Info("committed %s (%d/%d)", batch.FragmentPath, i+1, s.plan.FragmentCount())
	}

	s.state = cymod.StateDone
	s.deps.Logger.Info("load complete: %d batch(es), %d statement(s)",
		s.plan.FragmentCount(), s.plan.StatementCount())
	return nil
}

// clearIfRequested runs the approval-guarded clear step. It executes at
// most once, before the first batch.
func (s *LoadService) clearIfRequested(ctx context.Context, conn cymod.GraphConnection) error {
	if !s.cfg.ClearExisting && !s.cfg.ClearMatching {
		return nil
	}

	approved, err := s.deps.Approver.RequestApproval(ctx, s.cfg.Target())
	if err != nil {
		return fmt.Errorf("approval failed: %w", err)
	}
	if !approved {
		return fmt.Errorf("clear of %s was not approved: %w", s.cfg.Target(), cymod.ErrApprovalDenied)
	}

	if s.cfg.ClearMatching {
		return s.deps.Manager.ClearMatching(ctx, conn, s.plan.Parameters)
	}
	return s.deps.Manager.ClearAll(ctx, conn)
}

// commitBatch runs every statement of one batch inside a single
// transaction. committed is the count of durably committed earlier batches,
// reported on failure.
func (s *LoadService) commitBatch(ctx context.Context, conn cymod.GraphConnection, batch cymod.Batch, committed int) error {
	tx, err := conn.BeginTransaction(ctx)
	if err != nil {
		return &cymod.CommitError{
			FragmentPath:     batch.FragmentPath,
			StatementIndex:   -1,
			BatchesCommitted: committed,
			Err:              err,
		}
	}

	for _, stmt := range batch.Statements {
		if err := tx.Run(ctx, stmt.Text, stmt.Bindings); err != nil {
			_ = tx.Rollback(ctx)
			s.deps.Logger.Error("statement %d of %s failed: %s", stmt.Index, batch.FragmentPath, stmt.Preview())
			return &cymod.CommitError{
				FragmentPath:     batch.FragmentPath,
				StatementIndex:   stmt.Index,
				BatchesCommitted: committed,
				Err:              err,
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &cymod.CommitError{
			FragmentPath:     batch.FragmentPath,
			StatementIndex:   -1,
			BatchesCommitted: committed,
			Err:              err,
		}
	}
	return nil
}

// fail records the terminal failure and returns it.
func (s *LoadService) fail(err error) error {
	s.state = cymod.StateFailed
	s.deps.Logger.Error("load failed: %v", err)
	return err
}

// Verify LoadService implements the interface at compile time
var _ cymod.Loader = (*LoadService)(nil)
