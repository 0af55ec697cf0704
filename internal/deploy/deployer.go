// Package deploy turns a synchronized model graph into a create-or-replace
// apply script, executes it against the metadata store, and drives the
// subsequent refresh with asynchronous progress reporting and best-effort
// cancellation.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/semanticbi/tabsync/pkg/tabsync"

	"github.com/semanticbi/tabsync/internal/model"
)

// Deployer runs the deployment state machine:
//
//	Validating → Scripting → Applying → CollectingCredentials (optional)
//	→ Processing → {Completed | Failed | Cancelled}
//
// Validation through credential collection run synchronously on the
// caller's goroutine; Processing runs in the background, with completion,
// failure or cancellation delivered through the message handler and
// observable via Wait.
//
// Thread-Safety: NOT safe for concurrent Deploy() calls on the same
// instance. Create separate instances for concurrent deployments. Status
// and Cancel are safe to call from any goroutine while Processing runs.
type Deployer struct {
	connector   tabsync.Connector
	credentials tabsync.CredentialProvider
	messages    tabsync.MessageHandler
	logger      tabsync.Logger

	mu      sync.Mutex
	phase   tabsync.DeploymentPhase
	session tabsync.StoreSession
	opts    tabsync.DeployOptions
	tracker *ProgressTracker
	group   *errgroup.Group

	cancelRequested atomic.Bool
	inTransaction   atomic.Bool
}

// NewDeployer creates a Deployer with all dependencies injected.
//
// Panics on nil dependencies: these are programmer errors that should fail
// loudly at application startup, not during a deployment.
func NewDeployer(
	connector tabsync.Connector,
	credentials tabsync.CredentialProvider,
	messages tabsync.MessageHandler,
	logger tabsync.Logger,
) *Deployer {
	if connector == nil {
		panic("connector cannot be nil")
	}
	if credentials == nil {
		panic("credential provider cannot be nil")
	}
	if messages == nil {
		panic("message handler cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &Deployer{
		connector:   connector,
		credentials: credentials,
		messages:    messages,
		logger:      logger,
		phase:       tabsync.PhaseIdle,
		tracker:     NewProgressTracker(),
	}
}

// Deploy validates, scripts and applies the model, collects credentials,
// and starts the processing phase in the background. A nil return means
// processing was started (or nothing needed processing); the final outcome
// is delivered via the message handler and Wait.
func (d *Deployer) Deploy(ctx context.Context, m *model.Model, opts tabsync.DeployOptions) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid deploy options: %w", err)
	}
	d.opts = opts

	d.setPhase(tabsync.PhaseValidating)
	if err := d.validateModel(m); err != nil {
		d.setPhase(tabsync.PhaseFailed)
		return err
	}

	for _, name := range opts.ProcessTables {
		storeID := name
		if t := m.Table(name); t != nil && t.StoreID != "" {
			storeID = t.StoreID
		}
		d.tracker.Track(name, storeID)
	}

	d.setPhase(tabsync.PhaseScripting)
	script, err := m.Script(opts.DatabaseName)
	if err != nil {
		d.setPhase(tabsync.PhaseFailed)
		return err
	}
	d.logger.Verbose("Scripted model '%s' (%d bytes)", m.Name, len(script))

	session, err := d.connect(ctx)
	if err != nil {
		d.setPhase(tabsync.PhaseFailed)
		return err
	}
	d.mu.Lock()
	d.session = session
	d.mu.Unlock()

	d.setPhase(tabsync.PhaseApplying)
	if err := d.apply(ctx, session, script); err != nil {
		d.finish(tabsync.PhaseFailed, tabsync.TableStateErrored)
		session.Close()
		return err
	}
	d.logger.Info("✓ Model applied to database '%s'", opts.DatabaseName)

	if err := d.collectCredentials(ctx, m); err != nil {
		session.Close()
		return err
	}

	d.setPhase(tabsync.PhaseProcessing)
	procCtx := context.WithoutCancel(ctx)
	group := &errgroup.Group{}
	d.mu.Lock()
	d.group = group
	d.mu.Unlock()
	group.Go(func() error {
		return d.process(procCtx, session, m)
	})
	return nil
}

// Wait blocks until the background processing phase finishes and returns
// its outcome. Returns nil immediately when processing never started.
func (d *Deployer) Wait() error {
	d.mu.Lock()
	group := d.group
	d.mu.Unlock()
	if group == nil {
		return nil
	}
	return group.Wait()
}

// Cancel requests cancellation of a running deployment. Inside a
// transaction it rolls back and reports every table as errored; otherwise
// it is best-effort: a flag is set and the progress-event handler issues a
// store-level cancel-by-session command. Events already in flight may still
// be delivered and are tolerated.
func (d *Deployer) Cancel(ctx context.Context) {
	d.cancelRequested.Store(true)

	if d.inTransaction.Load() {
		d.mu.Lock()
		session := d.session
		d.mu.Unlock()
		if session != nil {
			if err := session.RollbackTransaction(ctx); err != nil {
				d.logger.Error("Rollback on cancel failed: %v", err)
			}
		}
		d.inTransaction.Store(false)
		d.finish(tabsync.PhaseCancelled, tabsync.TableStateErrored)
	}
}

// Status returns a point-in-time snapshot of the deployment, safe to call
// while processing runs in the background.
func (d *Deployer) Status() tabsync.DeploymentStatus {
	d.mu.Lock()
	phase := d.phase
	d.mu.Unlock()
	return tabsync.DeploymentStatus{Phase: phase, Tables: d.tracker.Snapshot()}
}

// validateModel runs the final pre-apply precondition checks. Nothing has
// been sent to the store when these fail.
func (d *Deployer) validateModel(m *model.Model) error {
	if m.DirectQuery && len(m.Connections) > 1 {
		msg := fmt.Sprintf("Model '%s' is a direct-query model and may have at most one connection; found %d.",
			m.Name, len(m.Connections))
		d.messages.HandleDeploymentMessage(tabsync.DeploymentMessage{
			Scope:    m.Name,
			Text:     msg,
			Kind:     tabsync.MessageKindGeneral,
			Severity: tabsync.SeverityError,
		})
		return fmt.Errorf("%s: %w", msg, tabsync.ErrValidationFailed)
	}
	return nil
}

// connect opens the store session and verifies the target database exists.
func (d *Deployer) connect(ctx context.Context) (tabsync.StoreSession, error) {
	d.logger.Verbose("Connecting to server '%s'", d.opts.ServerAddress)
	session, err := d.connector.Connect(ctx, d.opts.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %q: %w", d.opts.ServerAddress, errors.Join(tabsync.ErrConnectionFailed, err))
	}
	if err := d.connector.FindDatabase(ctx, session, d.opts.DatabaseName); err != nil {
		session.Close()
		return nil, fmt.Errorf("database %q not found: %w", d.opts.DatabaseName, errors.Join(tabsync.ErrConnectionFailed, err))
	}
	d.logger.Verbose("Connected, session '%s'", session.SessionID())
	return session, nil
}

// apply executes the script as one operation. The store-side apply is
// treated as atomic at the script level: any reported error aborts with no
// partial-application assumption.
func (d *Deployer) apply(ctx context.Context, session tabsync.StoreSession, script string) error {
	result, err := session.Execute(ctx, script)
	if err != nil {
		d.reportFailure(fmt.Sprintf("Apply failed: %v", err))
		return fmt.Errorf("apply script execution: %w", errors.Join(tabsync.ErrApplyFailed, err))
	}
	if result.HasErrors() {
		for _, e := range result.Errors {
			d.reportFailure("Apply rejected by store: " + e)
		}
		return fmt.Errorf("store rejected apply script: %w", tabsync.ErrApplyFailed)
	}
	return nil
}

// collectCredentials requests impersonation credentials for each provider
// connection that needs them. A user dismissal cancels the whole deployment
// and reports every pending table as cancelled.
func (d *Deployer) collectCredentials(ctx context.Context, m *model.Model) error {
	var pending []*model.Connection
	for _, c := range m.Connections {
		if c.ImpersonateAccount {
			pending = append(pending, c)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	d.setPhase(tabsync.PhaseCollectingCredentials)
	for _, c := range pending {
		creds, ok, err := d.credentials.RequestCredentials(ctx, c.Name, c.ImpersonationAccount)
		if err != nil {
			d.finish(tabsync.PhaseFailed, tabsync.TableStateErrored)
			return fmt.Errorf("credential collection for connection %q: %w", c.Name, err)
		}
		if !ok {
			d.messages.HandleDeploymentMessage(tabsync.DeploymentMessage{
				Scope:    c.Name,
				Text:     fmt.Sprintf("Credential request for connection '%s' was dismissed; deployment cancelled.", c.Name),
				Kind:     tabsync.MessageKindGeneral,
				Severity: tabsync.SeverityWarning,
			})
			d.finish(tabsync.PhaseCancelled, tabsync.TableStateCancelled)
			return fmt.Errorf("connection %q: %w", c.Name, errors.Join(tabsync.ErrCancelled, tabsync.ErrCredentialsDeclined))
		}
		c.ImpersonationAccount = creds.Account
		c.ImpersonationPassword = creds.Password
	}
	return nil
}

// process is the background processing phase. The progress subscription is
// torn down on every exit path.
func (d *Deployer) process(ctx context.Context, session tabsync.StoreSession, m *model.Model) error {
	defer session.Close()

	if d.opts.UseTransaction {
		if err := session.BeginTransaction(ctx); err != nil {
			return d.failProcessing(ctx, session, fmt.Errorf("begin transaction: %w", err))
		}
		d.inTransaction.Store(true)
	}

	events, unsubscribe, err := session.SubscribeProgress(ctx)
	if err != nil {
		return d.failProcessing(ctx, session, fmt.Errorf("progress subscription: %w", err))
	}
	defer unsubscribe()

	pumpDone := make(chan struct{})
	go d.pumpEvents(ctx, session, events, pumpDone)

	if err := d.runRefreshes(ctx, session); err != nil {
		return d.failProcessing(ctx, session, err)
	}

	if d.opts.UseTransaction && d.inTransaction.Load() {
		if err := session.CommitTransaction(ctx); err != nil {
			return d.failProcessing(ctx, session, fmt.Errorf("commit: %w", err))
		}
		d.inTransaction.Store(false)
	}

	unsubscribe()
	<-pumpDone

	if d.cancelRequested.Load() {
		d.finish(tabsync.PhaseCancelled, tabsync.TableStateCancelled)
		return tabsync.ErrCancelled
	}

	d.tracker.FinishPending(tabsync.TableStateDone)
	d.setPhase(tabsync.PhaseCompleted)
	for _, ts := range d.tracker.Snapshot() {
		d.messages.HandleDeploymentMessage(tabsync.DeploymentMessage{
			Scope:    ts.Name,
			Text:     fmt.Sprintf("Table '%s' processed: %d rows.", ts.Name, ts.RowCount),
			Kind:     tabsync.MessageKindTable,
			Severity: tabsync.SeverityInformational,
		})
	}
	d.logger.Info("✓ Deployment completed")
	return nil
}

// pumpEvents consumes the progress stream until it closes. Events from
// foreign sessions are ignored. When cancellation was requested the pump
// issues the store-level cancel-by-session command; later events are
// tolerated.
func (d *Deployer) pumpEvents(ctx context.Context, session tabsync.StoreSession, events <-chan tabsync.ProgressEvent, done chan<- struct{}) {
	defer close(done)
	cancelIssued := false
	for ev := range events {
		if ev.SessionID != session.SessionID() {
			continue
		}
		if d.cancelRequested.Load() && !cancelIssued {
			cancelIssued = true
			if err := session.CancelSession(ctx, session.SessionID()); err != nil {
				d.logger.Error("Cancel command failed: %v", err)
			}
		}
		if name, total, ok := d.tracker.Apply(ev); ok {
			d.logger.Verbose("Table '%s': %d rows", name, total)
		}
	}
}

// runRefreshes triggers the refresh of each requested table. When no tables
// were requested but the synchronization pass changed structure, a
// calculation-only refresh runs instead.
func (d *Deployer) runRefreshes(ctx context.Context, session tabsync.StoreSession) error {
	if d.opts.ProcessingMode != tabsync.ProcessNone && len(d.opts.ProcessTables) > 0 {
		refreshType := d.opts.ProcessingMode.RefreshTypeFor()
		for _, name := range d.opts.ProcessTables {
			if d.cancelRequested.Load() {
				return nil
			}
			d.tracker.SetState(name, tabsync.TableStateProcessing)
			req := tabsync.RefreshRequest{DatabaseName: d.opts.DatabaseName, TableName: name, Type: refreshType}
			if err := session.Refresh(ctx, req); err != nil {
				return fmt.Errorf("refresh of table %q: %w", name, err)
			}
			d.tracker.SetState(name, tabsync.TableStateDone)
		}
		return nil
	}

	if d.opts.StructuralChanges {
		d.logger.Verbose("No tables requested; running calculation-only refresh")
		req := tabsync.RefreshRequest{DatabaseName: d.opts.DatabaseName, Type: tabsync.RefreshCalculate}
		if err := session.Refresh(ctx, req); err != nil {
			return fmt.Errorf("calculation refresh: %w", err)
		}
	}
	return nil
}

// failProcessing reports a processing failure: inside a transaction the
// transaction is rolled back; every pending table is reported errored. The
// model itself is already applied and is not otherwise rolled back.
func (d *Deployer) failProcessing(ctx context.Context, session tabsync.StoreSession, cause error) error {
	if d.inTransaction.Load() {
		if rbErr := session.RollbackTransaction(ctx); rbErr != nil {
			d.logger.Error("Rollback failed: %v", rbErr)
		}
		d.inTransaction.Store(false)
	}
	d.reportFailure(fmt.Sprintf("Processing failed: %v", cause))
	d.finish(tabsync.PhaseFailed, tabsync.TableStateErrored)
	return fmt.Errorf("%w: %w", tabsync.ErrProcessingFailed, cause)
}

// finish moves the deployer into a terminal phase and every pending table
// into the given terminal state.
func (d *Deployer) finish(phase tabsync.DeploymentPhase, tableState tabsync.TableState) {
	d.tracker.FinishPending(tableState)
	d.setPhase(phase)
	for _, ts := range d.tracker.Snapshot() {
		if ts.State != tableState {
			continue
		}
		d.messages.HandleDeploymentMessage(tabsync.DeploymentMessage{
			Scope:    ts.Name,
			Text:     fmt.Sprintf("Table '%s': %s.", ts.Name, ts.State),
			Kind:     tabsync.MessageKindTable,
			Severity: severityFor(tableState),
		})
	}
}

func severityFor(state tabsync.TableState) tabsync.Severity {
	if state == tabsync.TableStateErrored {
		return tabsync.SeverityError
	}
	if state == tabsync.TableStateCancelled {
		return tabsync.SeverityWarning
	}
	return tabsync.SeverityInformational
}

func (d *Deployer) reportFailure(text string) {
	d.messages.HandleDeploymentMessage(tabsync.DeploymentMessage{
		Text:     text,
		Kind:     tabsync.MessageKindGeneral,
		Severity: tabsync.SeverityError,
	})
}

func (d *Deployer) setPhase(phase tabsync.DeploymentPhase) {
	d.mu.Lock()
	d.phase = phase
	d.mu.Unlock()
	d.logger.Verbose("Deployment phase: %s", phase)
}
