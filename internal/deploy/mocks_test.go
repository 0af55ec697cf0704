package deploy

import (
	"context"
	"sync"

	"github.com/semanticbi/tabsync/pkg/tabsync"
)

type nullLogger struct{}

func (nullLogger) Verbose(_ string, _ ...interface{}) {}
func (nullLogger) Info(_ string, _ ...interface{})    {}
func (nullLogger) Error(_ string, _ ...interface{})   {}

// messageRecorder collects messages; safe for the background processing
// goroutine to write while the test reads after Wait.
type messageRecorder struct {
	mu         sync.Mutex
	validation []tabsync.ValidationMessage
	deployment []tabsync.DeploymentMessage
}

func (r *messageRecorder) HandleValidationMessage(msg tabsync.ValidationMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validation = append(r.validation, msg)
}

func (r *messageRecorder) HandleDeploymentMessage(msg tabsync.DeploymentMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deployment = append(r.deployment, msg)
}

func (r *messageRecorder) deploymentMessages() []tabsync.DeploymentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tabsync.DeploymentMessage(nil), r.deployment...)
}

type fakeSession struct {
	id string

	executeErr   error
	scriptErrors []string
	subscribeErr error
	refreshErr   error
	beginErr     error
	commitErr    error

	// onRefresh runs inside Refresh before the error check, letting tests
	// emit progress events or trigger cancellation mid-processing.
	onRefresh func(req tabsync.RefreshRequest)

	events    chan tabsync.ProgressEvent
	unsubOnce sync.Once

	mu          sync.Mutex
	executed    []string
	refreshed   []tabsync.RefreshRequest
	cancelled   []string
	begun       bool
	committed   bool
	rolledBack  bool
	closed      bool
	unsubscribed bool
}

func newFakeSession(id string) *fakeSession {
	return &fakeSession{
		id:     id,
		events: make(chan tabsync.ProgressEvent, 64),
	}
}

func (s *fakeSession) SessionID() string { return s.id }

func (s *fakeSession) Execute(_ context.Context, script string) (*tabsync.ExecuteResult, error) {
	s.mu.Lock()
	s.executed = append(s.executed, script)
	s.mu.Unlock()
	if s.executeErr != nil {
		return nil, s.executeErr
	}
	return &tabsync.ExecuteResult{Errors: s.scriptErrors}, nil
}

func (s *fakeSession) SubscribeProgress(_ context.Context) (<-chan tabsync.ProgressEvent, func(), error) {
	if s.subscribeErr != nil {
		return nil, nil, s.subscribeErr
	}
	unsubscribe := func() {
		s.unsubOnce.Do(func() {
			s.mu.Lock()
			s.unsubscribed = true
			s.mu.Unlock()
			close(s.events)
		})
	}
	return s.events, unsubscribe, nil
}

// emit delivers a progress event as the store would, concurrently with the
// processing task's control flow.
func (s *fakeSession) emit(ev tabsync.ProgressEvent) {
	s.events <- ev
}

func (s *fakeSession) Refresh(_ context.Context, req tabsync.RefreshRequest) error {
	if s.onRefresh != nil {
		s.onRefresh(req)
	}
	s.mu.Lock()
	s.refreshed = append(s.refreshed, req)
	s.mu.Unlock()
	return s.refreshErr
}

func (s *fakeSession) CancelSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	s.cancelled = append(s.cancelled, sessionID)
	s.mu.Unlock()
	return nil
}

func (s *fakeSession) BeginTransaction(_ context.Context) error {
	s.mu.Lock()
	s.begun = true
	s.mu.Unlock()
	return s.beginErr
}

func (s *fakeSession) CommitTransaction(_ context.Context) error {
	s.mu.Lock()
	s.committed = true
	s.mu.Unlock()
	return s.commitErr
}

func (s *fakeSession) RollbackTransaction(_ context.Context) error {
	s.mu.Lock()
	s.rolledBack = true
	s.mu.Unlock()
	return nil
}

func (s *fakeSession) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *fakeSession) refreshRequests() []tabsync.RefreshRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]tabsync.RefreshRequest(nil), s.refreshed...)
}

func (s *fakeSession) cancelCommands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.cancelled...)
}

type fakeConnector struct {
	session    *fakeSession
	connectErr error
	findErr    error

	mu       sync.Mutex
	connects int
}

func (c *fakeConnector) Connect(_ context.Context, _ string) (tabsync.StoreSession, error) {
	c.mu.Lock()
	c.connects++
	c.mu.Unlock()
	if c.connectErr != nil {
		return nil, c.connectErr
	}
	return c.session, nil
}

func (c *fakeConnector) FindDatabase(_ context.Context, _ tabsync.StoreSession, _ string) error {
	return c.findErr
}

func (c *fakeConnector) connectCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connects
}

type fakeCredentials struct {
	creds tabsync.Credentials
	ok    bool
	err   error

	mu       sync.Mutex
	requests []string
}

func (f *fakeCredentials) RequestCredentials(_ context.Context, connectionName, _ string) (tabsync.Credentials, bool, error) {
	f.mu.Lock()
	f.requests = append(f.requests, connectionName)
	f.mu.Unlock()
	return f.creds, f.ok, f.err
}
