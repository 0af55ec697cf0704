package logging

import "github.com/semanticbi/tabsync/pkg/tabsync"

// MessageLogger implements tabsync.MessageHandler by writing each message
// to a Logger, mapping message severity onto log levels. Hosts with a real
// message surface (a deployment grid, a warning list) supply their own
// handler instead.
type MessageLogger struct {
	logger tabsync.Logger
}

// NewMessageLogger creates a MessageLogger writing to the given logger.
func NewMessageLogger(logger tabsync.Logger) *MessageLogger {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &MessageLogger{logger: logger}
}

// HandleValidationMessage logs one validation message.
func (m *MessageLogger) HandleValidationMessage(msg tabsync.ValidationMessage) {
	m.log(msg.Severity, msg.Kind, msg.Scope, msg.Text)
}

// HandleDeploymentMessage logs one deployment message.
func (m *MessageLogger) HandleDeploymentMessage(msg tabsync.DeploymentMessage) {
	m.log(msg.Severity, msg.Kind, msg.Scope, msg.Text)
}

func (m *MessageLogger) log(severity tabsync.Severity, kind tabsync.MessageKind, scope, text string) {
	switch severity {
	case tabsync.SeverityError:
		m.logger.Error("[%s] %s: %s", kind, scope, text)
	case tabsync.SeverityWarning:
		m.logger.Info("[%s] %s: %s", kind, scope, text)
	default:
		m.logger.Verbose("[%s] %s: %s", kind, scope, text)
	}
}
