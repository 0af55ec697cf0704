package tabsync

// MessageKind classifies what a validation or deployment message is about.
type MessageKind int

const (
	MessageKindGeneral MessageKind = iota
	MessageKindRelationship
	MessageKindTable
)

// String returns the human-readable name of the message kind.
func (k MessageKind) String() string {
	switch k {
	case MessageKindRelationship:
		return "Relationship"
	case MessageKindTable:
		return "Table"
	default:
		return "General"
	}
}

// Severity indicates how serious a validation or deployment message is.
type Severity int

const (
	SeverityInformational Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the human-readable name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	default:
		return "Informational"
	}
}

// ValidationMessage reports a finding from model validation, such as an
// ambiguous relationship path that was resolved by deactivation.
type ValidationMessage struct {
	// Scope identifies the object the message is about, e.g. a relationship
	// or table name. Empty for model-level messages.
	Scope    string
	Text     string
	Kind     MessageKind
	Severity Severity
}

// DeploymentMessage reports progress or outcome of a deployment phase.
type DeploymentMessage struct {
	Scope    string
	Text     string
	Kind     MessageKind
	Severity Severity
}

// MessageHandler receives validation and deployment messages.
// Calls are fire-and-forget: no return value is consumed and implementations
// must not block for long. Handlers may be called from a background goroutine
// during the processing phase.
type MessageHandler interface {
	HandleValidationMessage(msg ValidationMessage)
	HandleDeploymentMessage(msg DeploymentMessage)
}
