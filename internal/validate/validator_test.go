package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semanticbi/tabsync/pkg/tabsync"

	"github.com/semanticbi/tabsync/internal/model"
)

type nullLogger struct{}

func (nullLogger) Verbose(_ string, _ ...interface{}) {}
func (nullLogger) Info(_ string, _ ...interface{})    {}
func (nullLogger) Error(_ string, _ ...interface{})   {}

type messageRecorder struct {
	validation []tabsync.ValidationMessage
	deployment []tabsync.DeploymentMessage
}

func (r *messageRecorder) HandleValidationMessage(msg tabsync.ValidationMessage) {
	r.validation = append(r.validation, msg)
}

func (r *messageRecorder) HandleDeploymentMessage(msg tabsync.DeploymentMessage) {
	r.deployment = append(r.deployment, msg)
}

func (r *messageRecorder) warnings() []tabsync.ValidationMessage {
	var out []tabsync.ValidationMessage
	for _, m := range r.validation {
		if m.Severity == tabsync.SeverityWarning {
			out = append(out, m)
		}
	}
	return out
}

func graphTable(name string) *model.Table {
	return &model.Table{
		Name:    name,
		Columns: []*model.Column{{Name: "Key", DataType: "int64"}},
	}
}

func addRel(m *model.Model, name, from, to string, copied bool) *model.Relationship {
	r := &model.Relationship{
		Name:             name,
		FromTable:        from,
		FromColumn:       "Key",
		ToTable:          to,
		ToColumn:         "Key",
		IsActive:         true,
		CopiedFromSource: copied,
	}
	m.AddRelationship(r)
	return m.Relationships[len(m.Relationships)-1]
}

// activePathCount counts distinct active filtering paths from root to
// target by exhaustive traversal.
func activePathCount(m *model.Model, root, target string) int {
	var walk func(from string, visited map[string]bool) int
	walk = func(from string, visited map[string]bool) int {
		count := 0
		for _, r := range m.FilteringRelationships(from) {
			end := r.EndTable(from)
			if visited[end] {
				continue
			}
			if end == target {
				count++
				continue
			}
			visited[end] = true
			count += walk(end, visited)
			delete(visited, end)
		}
		return count
	}
	return walk(root, map[string]bool{root: true})
}

func TestValidate_DirectAndTransitivePathAmbiguity(t *testing.T) {
	m := model.New("m")
	m.AddTable(graphTable("A"))
	m.AddTable(graphTable("B"))
	m.AddTable(graphTable("C"))

	addRel(m, "a-b", "A", "B", false)
	addRel(m, "b-c", "B", "C", false)
	direct := addRel(m, "a-c", "A", "C", true) // freshly copied from source

	rec := &messageRecorder{}
	New(m, rec, nullLogger{}).Validate()

	assert.False(t, direct.IsActive, "the copied-from-source relationship loses the ambiguity")
	assert.Equal(t, 1, activePathCount(m, "A", "C"), "exactly one active path from A to C survives")

	warnings := rec.warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, tabsync.MessageKindRelationship, warnings[0].Kind)
	assert.Contains(t, warnings[0].Text, "'A'")
	assert.Contains(t, warnings[0].Text, "a-c")
	assert.Contains(t, warnings[0].Text, "b-c")
}

func TestValidate_PreExistingLinkLosesWhenNewLinkIsNotCopied(t *testing.T) {
	m := model.New("m")
	m.AddTable(graphTable("A"))
	m.AddTable(graphTable("B"))
	m.AddTable(graphTable("C"))

	// Both relationships pre-existed on the target. The link discovered
	// first (via B) is deactivated and traversal continues with the new one.
	transitive := addRel(m, "b-c", "B", "C", false)
	addRel(m, "a-b", "A", "B", false)
	direct := addRel(m, "a-c", "A", "C", false)

	rec := &messageRecorder{}
	New(m, rec, nullLogger{}).Validate()

	assert.Equal(t, 1, activePathCount(m, "A", "C"))
	assert.True(t, direct.IsActive != transitive.IsActive, "exactly one of the two conflicting relationships survives")
	require.Len(t, rec.warnings(), 1)
}

func TestValidate_NoAmbiguityNoMessages(t *testing.T) {
	m := model.New("m")
	m.AddTable(graphTable("A"))
	m.AddTable(graphTable("B"))
	m.AddTable(graphTable("C"))
	addRel(m, "a-b", "A", "B", false)
	addRel(m, "b-c", "B", "C", true)

	rec := &messageRecorder{}
	New(m, rec, nullLogger{}).Validate()

	assert.Empty(t, rec.warnings())
	for _, r := range m.Relationships {
		assert.True(t, r.IsActive)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	m := model.New("m")
	m.AddTable(graphTable("A"))
	m.AddTable(graphTable("B"))
	m.AddTable(graphTable("C"))
	addRel(m, "a-b", "A", "B", false)
	addRel(m, "b-c", "B", "C", false)
	addRel(m, "a-c", "A", "C", true)

	first := &messageRecorder{}
	New(m, first, nullLogger{}).Validate()
	require.Len(t, first.warnings(), 1)

	activeBefore := 0
	for _, r := range m.Relationships {
		if r.IsActive {
			activeBefore++
		}
	}

	second := &messageRecorder{}
	New(m, second, nullLogger{}).Validate()

	assert.Empty(t, second.warnings(), "revalidating an already-validated graph emits no new warnings")
	activeAfter := 0
	for _, r := range m.Relationships {
		if r.IsActive {
			activeAfter++
		}
	}
	assert.Equal(t, activeBefore, activeAfter, "no additional relationships are deactivated")
}

func TestValidate_BothDirectionFilteringTerminates(t *testing.T) {
	m := model.New("m")
	m.AddTable(graphTable("A"))
	m.AddTable(graphTable("B"))

	r := addRel(m, "a-b", "A", "B", false)
	r.CrossFilterBoth = true

	rec := &messageRecorder{}
	// The path revisit check must stop B from rediscovering A.
	New(m, rec, nullLogger{}).Validate()

	assert.True(t, r.IsActive)
	assert.Empty(t, rec.warnings())
}

func TestValidate_ReportsAutoRenamedRelationships(t *testing.T) {
	m := model.New("m")
	m.AddTable(graphTable("A"))
	m.AddTable(graphTable("B"))
	m.AddTable(graphTable("C"))

	addRel(m, "shared-name", "A", "B", false)
	// Same identity, different endpoints: gets auto-renamed on add.
	addRel(m, "shared-name", "B", "C", true)

	rec := &messageRecorder{}
	New(m, rec, nullLogger{}).Validate()

	var renames []tabsync.ValidationMessage
	for _, msg := range rec.validation {
		if msg.Severity == tabsync.SeverityInformational && strings.Contains(msg.Text, "renamed") {
			renames = append(renames, msg)
		}
	}
	require.Len(t, renames, 1)
	assert.Contains(t, renames[0].Text, "shared-name")
}
