// Package validate walks the active filtering relationships of a model
// graph and guarantees that no two distinct paths connect the same ordered
// pair of tables. Conflicts are self-healed by deactivating one of the two
// relationships, preferring to keep pre-existing target relationships over
// ones freshly copied from the source.
package validate

import (
	"fmt"
	"strings"

	"github.com/semanticbi/tabsync/pkg/tabsync"

	"github.com/semanticbi/tabsync/internal/model"
)

// link is one traversal step: a filtering relationship followed from
// beginTable to endTable, with the quoted-name path walked so far. The path
// string doubles as the revisit check that bounds the traversal.
type link struct {
	beginTable string
	endTable   string
	rel        *model.Relationship
	path       string
}

// chain is the ordered set of links visited from one root table, keyed by
// end-table name. It is owned by a single root traversal and never shared
// across roots.
type chain struct {
	links []*link
}

func (c *chain) find(endTable string) *link {
	for _, l := range c.links {
		if l.endTable == endTable {
			return l
		}
	}
	return nil
}

func (c *chain) add(l *link) {
	c.links = append(c.links, l)
}

func (c *chain) remove(l *link) {
	for i, e := range c.links {
		if e == l {
			c.links = append(c.links[:i], c.links[i+1:]...)
			return
		}
	}
}

// root walks the chain back to its first link and returns that link's
// begin table.
func (c *chain) root() string {
	if len(c.links) == 0 {
		return ""
	}
	return c.links[0].beginTable
}

// Validator detects and resolves ambiguous filter-propagation paths.
//
// Thread-Safety: NOT safe for concurrent use; validation is a purely
// sequential graph algorithm and must finish before deployment begins.
type Validator struct {
	m        *model.Model
	messages tabsync.MessageHandler
	logger   tabsync.Logger
}

// New creates a Validator for the given graph.
//
// Panics on nil dependencies; those are programmer errors that should fail
// at setup time.
func New(m *model.Model, messages tabsync.MessageHandler, logger tabsync.Logger) *Validator {
	if m == nil {
		panic("model cannot be nil")
	}
	if messages == nil {
		panic("message handler cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Validator{m: m, messages: messages, logger: logger}
}

// Validate runs the ambiguity check once per table as root, deactivating
// conflicting relationships and emitting a warning for each resolution. It
// also reports every relationship whose identity was auto-renamed during
// synchronization. Running Validate on an already-validated graph is a
// no-op.
func (v *Validator) Validate() {
	for _, t := range v.m.Tables {
		v.validateRoot(t.Name)
	}
	v.reportRenames()
}

func (v *Validator) validateRoot(root string) {
	ch := &chain{}
	for _, r := range v.m.FilteringRelationships(root) {
		if !r.IsActive {
			continue
		}
		end := r.EndTable(root)
		l := &link{
			beginTable: root,
			endTable:   end,
			rel:        r,
			path:       quote(root) + "->" + quote(end),
		}
		v.addLink(ch, l)
		if r.IsActive {
			v.extend(ch, l)
		}
	}
}

// extend continues the traversal from the end table of the given link.
// Tables already named in the link's path are skipped; that strictly
// shrinks the unvisited set per branch and terminates the recursion even
// when bidirectional cross-filtering would rediscover a table.
func (v *Validator) extend(ch *chain, from *link) {
	begin := from.endTable
	for _, r := range v.m.FilteringRelationships(begin) {
		if !r.IsActive {
			continue
		}
		end := r.EndTable(begin)
		if strings.Contains(from.path, quote(end)) {
			continue
		}
		l := &link{
			beginTable: begin,
			endTable:   end,
			rel:        r,
			path:       from.path + "->" + quote(end),
		}
		v.addLink(ch, l)
		if r.IsActive {
			v.extend(ch, l)
		}
	}
}

// addLink records the link in the chain, resolving an ambiguity first when
// the chain already reaches the same end table. Resolution is by
// provenance: a relationship freshly copied from the source loses to the
// pre-existing target link; otherwise the pre-existing link's relationship
// is deactivated and removed from the chain so traversal continues without
// it.
func (v *Validator) addLink(ch *chain, l *link) {
	existing := ch.find(l.endTable)
	if existing == nil {
		ch.add(l)
		return
	}

	root := ch.root()
	if l.rel.CopiedFromSource {
		l.rel.IsActive = false
		v.warnAmbiguity(root, l, existing)
		return
	}

	existing.rel.IsActive = false
	v.warnAmbiguity(root, existing, l)
	ch.remove(existing)
	ch.add(l)
}

// warnAmbiguity reports one resolved ambiguity. loser is the deactivated
// link, winner the surviving one.
func (v *Validator) warnAmbiguity(root string, loser, winner *link) {
	v.logger.Verbose("Deactivated relationship '%s' (ambiguous with '%s')", loser.rel.Name, winner.rel.Name)
	v.messages.HandleValidationMessage(tabsync.ValidationMessage{
		Scope: loser.rel.Name,
		Text: fmt.Sprintf(
			"Ambiguous filter paths from table %s to table %s: relationship '%s' (path %s) conflicts with relationship '%s' (path %s). Relationship '%s' was deactivated.",
			quote(root), quote(loser.endTable),
			loser.rel.Name, loser.path,
			winner.rel.Name, winner.path,
			loser.rel.Name,
		),
		Kind:     tabsync.MessageKindRelationship,
		Severity: tabsync.SeverityWarning,
	})
}

// reportRenames emits one informational message per relationship whose
// identity name was rewritten to avoid a naming conflict.
func (v *Validator) reportRenames() {
	for _, r := range v.m.Relationships {
		if !r.Renamed() {
			continue
		}
		v.messages.HandleValidationMessage(tabsync.ValidationMessage{
			Scope: r.Name,
			Text: fmt.Sprintf(
				"Relationship '%s' between %s and %s was renamed to '%s' to avoid a naming conflict.",
				r.OriginalName, quote(r.FromTable), quote(r.ToTable), r.Name,
			),
			Kind:     tabsync.MessageKindRelationship,
			Severity: tabsync.SeverityInformational,
		})
	}
}

func quote(tableName string) string {
	return "'" + tableName + "'"
}
