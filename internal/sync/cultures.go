package sync

import (
	"github.com/semanticbi/tabsync/pkg/tabsync"

	"github.com/semanticbi/tabsync/internal/model"
)

// DeleteCulture removes the named culture and records that its deletion was
// requested.
func (s *Synchronizer) DeleteCulture(name string) {
	s.logger.Verbose("Deleting culture '%s'", name)
	s.target.RemoveCulture(name)
	s.deletedCultures[name] = true
}

// CreateCulture copies the culture into the target graph. Translations
// whose referenced object no longer exists are dropped silently.
func (s *Synchronizer) CreateCulture(src *model.Culture) {
	s.logger.Verbose("Creating culture '%s'", src.Name)
	c := &model.Culture{Name: src.Name}
	s.mergeTranslations(c, src)
	s.target.Cultures = append(s.target.Cultures, c)
}

// UpdateCulture reconciles one culture according to the configured merge
// policy. backup is the pre-synchronization target definition; src is the
// source-side definition.
//
// Replace recreates the culture verbatim from the source. Merge recreates
// it from the backup, then resolves each source translation against the
// target graph: resolved translations overwrite an existing
// same-(object,property) translation in place or are appended; unresolvable
// ones are dropped.
func (s *Synchronizer) UpdateCulture(src, backup *model.Culture) {
	s.target.RemoveCulture(backup.Name)

	if s.opts.CultureMergePolicy == tabsync.MergePolicyReplace {
		s.CreateCulture(src)
		return
	}

	s.logger.Verbose("Merging culture '%s'", backup.Name)
	c := &model.Culture{Name: backup.Name}
	s.mergeTranslations(c, backup)
	s.mergeTranslations(c, src)
	s.target.Cultures = append(s.target.Cultures, c)
}

// mergeTranslations upserts every translation of from whose referent
// resolves in the target graph. Resolution is by the per-kind name lookup:
// Model is the singleton; Table/Perspective/Role match by name; Column,
// Measure and Hierarchy by (owning table, own name); Level by (owning
// table, hierarchy, own name).
func (s *Synchronizer) mergeTranslations(dst, from *model.Culture) {
	for _, t := range from.Translations {
		if !s.target.ResolveTranslation(t) {
			continue
		}
		dst.Upsert(t)
	}
}
