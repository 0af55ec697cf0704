package sync

import "github.com/semanticbi/tabsync/internal/model"

// DeleteConnection removes the named connection from the target graph.
func (s *Synchronizer) DeleteConnection(name string) {
	if s.target.Connection(name) == nil {
		return
	}
	s.logger.Verbose("Deleting connection '%s'", name)
	s.target.RemoveConnection(name)
	s.structuralChanges = true
}

// CreateConnection copies the source connection into the target graph.
func (s *Synchronizer) CreateConnection(src *model.Connection) {
	s.logger.Verbose("Creating connection '%s'", src.Name)
	s.target.Connections = append(s.target.Connections, src.Clone())
	s.structuralChanges = true
}

// UpdateConnection overwrites the target connection's fields from the
// source. Connections have no structural children, so an in-place update is
// safe; unchanged connections are left alone.
func (s *Synchronizer) UpdateConnection(src, tgt *model.Connection) {
	if src.ConnectionString == tgt.ConnectionString &&
		src.Description == tgt.Description &&
		src.ImpersonateAccount == tgt.ImpersonateAccount &&
		src.ImpersonationAccount == tgt.ImpersonationAccount {
		return
	}
	s.logger.Verbose("Updating connection '%s'", src.Name)
	tgt.ConnectionString = src.ConnectionString
	tgt.Description = src.Description
	tgt.ImpersonateAccount = src.ImpersonateAccount
	tgt.ImpersonationAccount = src.ImpersonationAccount
	s.structuralChanges = true
}
