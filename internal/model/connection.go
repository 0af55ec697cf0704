package model

// Connection is a provider data source. The impersonation password is never
// part of a stored model; it is collected just-in-time during deployment
// and excluded from serialization.
type Connection struct {
	Name                 string `json:"name"`
	ConnectionString     string `json:"connectionString,omitempty"`
	Description          string `json:"description,omitempty"`
	ImpersonateAccount   bool   `json:"impersonateAccount,omitempty"`
	ImpersonationAccount string `json:"account,omitempty"`
	ImpersonationPassword string `json:"-"`
}

// Clone returns a copy of the connection without the transient password.
func (c *Connection) Clone() *Connection {
	cp := *c
	cp.ImpersonationPassword = ""
	return &cp
}
