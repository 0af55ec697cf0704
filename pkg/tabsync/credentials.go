package tabsync

import "context"

// Credentials holds an impersonation account and password collected
// just-in-time for a provider connection. Never persisted.
type Credentials struct {
	Account  string
	Password string
}

// CredentialProvider collects impersonation credentials for connections that
// require them. Implementations typically prompt a user; tests supply canned
// values.
type CredentialProvider interface {
	// RequestCredentials asks for credentials for the named connection.
	// currentAccount is the account already configured on the connection, if
	// any, so implementations can pre-fill it.
	//
	// Returns ok=false if the user dismissed the request; this cancels the
	// whole deployment and is not an error.
	RequestCredentials(ctx context.Context, connectionName, currentAccount string) (creds Credentials, ok bool, err error)
}
