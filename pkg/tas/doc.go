// Package tas is a client for the TAS account, project and allocation
// service.
//
// # Overview
//
// Client maps each remote capability onto one method: authentication, user
// lookup and maintenance, the password reset and change flows, institution,
// department and country reference data, projects, allocations and project
// membership. Requests are JSON over HTTP with Basic auth; the service
// answers with an envelope
//
//	{"status": "success" | "error", "result": ..., "message": ...}
//
// which ResolveEnvelope turns into either the result or an error. Countries
// and DirectoryInstitutions use the older SOAP directory service that lives
// next to the REST root.
//
// Results come back as Record (untyped JSON objects) or, for the reference
// data, as small structs. Package models hydrates Records into typed User,
// Project and Allocation values.
//
// # Errors
//
// Every failure matches exactly one of ErrInvalidArgument, ErrTransport,
// ErrProtocol or ErrRemote with errors.Is. ErrInvalidArgument is returned
// before anything is sent. *RemoteError carries the server message verbatim.
// Nothing is retried.
//
// Endpoints whose result is a yes/no decision (Authenticate, VerifyUser,
// ConfirmPasswordReset, ChangePassword, project membership) return false
// with a nil error when the service reports success with a false result.
//
// # Concurrency
//
// A Client is immutable after NewClient and safe for concurrent use. All
// methods block until the exchange completes or ctx is done; the client adds
// no timeout of its own.
package tas
