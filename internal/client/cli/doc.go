// Package cli provides the interactive command-line front end of the ICAN
// member portal.
//
// It wires configuration, token storage, the API client, the session manager
// and the portal service, restores the previous session and then runs a REPL.
//
// Key features:
//   - Register / Login / Logout, forgotten-password and reset flows
//   - Profile view and edit, wallet transactions
//   - Events and registration, CPD modules
//   - Elections and voting, member chat
//
// Form input is validated before it reaches the backend; phone numbers are
// normalized to E.164. The REPL is started via App.Run(ctx), which blocks
// until the user exits. See runREPL for the command set.
package cli
