// Package commands defines the candidatevault CLI and wires dependencies for
// subcommands.
//
// # Commands
//
//   - save         Persist a candidate record handed over by the intake bot
//   - load         Decrypt and print a stored record
//   - export       Produce a GDPR data-portability bundle
//   - delete       Erase a session and its export artifacts (right to erasure)
//   - find         Correlate a session by email hash, without decryption
//   - report       Print the privacy compliance report
//   - maintenance  Run the periodic retention sweep and persist its report
//
// # Implementation
//
// The root command loads configuration (defaults, environment, optional JSON
// file, flags), obtains the encryption key, and builds the vault service over
// the configured backend before any subcommand runs.
package commands
