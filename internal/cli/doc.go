// Package cli implements the tas command tree.
//
// Every command talks to the service through pkg/tas (or pkg/jobs for
// jobs list) and prints its result as JSON or YAML on stdout. Prompts and
// logs go to stderr. Passwords are read from the terminal without echo and
// wiped once sent.
package cli
