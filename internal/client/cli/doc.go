// Package cli provides the interactive DocuSage command-line client.
//
// Commands can be given once on the command line ("docusage-cli upload
// report.pdf") or typed into the REPL started when no command is given.
// The access token from register/login is kept in Config.TokenFile so later
// runs stay signed in until logout.
package cli
