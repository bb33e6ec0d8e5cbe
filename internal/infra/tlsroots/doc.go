// Package tlsroots builds the set of trusted root certificates the CLI uses
// when talking to a server over HTTPS.
//
// The system pool is the starting point; a PEM bundle (for a private CA or
// a self-signed server certificate) can be added on top.
package tlsroots
