// Package main provides the entry point for the RiskWatch monitoring
// dashboard. It runs a Fiber web server that authenticates users against
// a directory service, issues bearer tokens, and serves transaction and
// device statistics from stored procedures to its SPA frontend.
package main
