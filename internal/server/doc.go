// Package server wires configuration, logging, metrics, the transpiler
// service, and the service registry into a gin router and manages the HTTP
// server lifecycle.
package server
