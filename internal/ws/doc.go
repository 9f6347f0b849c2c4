// Package ws provides the WebSocket endpoint for streaming transpile and
// diff runs. Warnings and semantic changes are forwarded to the client as
// individual messages before the final result.
package ws
