// Package api defines the request and response messages of the shoplist
// RPC services. Messages are encoded as JSON; see package apiconnect.
package api
