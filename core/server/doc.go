// Package server holds the HTTP server configuration.
//
// It is a partial configuration consumed by core/config and by the start
// command, which uses it to size the Fiber application (port, body limit)
// and to protect the API with an API key.
package server
