// Package app wires the datalens service together: configuration,
// logging, metrics, the analytics engine client, the service layer and
// the chi router with its middleware chain. The Application type owns
// the HTTP server lifecycle including graceful shutdown.
package app
