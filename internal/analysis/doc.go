// Package analysis is the client for the remote analytics engine, the
// external collaborator that turns a finalized dataset into narrative and
// predictive output.
//
// The core's contribution at this boundary is deliberately thin: it
// serializes the current dataset into the engine's request contract,
// performs one HTTP call, and decodes the expected response shape. It
// never retries; retry policy belongs to the caller. A non-success
// response surfaces as a *RequestError carrying the response body text.
package analysis
