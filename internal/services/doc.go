// Package services contains the business logic layer sitting between the
// HTTP transport and the domain packages.
//
// DatasetService owns the dataset lifecycle: ingestion, quality assessment,
// cleaning, preview, analysis dispatch and export. HealthService reports
// process health and readiness of the external analytics engine.
//
// Services receive their dependencies through constructors and log with
// *slog.Logger. They return domain errors that the transport layer maps to
// RFC 7807 problem details.
package services
