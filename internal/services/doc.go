// Package services defines shared utilities consumed by the workflow
// controller and the backend client.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper so callers can tell
//     batch-fatal failures (fetch, transform) from validation problems and
//     concurrent-operation rejections.
//   - Context helpers that stamp session, stage, and correlation identifiers
//     for logging.
//
// Use these helpers when wiring new workflow logic so error handling and
// observability stay uniform across operations.
package services
