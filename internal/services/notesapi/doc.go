// Package notesapi implements the HTTP client for the customer-notes backend.
//
// The backend does the heavy lifting for every workflow stage: SQL-backed note
// retrieval, HTML-to-text cleanup, LLM relevance filtering, and LLM question
// answering. This client only moves JSON; it adds no retries and no caching.
// Status 422 responses decode into ValidationError; any other non-2xx status
// is surfaced as a generic failure carrying the body text.
package notesapi
