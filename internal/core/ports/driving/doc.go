// Package driving provides interfaces for the application's entry
// points (primary/inbound ports): report ingestion, question
// answering, and history listing.
package driving
