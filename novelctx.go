// Package novelctx ingests serialized web fiction into a local context
// database. It discovers every installment of a work from its landing page,
// extracts bibliographic metadata and cleaned plain-text episode bodies, and
// stores them for later analysis with a text generation model.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package novelctx
