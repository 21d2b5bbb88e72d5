// Package docdex indexes operating-system reference documentation
// (manual pages and desktop help pages) for semantic retrieval. It
// resolves raw documentation through three tiers of source (local
// filesystem, disk cache, network), converts markup to plain text,
// embeds document chunks as vectors, and answers top-k similarity
// queries over the result.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g. sqlite/,
// goquery/, openai/).
package docdex
