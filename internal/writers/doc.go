// Package writers turns annotated probe records into report files.
//
// Formats are looked up in a registry (format → handler) filled from
// init blocks; output owns the per-format encoding and pkg/api the JSON
// wire schema.
package writers
