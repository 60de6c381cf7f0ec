// Package design contains the probe placement core: the position × length
// candidate matrix, the per-row best-length resolver and the leftmost-greedy
// placement selector. It never imports app, writers, cli, or pipeline;
// keep it domain-only.
//
// Positions are 0-based here. 1-based and original-orientation coordinates
// are produced by annotate at the report boundary.
package design
