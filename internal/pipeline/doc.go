// Package pipeline runs probe design over FASTA inputs.
//
// Each sequence is validated, reverse-complemented, placed and annotated
// independently, so sequences fan out over a bounded errgroup. Results are
// stored by input index and come back in input order regardless of
// scheduling.
package pipeline
