// Package matrixio reads and writes the plain-text matrix formats used by the
// factorization tools.
//
// Input: one row per line, fields separated by exactly two spaces, the first
// field a label that is discarded:
//
//	r1  1.0  2.0  3.0
//	r2  2.0  3.0  4.0
//
// Output: tab-separated values, one row per line, no header. SaveFactors
// writes D, U and V to three files sharing a base name; FilePersister plugs
// that into nmf.WithPersister.
package matrixio
