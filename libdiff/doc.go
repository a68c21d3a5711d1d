// Package libdiff computes line diffs between candidate documents and their
// match results.
//
// # Related Packages
//
//   - github.com/signadot/shape/encode - text given to Lines
package libdiff
