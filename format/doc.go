// Package format names the text formats read and written by shape tools.
//
// # Related Packages
//
//   - github.com/signadot/shape/encode - write values in a format
//   - github.com/signadot/shape/parse - read queries and documents
package format
