// Package parse reads queries and candidate documents from YAML or JSON text.
//
// Query text is YAML with local tags for markers:
//
//	name: !var who
//	age: !expr "value >= 18"
//	nickname: !optional anonymous
//	friends:
//	- !skip 1
//	- !any
//
// The registered tags are listed by Symbols. Tags may not appear on keys.
// Standard tags such as !!str are honored and otherwise ignored.
//
// # Related Packages
//
//   - github.com/signadot/shape - compile and match queries
//   - github.com/signadot/shape/encode - write match results
package parse
