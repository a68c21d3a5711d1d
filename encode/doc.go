// Package encode writes match results as YAML or JSON.
//
// # Usage
//
//	// Encode to YAML
//	err := encode.Encode(res, os.Stdout)
//
//	// Encode to colored JSON
//	err := encode.Encode(res, os.Stdout,
//	    encode.EncodeFormat(format.JSONFormat),
//	    encode.EncodeColors(encode.NewColors()))
//
// # Related Packages
//
//   - github.com/signadot/shape/format - output formats
//   - github.com/signadot/shape/parse - read queries and documents
package encode
