// Package model defines the records managed by the secrets API.
//
// # Records
//
//   - Secret: a named credential with an optional value and a Source
//   - Project: a named, ordered list of secret identifiers
//
// Identifiers are ULIDs produced by NewIdentifier. They are assigned once,
// when a record is created, and never change afterwards.
//
// Source is an enum generated with enumer; it marshals to and from the
// strings "AWS_SAM" and "OTHER" in JSON, YAML and text encodings.
package model
