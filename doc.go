// Package protogen converts Avro schema definitions of a paginated
// search protocol into generated Go protocol classes.
//
// The compiler lives under compiler/load (schema parsing) and
// compiler/gen (analysis and code emission). This root package holds
// the surface shared with out-of-core collaborators: the providers
// that hand the compiler a directory of schema sources, the runner
// used to invoke an external IDL compiler, and the error type their
// failures are surfaced with.
package protogen
