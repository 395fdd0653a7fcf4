package beacontypes

// Verifier is the opaque cryptographic signature verification capability
// consumed by the external state-transition operations (spec.md §1,
// "cryptographic signature verification consumed as a Verifier
// capability"). Verification itself is out of scope; this module only
// needs something to thread through the transition interface.
type Verifier interface {
	Verify(message, signature, publicKey []byte) error
}

// ExecutionEngine is the opaque execution-engine capability the
// transition operations use to validate merge-transition blocks (spec.md
// §1, "HTTP client plumbing" / engine verification out of scope here; the
// actual Engine API traffic lives in execution/client). Kept as a marker
// interface since the Block Processor never calls into it directly — it
// only threads the value through to the external operations.
type ExecutionEngine interface{}
