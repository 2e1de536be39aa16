// Package session holds the client-side state machines that tie a signed-in
// user, an uploaded document, its summary and its chat transcript together.
//
// The IdentityGate resolves who is signed in. DocumentRegistry lists the
// user's documents. UploadOrchestrator turns a selected file into a summary
// and a SessionDescriptor. ChatSession holds the transcript for one
// descriptor. Each component is safe for concurrent use; late responses for
// superseded requests are dropped using per-component tokens.
package session
