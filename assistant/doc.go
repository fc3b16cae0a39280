// Package assistant maps free-form user requests onto the library's fixed
// set of operations.
//
// Classification is deterministic keyword routing over an enumerable intent
// set, not model-driven: the same input always produces the same intent, so
// the chat surface stays testable and never blocks on a remote call just to
// decide what the user asked for.
package assistant
