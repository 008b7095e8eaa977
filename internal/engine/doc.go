// Package engine implements the state transition engine: one pure
// operation per business event, each taking the current document and a
// payload and returning the next document.
//
// Every operation is total. Invalid input produces a typed failure
// (*TransitionError or *model.ValidationError) and the input document is
// returned to the caller unchanged; a successful operation returns a
// complete next document ready for a single atomic store write. The
// engine itself never touches the store.
package engine
