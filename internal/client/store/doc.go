// Package store holds the client's application state: an auth slice and a
// blog slice, each changed only by pure reducers applied to actions.
//
// Async work goes through Run, which dispatches a pending action, calls the
// operation and then dispatches exactly one fulfilled or rejected action.
// Errors and panics never escape Run; callers get an Outcome instead.
//
// Error and Success strings are sticky: they stay until a clear action or
// until the next operation of the same slice overwrites them.
package store
