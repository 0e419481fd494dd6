// Package session owns the application state machine: language choice,
// the current lookup and its background image enrichment, the notebook
// view, and the tutor chat. All state lives in one Controller guarded by a
// mutex; image results are tagged with a generation counter so a late
// image from an earlier search never lands on a newer result.
package session
