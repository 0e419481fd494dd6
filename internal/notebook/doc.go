// Package notebook holds the user's saved lookup results: ordered newest
// first, unique by headword, and fully rewritten to the key-value store on
// every change.
package notebook
