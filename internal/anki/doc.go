// Package anki exports notebook items as Anki flashcards, either as a CSV
// file for manual import or as a self-contained .apkg package with the
// concept images embedded as media.
package anki
