// Package review provides the notebook study surfaces: a cyclic flashcard
// deck and story generation from saved words.
package review
