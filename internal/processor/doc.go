// Package processor wires lingopop together. It builds the AI gateway,
// the notebook storage, speech playback and the logger from flags and
// configuration, then runs the selected mode: the interactive shell, a
// one-shot lookup, a batch run, an Anki export, an archive or a model
// listing.
package processor
