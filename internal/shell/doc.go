// Package shell is the interactive terminal surface of lingopop. It reads
// commands line by line and drives the session controller, the notebook
// and the review surfaces.
package shell
