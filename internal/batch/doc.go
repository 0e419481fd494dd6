// Package batch reads a list of terms from a file and looks each one up,
// saving the results into the notebook.
package batch
