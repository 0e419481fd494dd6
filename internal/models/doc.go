// Package models lists and categorizes the models available to the
// configured AI backend so users can pick text, image and speech models.
package models
