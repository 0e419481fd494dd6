// Package audio turns synthesized speech into sound. The AI backend returns
// headerless 16-bit little-endian mono PCM at 24kHz; this package decodes it
// into float samples, wraps it in a WAV container for the platform player,
// caches it on disk, and plays it without blocking the caller.
package audio
