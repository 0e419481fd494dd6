// Package gateway talks to the generative AI backend. It builds prompts
// and request configs for term lookup, concept images, speech, stories and
// tutor chat, and validates what comes back. Two backends are provided,
// Gemini (default) and OpenAI, plus decorators that add a circuit breaker
// and a primary/secondary fallback. The gateway is stateless: chat history
// is resent on every call.
package gateway
