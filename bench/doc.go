// Package bench compares the token cost of two serializations of the same
// payloads. A Runner tokenizes every sample's A and B text with an injected
// Tokenizer, derives per-sample and aggregate savings, and the render
// functions turn the Result into a fixed-width report and paste-ready
// summary lines.
package bench
