// Package tts wraps the Google Cloud Text-to-Speech REST API. Synthesis uses
// fixed audio parameters (MP3, 1.0x speaking rate, neutral pitch by default)
// with a configurable voice, and returns the decoded binary audio.
package tts
