// Package openai wraps the chat completion and speech synthesis endpoints
// used for ad copy, viral product ideas, and narration audio.
package openai
