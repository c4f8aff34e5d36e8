// Package media downloads product images and muxes them with narration
// audio into vertical videos by invoking ffmpeg.
//
// Prefer this package over ad-hoc exec.Command usage when producing video
// artifacts: it owns the staging directory discipline (random file names,
// best-effort cleanup) that keeps concurrent requests from colliding.
package media
