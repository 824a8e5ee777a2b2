// Package media persists uploaded files and inline text into a per-session
// directory layout and samples still frames from videos at a fixed cadence.
package media
