// Package search answers natural-language queries against the per-modality
// vector collections. Queries are embedded as text; image and frame vectors
// live in the same space, so a text query ranks them directly.
package search
