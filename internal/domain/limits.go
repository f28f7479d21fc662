package domain

import "time"

// Hard limits of the conversion pipeline, fixed across deployments.
const (
	// MaxFileBytes is the largest document accepted from any source.
	MaxFileBytes = 50 << 20

	// MaxPages is the largest page count a document may have.
	MaxPages = 100

	// FetchTimeout bounds a single download from a URL or object store.
	FetchTimeout = 30 * time.Second
)
