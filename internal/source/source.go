// Package source enumerates the files that make up one animation clip or
// prop, in playback order.
package source

// Source is an ordered set of pre-baked frame files.
type Source interface {
	FrameCount() int
	FramePath(index int) string
	ReadFrame(index int) ([]byte, error)
	Close() error
}

// FrameExtensions lists the file types the loader accepts as pose frames.
var FrameExtensions = []string{".egg", ".bam", ".obj", ".glb", ".gltf", ".png"}
