// Package entity contains the core business objects of the project.
package entity

// EmbeddingLen is the fixed length of a face embedding vector.
const EmbeddingLen = 128

// Embedding is a fixed-length numeric vector summarizing a detected face's
// features, used for similarity comparison.
type Embedding []float64

// Region is a face bounding box in pixel coordinates, in the order the
// extraction service reports it.
type Region struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// NormalizedImage is the output of image admission: a decoded, 3-channel
// RGB pixel buffer ready for biometric extraction.
type NormalizedImage struct {
	Width  int
	Height int
	// Pixels is packed row-major RGB, 3 bytes per pixel.
	Pixels []byte
}
