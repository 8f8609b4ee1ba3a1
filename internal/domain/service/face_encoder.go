// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate capabilities that don't naturally fit within a
// single entity.
package service

import (
	"context"

	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"
)

// FaceEncoder is the biometric extraction boundary. The model itself is an
// external collaborator; the pipeline consumes detection, encoding and
// comparison as a capability.
type FaceEncoder interface {
	// DetectFaces locates faces in the image. upsample controls detection
	// sensitivity: higher values recover smaller or dimmer faces at higher cost.
	DetectFaces(ctx context.Context, img *entity.NormalizedImage, upsample int) ([]entity.Region, error)

	// Encode computes the fixed-length embedding for the face in the region.
	Encode(ctx context.Context, img *entity.NormalizedImage, region entity.Region) (entity.Embedding, error)

	// Matches compares two embeddings under the encoder's fixed distance
	// threshold.
	Matches(known, candidate entity.Embedding) bool
}
