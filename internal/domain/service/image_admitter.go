package service

import (
	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"
)

// AdmitOptions controls per-flow behavior of image admission.
type AdmitOptions struct {
	// Enhance applies the fixed brightness/contrast boost before biometric
	// extraction. Enabled for login, disabled for registration so the stored
	// appearance stays as originally captured.
	Enhance bool
}

// ImageAdmitter validates uploaded bytes as an acceptable image and produces
// a normalized pixel buffer for the face encoder. All rejections are typed
// domain errors; decoder internals are never leaked.
type ImageAdmitter interface {
	Admit(data []byte, contentType string, opts AdmitOptions) (*entity.NormalizedImage, error)
}
