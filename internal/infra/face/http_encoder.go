// Package face implements the biometric extraction boundary as an HTTP
// client for the face model sidecar.
package face

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"

	"github.com/JustKota/FrvttaeProyect/config"
	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"
	"github.com/JustKota/FrvttaeProyect/internal/domain/service"

	"github.com/pkg/errors"
)

// httpEncoder implements FaceEncoder by calling the extraction sidecar over
// HTTP. Detection and encoding run in the sidecar; the match decision is a
// plain distance comparison done locally.
type httpEncoder struct {
	endpoint   string
	tolerance  float64
	httpClient *http.Client
	logger     *slog.Logger
}

// detectRequest is the wire format for a detection call.
type detectRequest struct {
	Image    imagePayload `json:"image"`
	Upsample int          `json:"upsample"`
}

type detectResponse struct {
	Regions []entity.Region `json:"regions"`
}

// encodeRequest is the wire format for an embedding call.
type encodeRequest struct {
	Image  imagePayload  `json:"image"`
	Region entity.Region `json:"region"`
}

type encodeResponse struct {
	Embedding []float64 `json:"embedding"`
}

// imagePayload carries the normalized RGB buffer as base64.
type imagePayload struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Pixels string `json:"pixels"`
}

// NewHTTPEncoder is the constructor for the sidecar-backed face encoder.
func NewHTTPEncoder(cfg *config.Config, logger *slog.Logger) service.FaceEncoder {
	return &httpEncoder{
		endpoint:  cfg.FaceEncoder.Endpoint,
		tolerance: cfg.FaceEncoder.Tolerance,
		httpClient: &http.Client{
			Timeout: cfg.FaceEncoder.Timeout,
		},
		logger: logger,
	}
}

// DetectFaces asks the sidecar to locate faces in the image.
func (e *httpEncoder) DetectFaces(ctx context.Context, img *entity.NormalizedImage, upsample int) ([]entity.Region, error) {
	req := detectRequest{
		Image:    packImage(img),
		Upsample: upsample,
	}

	var resp detectResponse
	if err := e.post(ctx, "/detect", req, &resp); err != nil {
		return nil, err
	}

	e.logger.Debug("Face detection completed",
		slog.Int("upsample", upsample),
		slog.Int("faces", len(resp.Regions)))

	return resp.Regions, nil
}

// Encode asks the sidecar to compute the embedding for one detected face.
func (e *httpEncoder) Encode(ctx context.Context, img *entity.NormalizedImage, region entity.Region) (entity.Embedding, error) {
	req := encodeRequest{
		Image:  packImage(img),
		Region: region,
	}

	var resp encodeResponse
	if err := e.post(ctx, "/encode", req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Embedding) != entity.EmbeddingLen {
		return nil, errors.Errorf("encoder returned embedding of length %d, want %d",
			len(resp.Embedding), entity.EmbeddingLen)
	}

	return entity.Embedding(resp.Embedding), nil
}

// Matches compares two embeddings by Euclidean distance against the
// configured tolerance. Mismatched lengths never match.
func (e *httpEncoder) Matches(known, candidate entity.Embedding) bool {
	if len(known) == 0 || len(known) != len(candidate) {
		return false
	}

	var sum float64
	for i := range known {
		d := known[i] - candidate[i]
		sum += d * d
	}

	return math.Sqrt(sum) <= e.tolerance
}

func (e *httpEncoder) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "face extraction call failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return errors.Errorf("face extraction returned status %d: %s", resp.StatusCode, string(snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode face extraction response")
	}

	return nil
}

func packImage(img *entity.NormalizedImage) imagePayload {
	return imagePayload{
		Width:  img.Width,
		Height: img.Height,
		Pixels: base64.StdEncoding.EncodeToString(img.Pixels),
	}
}
