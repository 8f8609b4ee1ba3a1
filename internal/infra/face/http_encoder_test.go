package face

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JustKota/FrvttaeProyect/config"
	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEncoder(endpoint string, tolerance float64) *httpEncoder {
	cfg := &config.Config{
		FaceEncoder: &config.FaceEncoderConfig{
			Endpoint:  endpoint,
			Timeout:   5 * time.Second,
			Tolerance: tolerance,
		},
	}

	return NewHTTPEncoder(cfg, slog.New(slog.DiscardHandler)).(*httpEncoder)
}

func testImage() *entity.NormalizedImage {
	return &entity.NormalizedImage{Width: 2, Height: 1, Pixels: []byte{1, 2, 3, 4, 5, 6}}
}

func TestHTTPEncoder_DetectFaces(t *testing.T) {
	var gotUpsample int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/detect", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req detectRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotUpsample = req.Upsample
		assert.Equal(t, 2, req.Image.Width)
		assert.NotEmpty(t, req.Image.Pixels)

		json.NewEncoder(w).Encode(detectResponse{
			Regions: []entity.Region{{Top: 10, Right: 90, Bottom: 80, Left: 20}},
		})
	}))
	defer srv.Close()

	enc := newTestEncoder(srv.URL, 0.6)

	regions, err := enc.DetectFaces(context.Background(), testImage(), 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, gotUpsample)
	require.Len(t, regions, 1)
	assert.Equal(t, entity.Region{Top: 10, Right: 90, Bottom: 80, Left: 20}, regions[0])
}

func TestHTTPEncoder_Encode(t *testing.T) {
	embedding := make([]float64, entity.EmbeddingLen)
	embedding[0] = 0.5

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/encode", r.URL.Path)

		var req encodeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, entity.Region{Top: 1, Right: 2, Bottom: 3, Left: 4}, req.Region)

		json.NewEncoder(w).Encode(encodeResponse{Embedding: embedding})
	}))
	defer srv.Close()

	enc := newTestEncoder(srv.URL, 0.6)

	got, err := enc.Encode(context.Background(), testImage(), entity.Region{Top: 1, Right: 2, Bottom: 3, Left: 4})
	assert.NoError(t, err)
	require.Len(t, got, entity.EmbeddingLen)
	assert.InDelta(t, 0.5, got[0], 1e-9)
}

func TestHTTPEncoder_EncodeRejectsWrongLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(encodeResponse{Embedding: []float64{1, 2, 3}})
	}))
	defer srv.Close()

	enc := newTestEncoder(srv.URL, 0.6)

	got, err := enc.Encode(context.Background(), testImage(), entity.Region{})
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "length 3")
}

func TestHTTPEncoder_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	enc := newTestEncoder(srv.URL, 0.6)

	regions, err := enc.DetectFaces(context.Background(), testImage(), 1)
	assert.Error(t, err)
	assert.Nil(t, regions)
	assert.Contains(t, err.Error(), "status 500")
}

func TestHTTPEncoder_Matches(t *testing.T) {
	enc := newTestEncoder("http://unused", 0.6)

	known := make(entity.Embedding, entity.EmbeddingLen)
	same := make(entity.Embedding, entity.EmbeddingLen)
	assert.True(t, enc.Matches(known, same))

	// Distance exactly at the threshold still matches.
	atThreshold := make(entity.Embedding, entity.EmbeddingLen)
	atThreshold[0] = 0.6
	assert.True(t, enc.Matches(known, atThreshold))

	// Distance just over the threshold does not.
	over := make(entity.Embedding, entity.EmbeddingLen)
	over[0] = 0.601
	assert.False(t, enc.Matches(known, over))

	// Length mismatch never matches.
	assert.False(t, enc.Matches(known, entity.Embedding{1, 2, 3}))
	assert.False(t, enc.Matches(entity.Embedding{}, entity.Embedding{}))
}
