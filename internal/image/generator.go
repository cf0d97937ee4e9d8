// Package image renders images from text prompts through a hosted
// Stable-Diffusion-style inference endpoint and saves the PNG output.
package image

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"aria/internal/content"
)

const defaultEndpoint = "https://api-inference.huggingface.co/models/stabilityai/stable-diffusion-xl-base-1.0"

// Config for the image generator.
type Config struct {
	Endpoint string
	APIKey   string
	Dir      string // output directory for generated PNGs
	Timeout  time.Duration
}

// Generator posts prompts to the inference endpoint and saves the result.
type Generator struct {
	endpoint   string
	apiKey     string
	dir        string
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

// NewGenerator builds a generator; zero-valued config fields get defaults.
func NewGenerator(cfg Config, logger *zap.Logger) *Generator {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 90 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		dir:        cfg.Dir,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		now:        time.Now,
	}
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	NegativePrompt    string  `json:"negative_prompt"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
}

// Generate renders the prompt and writes the PNG under the output
// directory, returning a confirmation naming the file.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("image generation API key not configured")
	}

	payload, err := json.Marshal(inferenceRequest{
		Inputs: prompt,
		Parameters: inferenceParameters{
			NegativePrompt:    "blurry, low quality, distorted",
			NumInferenceSteps: 20,
			GuidanceScale:     7.5,
			Width:             1024,
			Height:            1024,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating image request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling image endpoint: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading image response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image endpoint returned status %d: %s", resp.StatusCode, truncate(data, 200))
	}

	if err := os.MkdirAll(g.dir, 0755); err != nil {
		return "", fmt.Errorf("creating image directory: %w", err)
	}

	name := fmt.Sprintf("generated_%s_%s.png",
		g.now().Format("20060102_150405"), content.SafeFileName(prompt))
	path := filepath.Join(g.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("saving image: %w", err)
	}

	g.logger.Info("image generated", zap.String("prompt", prompt), zap.String("path", path))
	return fmt.Sprintf("I've generated your image of %s and saved it to %s.", prompt, path), nil
}

func truncate(data []byte, n int) string {
	if len(data) > n {
		return string(data[:n]) + "..."
	}
	return string(data)
}
