package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AmaanBilwar/BER-StockChecker/internal/config"
	"github.com/AmaanBilwar/BER-StockChecker/internal/imaging"

	"go.uber.org/zap"
)

// ExtractPrompt is the fixed instruction sent with every scan.
const ExtractPrompt = "Extract the visible text in this image. If there are multiple lines of text, identify the most salient line or title."

// Client extracts text from an image via an external vision model.
type Client interface {
	ExtractText(ctx context.Context, img image.Image) (string, error)
}

// HTTPClient talks to the vision backend over HTTP/JSON: a JPEG payload in,
// the extracted text out. One call per request, no retries.
type HTTPClient struct {
	url     string
	token   string
	timeout time.Duration
	client  *http.Client
	logger  *zap.Logger
}

type inferenceRequest struct {
	Prompt   string `json:"prompt"`
	ImageB64 string `json:"image_b64"`
}

type inferenceResponse struct {
	Text string `json:"text"`
}

// NewHTTPClient creates a vision client from config.
func NewHTTPClient(cfg *config.Config, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		url:     cfg.VisionURL,
		token:   cfg.VisionToken,
		timeout: time.Duration(cfg.VisionTimeoutSeconds) * time.Second,
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// ExtractText normalizes the image to 3 channels, sends it with the fixed
// extraction prompt and returns the model's text with surrounding
// whitespace trimmed.
func (c *HTTPClient) ExtractText(ctx context.Context, img image.Image) (string, error) {
	imageB64, err := imaging.EncodeJPEGBase64(imaging.NormalizeRGB(img))
	if err != nil {
		return "", fmt.Errorf("preparing image: %w", err)
	}

	body, err := json.Marshal(inferenceRequest{
		Prompt:   ExtractPrompt,
		ImageB64: imageB64,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if c.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	request, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("vision backend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("vision backend returned status %d: %s", resp.StatusCode, string(data))
	}

	var parsed inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding vision response: %w", err)
	}

	c.logger.Debug("Vision backend call completed",
		zap.Duration("latency", time.Since(start)),
		zap.Int("text_length", len(parsed.Text)),
	)

	return strings.TrimSpace(parsed.Text), nil
}
