package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/agrica/voice-gateway-go/internal/errors"
)

// HasabClient talks to the Hasab speech API: audio upload for transcription,
// JSON synthesis returning a hosted audio URL.
type HasabClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	sttTimeout time.Duration
	ttsTimeout time.Duration
}

func NewHasabClient(baseURL, apiKey string, sttTimeout, ttsTimeout time.Duration) *HasabClient {
	return &HasabClient{
		httpClient: &http.Client{},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		sttTimeout: sttTimeout,
		ttsTimeout: ttsTimeout,
	}
}

type transcribeResponse struct {
	Transcription string `json:"transcription"`
	Message       string `json:"message"`
}

type synthesizeResponse struct {
	AudioURL string `json:"audio_url"`
	Message  string `json:"message"`
}

// Transcribe downloads the telephony recording and submits it for
// transcription. The recording never touches disk.
func (c *HasabClient) Transcribe(ctx context.Context, audioURL, language string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.sttTimeout)
	defer cancel()

	audio, err := c.downloadRecording(ctx, audioURL)
	if err != nil {
		return "", apperrors.Transcription(err)
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("audio", "recording.wav")
	if err != nil {
		return "", apperrors.Transcription(err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", apperrors.Transcription(err)
	}
	_ = form.WriteField("transcribe", "true")
	_ = form.WriteField("translate", "false")
	_ = form.WriteField("summarize", "false")
	_ = form.WriteField("language", language)
	if err := form.Close(); err != nil {
		return "", apperrors.Transcription(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-audio", &body)
	if err != nil {
		return "", apperrors.Transcription(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", form.FormDataContentType())

	var parsed transcribeResponse
	if err := c.do(req, &parsed); err != nil {
		return "", apperrors.Transcription(err)
	}
	if parsed.Transcription == "" {
		return "", apperrors.Transcription(fmt.Errorf("no transcription in response: %s", parsed.Message))
	}
	return parsed.Transcription, nil
}

func (c *HasabClient) Synthesize(ctx context.Context, text string, opts VoiceOptions) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperrors.Synthesis(fmt.Errorf("empty text"))
	}

	ctx, cancel := context.WithTimeout(ctx, c.ttsTimeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{
		"text":         text,
		"language":     opts.Language,
		"speaker_name": opts.Speaker,
	})
	if err != nil {
		return "", apperrors.Synthesis(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/tts/synthesize", bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.Synthesis(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var parsed synthesizeResponse
	if err := c.do(req, &parsed); err != nil {
		return "", apperrors.Synthesis(err)
	}
	if parsed.AudioURL == "" {
		return "", apperrors.Synthesis(fmt.Errorf("no audio_url in response: %s", parsed.Message))
	}
	return parsed.AudioURL, nil
}

func (c *HasabClient) downloadRecording(ctx context.Context, audioURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download recording: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *HasabClient) do(req *http.Request, dest any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}
	return json.Unmarshal(raw, dest)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
