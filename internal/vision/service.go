// Package vision describes photos with an LLM vision model: a poetic
// caption, the visible objects, and any readable text.
package vision

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/lifechronicles/chronicler/internal/models"
)

// Service handles visual analysis of photos
type Service struct{}

// NewService creates a new vision service
func NewService() *Service {
	return &Service{}
}

// AnalyzeImage describes an image using LLM vision capabilities and parses
// the structured response into a PhotoAnalysis.
func (s *Service) AnalyzeImage(imagePath, provider, model string) (models.PhotoAnalysis, error) {
	if provider == "" {
		provider = os.Getenv("CHRONICLER_PROVIDER")
		if provider == "" {
			provider = "ollama"
		}
	}

	if model == "" {
		model = s.getDefaultModel(provider)
	}

	var raw string
	var err error
	switch provider {
	case "openai":
		raw, err = s.analyzeWithOpenAI(imagePath, model)
	case "ollama":
		raw, err = s.analyzeWithOllama(imagePath, model)
	default:
		return models.PhotoAnalysis{}, fmt.Errorf("unsupported vision provider: %s", provider)
	}
	if err != nil {
		return models.PhotoAnalysis{}, err
	}

	return ParseResponse(raw), nil
}

func (s *Service) getDefaultModel(provider string) string {
	switch provider {
	case "openai":
		model := os.Getenv("OPENAI_MODEL")
		if model == "" {
			return "gpt-4o"
		}
		return model
	case "ollama":
		model := os.Getenv("OLLAMA_MODEL")
		if model == "" {
			return "mistral-small3.2:24b"
		}
		return model
	default:
		return ""
	}
}

func (s *Service) buildVisionPrompt() string {
	return `IMPORTANT: Analyze ONLY what you can actually see in this image. Do NOT make up or imagine content that is not visible.

Look carefully at the image and provide:

1. A POETIC and evocative caption (1-2 sentences) that captures the mood, atmosphere, and essence of what you see
2. A list of ALL visible objects, people, animals, buildings, or items you can identify
3. Any text that is visible in the image (OCR)

CAPTION REQUIREMENTS - Make it POETIC and ARTISTIC:
- Write in a lyrical, poetic style
- Use vivid, descriptive language and imagery
- Capture the emotional tone and atmosphere
- Make it engaging and evocative
- Focus on visual beauty, colors, light, and composition
- Use metaphors and artistic descriptions when appropriate
- Keep it grounded in what you actually see

CRITICAL RULES:
- Base your poetic description ONLY on what is actually visible
- Do NOT invent fictional elements or contexts
- Use artistic language to describe REAL visual elements
- If you cannot clearly see something, say "unclear" or "not visible"
- Be specific about colors, shapes, light, and visible elements

Please format your response as:
Caption: [your poetic caption here]
Objects: [list only visible objects]
OCR Text: [any visible text, or "No text visible" if none]`
}

// ParseResponse extracts the Caption/Objects/OCR Text lines from a vision
// model response. Missing or placeholder values get deterministic
// substitutes so downstream composition always has something to work with.
func ParseResponse(response string) models.PhotoAnalysis {
	var caption, ocrText string
	var objects []string

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Caption:"):
			caption = strings.TrimSpace(strings.TrimPrefix(line, "Caption:"))
		case strings.HasPrefix(line, "Objects:"):
			objectsStr := strings.TrimSpace(strings.TrimPrefix(line, "Objects:"))
			for _, obj := range strings.Split(objectsStr, ",") {
				if obj = strings.TrimSpace(obj); obj != "" {
					objects = append(objects, obj)
				}
			}
		case strings.HasPrefix(line, "OCR Text:"):
			ocrText = strings.TrimSpace(strings.TrimPrefix(line, "OCR Text:"))
			if ocrText == "No text visible" {
				ocrText = ""
			}
		}
	}

	if caption == "" || caption == "Image analysis completed" {
		caption = "Unable to generate specific caption - image content unclear"
	}
	if isPlaceholderObjects(objects) {
		objects = objectsFromCaption(caption)
	}

	analysis := models.PhotoAnalysis{
		Caption: caption,
		OCRText: ocrText,
	}
	for _, name := range objects {
		analysis.Objects = append(analysis.Objects, models.Item{Name: name})
	}
	return analysis
}

func isPlaceholderObjects(objects []string) bool {
	if len(objects) == 0 {
		return true
	}
	if len(objects) == 1 && (objects[0] == "image" || objects[0] == "content unclear") {
		return true
	}
	return false
}

// objectsFromCaption supplies generic objects keyed off caption vocabulary
// when the model listed nothing usable.
func objectsFromCaption(caption string) []string {
	lower := strings.ToLower(caption)
	switch {
	case strings.Contains(lower, "dusk") || strings.Contains(lower, "twilight"):
		return []string{"sky", "twilight", "atmosphere", "lighting", "mood"}
	case strings.Contains(lower, "branch") || strings.Contains(lower, "tree"):
		return []string{"tree", "branch", "nature", "outdoors", "landscape"}
	case strings.Contains(lower, "cityscape") || strings.Contains(lower, "city"):
		return []string{"city", "buildings", "urban", "architecture", "skyline"}
	default:
		return []string{"visual elements", "composition", "atmosphere", "mood", "scene"}
	}
}

func (s *Service) analyzeWithOllama(imagePath, model string) (string, error) {
	ollamaHost := os.Getenv("OLLAMA_URL")
	if ollamaHost == "" {
		ollamaHost = os.Getenv("OLLAMA_HOST")
	}
	if ollamaHost == "" {
		ollamaHost = "http://localhost:11434"
	}

	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image for analysis: %w", err)
	}

	base64Image := base64.StdEncoding.EncodeToString(imageData)

	requestBody := map[string]interface{}{
		"model":  model,
		"prompt": s.buildVisionPrompt(),
		"images": []string{base64Image},
		"stream": false,
		"options": map[string]interface{}{
			"temperature": 0.1,
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal vision request: %w", err)
	}

	resp, err := http.Post(
		ollamaHost+"/api/generate",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return "", fmt.Errorf("failed to call Ollama API for vision: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama vision API returned status %d: %s", resp.StatusCode, string(body))
	}

	var ollamaResp struct {
		Response string `json:"response"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return "", fmt.Errorf("failed to decode Ollama vision response: %w", err)
	}

	slog.Info("Analyzed image", "provider", "ollama", "length", len(ollamaResp.Response))
	return ollamaResp.Response, nil
}

func (s *Service) analyzeWithOpenAI(imagePath, model string) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image for analysis: %w", err)
	}

	base64Image := base64.StdEncoding.EncodeToString(imageData)

	requestBody := map[string]interface{}{
		"model": model,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "text",
						"text": s.buildVisionPrompt(),
					},
					{
						"type": "image_url",
						"image_url": map[string]string{
							"url": "data:image/jpeg;base64," + base64Image,
						},
					},
				},
			},
		},
		"max_tokens":  1000,
		"temperature": 0.1,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal vision request: %w", err)
	}

	req, err := http.NewRequest("POST", "https://api.openai.com/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create vision request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call OpenAI API for vision: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openAI vision API returned status %d: %s", resp.StatusCode, string(body))
	}

	var openaiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&openaiResp); err != nil {
		return "", fmt.Errorf("failed to decode OpenAI vision response: %w", err)
	}

	if len(openaiResp.Choices) == 0 {
		return "", fmt.Errorf("no vision response from OpenAI")
	}

	content := openaiResp.Choices[0].Message.Content
	slog.Info("Analyzed image", "provider", "openai", "model", model, "length", len(content))
	return content, nil
}
