// Package remarksvc generates teacher remarks for report cards. The Gemini
// implementation calls the Generative Language REST API; failures degrade to
// a stock remark so report generation never blocks on the model.
package remarksvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/officialmikal/cbc-and-jss-automation/core"
)

const (
	apiHost = "https://generativelanguage.googleapis.com"

	fallbackRemark = "The learner is making steady progress in this area."
	defaultRemark  = "Consistently demonstrates commitment to learning."
)

type (
	geminiService struct {
		key    string
		model  string
		client *http.Client
		logger core.Logger
	}

	generateRequest struct {
		Contents []content `json:"contents"`
	}
	content struct {
		Parts []part `json:"parts"`
	}
	part struct {
		Text string `json:"text"`
	}

	generateResponse struct {
		Candidates []struct {
			Content content `json:"content"`
		} `json:"candidates"`
	}
)

var _ core.RemarkService = (*geminiService)(nil)

func NewGeminiService(logger core.Logger, conf *core.Config) *geminiService {
	return &geminiService{
		key:    conf.GeminiApiKey,
		model:  conf.GeminiModel,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

func (svc *geminiService) GenerateRemark(ctx context.Context, subjectName string, score int, level string) string {
	prompt := fmt.Sprintf(`You are a teacher in a Kenyan Primary/Junior Secondary school following the CBC curriculum.
The learner has achieved a score of %d%% in %s, which translates to "%s".
Write a constructive, professional 1-sentence teacher remark for the report card.
Mention a specific strength or area for improvement based on the score.
Keep it in Kenyan educational context. Do not include quotes.`, score, subjectName, level)

	remark, err := svc.generate(ctx, prompt)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("generating remark: %v", err), err)
		return fallbackRemark
	}
	if remark == "" {
		return defaultRemark
	}
	return remark
}

func (svc *geminiService) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", apiHost, svc.model, url.QueryEscape(svc.key))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := svc.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate content: status %d", res.StatusCode)
	}

	var parsed generateResponse
	if err = json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}
