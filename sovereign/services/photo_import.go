package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/repositories"
)

const importPrompt = `You are reading a photo of a homeschool curriculum page, table of
contents or workbook index. Extract the learning objectives as JSON:
[{"boss": "<chapter or unit name>", "minion": "<objective name>",
"impact": <1-3 difficulty>, "subject": "<curriculum tag>"}]
Respond with the JSON array only.`

// PhotoImportService turns a photo of a curriculum page into Minion rows
// via a multimodal model. The call is per-request and failures surface to
// the admin who uploaded the photo.
type PhotoImportService struct {
	client  *genai.Client
	model   string
	minions repositories.MinionRepository
	clock   Clock
}

func NewPhotoImportService(ctx context.Context, apiKey, model string, minions repositories.MinionRepository, clock Clock) (*PhotoImportService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("AI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	if clock == nil {
		clock = SystemClock
	}
	return &PhotoImportService{client: client, model: model, minions: minions, clock: clock}, nil
}

type importedMinion struct {
	Boss    string `json:"boss"`
	Minion  string `json:"minion"`
	Impact  int    `json:"impact"`
	Subject string `json:"subject"`
}

// ImportPhoto classifies the image and appends the extracted minions to
// the given sector as Engaged.
func (s *PhotoImportService) ImportPhoto(ctx context.Context, image []byte, mimeType, sector string) ([]*models.Minion, error) {
	if sector == "" {
		return nil, fmt.Errorf("sector is required: %w", models.ErrValidation)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(importPrompt),
		}, genai.RoleUser),
	}
	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("photo classification failed: %w", err)
	}

	imported, err := parseImportResponse(resp.Text())
	if err != nil {
		return nil, err
	}

	today := s.clock.Now().Format(models.DateFormat)
	minions := make([]*models.Minion, 0, len(imported))
	for _, im := range imported {
		if im.Boss == "" || im.Minion == "" {
			continue
		}
		impact := im.Impact
		if impact < 1 || impact > 3 {
			impact = 1
		}
		minions = append(minions, &models.Minion{
			Sector:    sector,
			Boss:      im.Boss,
			Name:      im.Minion,
			Status:    models.MinionEngaged,
			Impact:    impact,
			Subject:   im.Subject,
			DateAdded: today,
		})
	}
	if len(minions) == 0 {
		return nil, fmt.Errorf("no objectives recognized in photo")
	}

	if err := s.minions.Append(ctx, minions); err != nil {
		return nil, err
	}
	slog.Info("Imported minions from photo",
		slog.String("type", "quest"),
		slog.String("sector", sector),
		slog.Int("count", len(minions)))
	return minions, nil
}

func parseImportResponse(text string) ([]importedMinion, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var imported []importedMinion
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &imported); err != nil {
		return nil, fmt.Errorf("model returned unparseable objective list: %w", err)
	}
	return imported, nil
}
