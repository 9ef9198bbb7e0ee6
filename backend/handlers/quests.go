package handlers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/sovereignhud/sovereign-hud/backend/middleware"
	webmodels "github.com/sovereignhud/sovereign-hud/backend/models"
	"github.com/sovereignhud/sovereign-hud/backend/utils"
	"github.com/sovereignhud/sovereign-hud/sovereign/services"
)

var questBoardTmpl = utils.MustPage("quests", `{{define "content"}}
<section class="quest-board">
	<h1>Quest Board</h1>
	<article>
		<h2>In progress</h2>
		<ul>
		{{range .Overview.Actionable}}
			<li class="{{statusColor (printf "%s" .Status)}}">
				{{.Sector}} / {{.Boss}} &gt; {{.Minion}} [{{.Status}}]
				{{if .Feedback}}<em>{{truncate .Feedback 120}}</em>{{end}}
			</li>
		{{end}}
		</ul>
	</article>
	<article>
		<h2>Ready to engage</h2>
		<ul>
		{{range .Overview.Engaged}}
			<li>{{.Sector}} / {{.Boss}} &gt; {{.Name}} (impact {{.Impact}})</li>
		{{end}}
		</ul>
	</article>
</section>
{{end}}`)

// QuestBoardPage renders the student's quest board.
func QuestBoardPage(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		overview, err := w.Dashboard.Overview(c.Context())
		if err != nil {
			return err
		}
		return utils.RenderHTML(c, questBoardTmpl, fiber.Map{
			"Title":    "Quests",
			"Overview": overview,
			"User":     middleware.CurrentUser(c),
		})
	}
}

// StartQuest queues a single quest.
func StartQuest(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			webmodels.MinionKeyRequest
			DueDate string `json:"due_date" form:"due_date"`
		}
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if err := utils.RequireFields(map[string]string{
			"sector": req.Sector,
			"boss":   req.Boss,
			"minion": req.Minion,
		}); err != nil {
			return utils.SendDomainError(c, err)
		}

		id, err := w.Lifecycle.StartQuest(c.Context(), services.StartQuestInput{
			Sector:  req.Sector,
			Boss:    req.Boss,
			Minion:  req.Minion,
			DueDate: req.DueDate,
		})
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendCreated(c, fiber.Map{"quest_id": id}, "Quest started")
	}
}

// StartQuestBatch queues quests for several minions in one pass.
func StartQuestBatch(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.StartBatchRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if len(req.Minions) == 0 {
			return utils.SendBadRequest(c, "No minions selected", nil)
		}

		items := make([]services.StartQuestInput, 0, len(req.Minions))
		for _, m := range req.Minions {
			items = append(items, services.StartQuestInput{
				Sector: m.Sector,
				Boss:   m.Boss,
				Minion: m.Minion,
			})
		}
		ids, err := w.Lifecycle.StartQuestBatch(c.Context(), items)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendCreated(c, fiber.Map{"quest_ids": ids}, "Quests started")
	}
}

// SubmitQuest attaches proof and moves the quest into the review queue.
// The proof is either a link in the form body or an uploaded photo that
// goes to the Spaces bucket first.
func SubmitQuest(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.SubmitQuestRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if file, err := c.FormFile("proof_photo"); err == nil && file != nil {
			link, uploadErr := uploadProof(c, w, file)
			if uploadErr != nil {
				return utils.SendDomainError(c, uploadErr)
			}
			req.ProofLink = link
			if req.ProofType == "" {
				req.ProofType = "photo"
			}
		}

		err := w.Lifecycle.SubmitQuest(c.Context(), c.Params("id"), services.SubmitQuestInput{
			ProofType:  req.ProofType,
			ProofLink:  req.ProofLink,
			Reflection: req.Reflection,
			TimeSpent:  req.TimeSpent,
		})
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Quest submitted for review")
	}
}

func uploadProof(c *fiber.Ctx, w *WebApp, file *multipart.FileHeader) (string, error) {
	if w.Proofs == nil {
		return "", fmt.Errorf("proof photo uploads are not configured")
	}
	if err := utils.ValidateImageUpload(file); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%s%s", c.Params("id"), filepath.Ext(file.Filename))
	return w.Proofs.Upload(c.Context(), name, file.Header.Get("Content-Type"), src)
}

// AbandonQuest soft-deletes a quest with an audit note naming the actor.
func AbandonQuest(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := "unknown"
		if user := middleware.CurrentUser(c); user != nil {
			actor = user.Name
		}
		if err := w.Lifecycle.AbandonQuest(c.Context(), c.Params("id"), actor); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Quest abandoned")
	}
}

// QuestLog lists the dated progress notes for one quest.
func QuestLog(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := w.Repos.QuestLog.GetByQuestID(c.Context(), c.Params("id"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, entries, "")
	}
}

// AddQuestLog appends a progress note for a recurring quest.
func AddQuestLog(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Note      string `json:"note" form:"note"`
			TimeSpent int    `json:"time_spent" form:"time_spent"`
		}
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if err := utils.RequireFields(map[string]string{"note": req.Note}); err != nil {
			return utils.SendDomainError(c, err)
		}

		if err := w.Lifecycle.AddLogEntry(c.Context(), c.Params("id"), req.Note, req.TimeSpent); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendCreated(c, nil, "Log entry added")
	}
}
