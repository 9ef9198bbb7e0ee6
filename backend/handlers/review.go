package handlers

import (
	"github.com/gofiber/fiber/v2"

	webmodels "github.com/sovereignhud/sovereign-hud/backend/models"
	"github.com/sovereignhud/sovereign-hud/backend/utils"
)

// ApproveQuest resolves a submitted quest as passed.
func ApproveQuest(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			webmodels.ReviewRequest
			TimeSpent int `json:"time_spent" form:"time_spent"`
		}
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if err := w.Lifecycle.ApproveQuest(c.Context(), c.Params("id"), req.Feedback, req.TimeSpent); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Quest approved")
	}
}

// RejectQuest resolves a submitted quest as failed. Feedback is optional,
// the same as on approval.
func RejectQuest(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.ReviewRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if err := w.Lifecycle.RejectQuest(c.Context(), c.Params("id"), req.Feedback); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Quest rejected")
	}
}

// ReopenQuest puts a quest back on the board as Active.
func ReopenQuest(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := w.Lifecycle.ReopenQuest(c.Context(), c.Params("id")); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Quest reopened")
	}
}

// UndoApproval moves an approved quest back to the review queue.
func UndoApproval(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := w.Lifecycle.UndoApproval(c.Context(), c.Params("id")); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Approval undone")
	}
}

// BulkApprove approves a set of submitted quests in one action.
func BulkApprove(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.BulkApproveRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if len(req.QuestIDs) == 0 {
			return utils.SendBadRequest(c, "No quests selected", nil)
		}

		if err := w.Lifecycle.BulkApprove(c.Context(), req.QuestIDs, req.Feedback); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, fiber.Map{"approved": len(req.QuestIDs)}, "Quests approved")
	}
}
