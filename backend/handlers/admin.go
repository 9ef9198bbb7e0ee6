package handlers

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/sovereignhud/sovereign-hud/backend/models"
	"github.com/sovereignhud/sovereign-hud/backend/utils"
	domain "github.com/sovereignhud/sovereign-hud/sovereign/models"
)

// SearchMinions fuzzy-searches the Sectors table for the admin quick
// find box.
func SearchMinions(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		limit := c.QueryInt("limit", 20)

		minions, err := w.Search.Search(c.Context(), query, limit)
		if err != nil {
			return utils.SendDomainError(c, err)
		}

		results := make([]webmodels.MinionView, 0, len(minions))
		for _, m := range minions {
			results = append(results, webmodels.NewMinionView(m))
		}
		return utils.SendSuccess(c, results, "")
	}
}

// CreateMinion appends one minion row. A minion created with a
// prerequisite expression starts Locked, otherwise Engaged.
func CreateMinion(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.MinionCreateRequest
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

		status := domain.MinionEngaged
		if req.Prerequisite != "" {
			status = domain.MinionLocked
		}
		// One-shot minions carry impact 1-3; recurring ones go up to 7.
		maxImpact := 3
		if req.Recurring {
			maxImpact = 7
		}
		impact := req.Impact
		if impact < 1 || impact > maxImpact {
			impact = 1
		}

		m := &domain.Minion{
			Sector:       req.Sector,
			Boss:         req.Boss,
			Name:         req.Minion,
			Status:       status,
			Impact:       impact,
			Subject:      req.Subject,
			Recurring:    req.Recurring,
			Prerequisite: req.Prerequisite,
			DateAdded:    time.Now().Format(domain.DateFormat),
		}
		if err := w.Repos.Minions.Append(c.Context(), []*domain.Minion{m}); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendCreated(c, webmodels.NewMinionView(m), "Minion added")
	}
}

// BulkLock places a set of minions behind one prerequisite expression.
func BulkLock(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.BulkLockRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if len(req.Minions) == 0 {
			return utils.SendBadRequest(c, "No minions selected", nil)
		}
		if err := utils.RequireFields(map[string]string{"prerequisite": req.Prerequisite}); err != nil {
			return utils.SendDomainError(c, err)
		}

		locked := 0
		for _, keyReq := range req.Minions {
			m, err := w.Repos.Minions.FindByKey(c.Context(), keyReq.Key())
			if err != nil {
				return utils.SendDomainError(c, err)
			}
			m.Status = domain.MinionLocked
			m.Prerequisite = req.Prerequisite
			if err := w.Repos.Minions.Update(c.Context(), m); err != nil {
				return utils.SendDomainError(c, err)
			}
			locked++
		}
		return utils.SendSuccess(c, fiber.Map{"locked": locked}, "Minions locked")
	}
}

// ResolveLocks runs the prerequisite resolver on demand, for when the
// sheet was edited by hand.
func ResolveLocks(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		promoted, err := w.Locks.Resolve(c.Context())
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, fiber.Map{"promoted": promoted}, "Locks resolved")
	}
}

// ImportPhoto extracts minions from an uploaded curriculum photo.
func ImportPhoto(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if w.Importer == nil {
			return utils.SendBadRequest(c, "Photo import is not configured", nil)
		}

		sector := c.FormValue("sector")
		if err := utils.RequireFields(map[string]string{"sector": sector}); err != nil {
			return utils.SendDomainError(c, err)
		}

		file, err := c.FormFile("photo")
		if err != nil {
			return utils.SendBadRequest(c, "A photo upload is required", nil)
		}
		if err := utils.ValidateImageUpload(file); err != nil {
			return utils.SendDomainError(c, err)
		}

		src, err := file.Open()
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to read upload")
		}
		defer src.Close()
		image, err := io.ReadAll(src)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to read upload")
		}

		minions, err := w.Importer.ImportPhoto(c.Context(), image, file.Header.Get("Content-Type"), sector)
		if err != nil {
			return utils.SendDomainError(c, err)
		}

		results := make([]webmodels.MinionView, 0, len(minions))
		for _, m := range minions {
			results = append(results, webmodels.NewMinionView(m))
		}
		return utils.SendCreated(c, results, "Minions imported")
	}
}

// SendDigest mails the weekly summary immediately.
func SendDigest(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if w.Digest == nil {
			return utils.SendBadRequest(c, "Mail is not configured", nil)
		}
		if err := w.Digest.SendNow(c.Context()); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Digest sent")
	}
}
