package models

type BadgeCategory string

const (
	BadgeCategoryMeta   BadgeCategory = "meta"
	BadgeCategoryBoss   BadgeCategory = "boss"
	BadgeCategorySector BadgeCategory = "sector"
	BadgeCategoryStat   BadgeCategory = "stat"
)

// Badge is a permanently earned achievement: a row in the Badges sheet.
// The table is append-only; a badge, once earned, is never revoked even if
// a later data correction invalidates its condition.
type Badge struct {
	Row int

	ID         string
	Category   BadgeCategory
	Name       string
	DateEarned string
}
