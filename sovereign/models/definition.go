package models

// Definition is a glossary row from the Definitions sheet, shown on the
// dashboard help panel.
type Definition struct {
	Row int

	Term       string
	Definition string
}
