package sheets

import (
	"fmt"
	"strings"
)

// ColumnLetter converts a 1-based column number to its sheet letter form:
// 1 -> A, 26 -> Z, 27 -> AA.
func ColumnLetter(n int) string {
	letters := ""
	for n > 0 {
		n--
		letters = string(rune('A'+n%26)) + letters
		n /= 26
	}
	return letters
}

// ColumnNumber is the inverse of ColumnLetter. Returns 0 for input that is
// not a column reference.
func ColumnNumber(letters string) int {
	n := 0
	for _, r := range letters {
		if r < 'A' || r > 'Z' {
			return 0
		}
		n = n*26 + int(r-'A') + 1
	}
	return n
}

// A1 builds a single-cell range like "Quests!B3". Rows are 1-based; the
// header row is row 1.
func A1(sheet string, col, row int) string {
	return fmt.Sprintf("%s!%s%d", sheet, ColumnLetter(col), row)
}

// Cell builds an update writing one value to one cell.
func Cell(sheet string, col, row int, value interface{}) CellUpdate {
	return CellUpdate{Range: A1(sheet, col, row), Values: [][]interface{}{{value}}}
}

// ParseA1 splits a single-cell reference back into sheet, column and row.
func ParseA1(ref string) (sheet string, col, row int, err error) {
	sheet, cell, ok := strings.Cut(ref, "!")
	if !ok {
		return "", 0, 0, fmt.Errorf("invalid range %q: missing sheet", ref)
	}
	i := 0
	for i < len(cell) && cell[i] >= 'A' && cell[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(cell) {
		return "", 0, 0, fmt.Errorf("invalid range %q: bad cell reference", ref)
	}
	col = ColumnNumber(cell[:i])
	if _, err := fmt.Sscanf(cell[i:], "%d", &row); err != nil || row < 1 {
		return "", 0, 0, fmt.Errorf("invalid range %q: bad row", ref)
	}
	return sheet, col, row, nil
}
