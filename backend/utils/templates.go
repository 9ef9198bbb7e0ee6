package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | Sovereign HUD</title>
<link rel="stylesheet" href="/static/hud.css">
</head>
<body>
<header class="hud-header">
	<a href="/" class="hud-brand">SOVEREIGN HUD</a>
	<nav>
		<a href="/quests">Quests</a>
		<a href="/badges">Badges</a>
		<a href="/logout">Log out</a>
	</nav>
</header>
<main>
{{template "content" .}}
</main>
</body>
</html>`

// MustPage parses a page body against the shared layout. Panics on a
// bad template, which only happens at startup.
func MustPage(name, body string) *template.Template {
	t := template.New(name).Funcs(TemplateFuncs())
	template.Must(t.Parse(layoutTemplate))
	template.Must(t.Parse(body))
	return t
}

// RenderHTML executes a page template into the response body.
func RenderHTML(c *fiber.Ctx, t *template.Template, data interface{}) error {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", t.Name(), err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// TemplateFuncs returns a map of functions that can be used in templates
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"capitalize":  capitalize,
		"truncate":    truncate,
		"pluralize":   pluralize,
		"percentage":  percentage,
		"statusColor": statusColor,
		"add":         add,
	}
}

// capitalize capitalizes the first letter of a string
func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// truncate truncates a string to the specified length
func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length] + "..."
}

// pluralize returns the singular or plural form of a word based on count
func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// percentage calculates percentage
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return (float64(part) / float64(total)) * 100
}

// statusColor returns a CSS class based on quest or minion status
func statusColor(status string) string {
	switch strings.ToLower(status) {
	case "approved", "enslaved":
		return "status-green"
	case "submitted", "engaged":
		return "status-blue"
	case "rejected":
		return "status-red"
	case "locked", "abandoned":
		return "status-gray"
	case "active":
		return "status-yellow"
	default:
		return "status-gray"
	}
}

// add adds two numbers
func add(a, b int) int {
	return a + b
}
