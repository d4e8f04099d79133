package view

import (
	"fmt"
	"strings"

	"github.com/cloud-wave-best-zizon/order-console/internal/form"
)

// RenderTabs draws the page switcher. The active page's control is marked
// disabled.
func RenderTabs(nav *Navigator, styles Styles) string {
	parts := make([]string, 0, len(Pages))
	for i, p := range Pages {
		label := fmt.Sprintf("F%d %s", i+1, p)
		if !nav.Enabled(p) {
			parts = append(parts, styles.ActiveTab.Render(label))
			continue
		}
		parts = append(parts, styles.Tab.Render(label))
	}
	return strings.Join(parts, styles.Muted.Render("  |  "))
}

// RenderForm draws one form as label/value lines.
func RenderForm(title string, f *form.Form, styles Styles) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")
	for _, field := range f.Schema().Fields {
		sb.WriteString(styles.Label.Render(field.Label + ":"))
		sb.WriteString(" ")
		sb.WriteString(f.Get(field.ID))
		sb.WriteString("\n")
	}
	return sb.String()
}

func RenderFlash(flash Flash, styles Styles) string {
	if flash.Message == "" {
		return ""
	}
	if flash.IsError {
		return styles.Error.Render(flash.Message)
	}
	return styles.Success.Render(flash.Message)
}

// RenderResult is the non-interactive rendering used after a single action:
// the form it touched, the results table if any, then the flash.
func RenderResult(s *State, a Action, styles Styles) string {
	var sb strings.Builder
	if a.UsesItemForm() {
		sb.WriteString(RenderForm("Item", s.Item, styles))
	} else {
		sb.WriteString(RenderForm("Order", s.Order, styles))
	}
	if s.Results != nil {
		sb.WriteString("\n")
		sb.WriteString(s.Results.Render(styles))
	}
	if flash := RenderFlash(s.Flash, styles); flash != "" {
		sb.WriteString("\n")
		sb.WriteString(flash)
		sb.WriteString("\n")
	}
	return sb.String()
}
