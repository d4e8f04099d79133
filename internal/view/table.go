package view

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cloud-wave-best-zizon/order-console/internal/domain"
	"github.com/cloud-wave-best-zizon/order-console/internal/form"
)

// Table is a row-per-result rendering of a list response.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

func OrderTable(orders []domain.Order) Table {
	t := Table{
		Title:   "Orders",
		Headers: []string{"ID", "User ID", "Create Time", "Items", "Status"},
		Rows:    make([][]string, 0, len(orders)),
	}
	for _, o := range orders {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(o.ID),
			strconv.Itoa(o.UserID),
			strconv.FormatInt(o.CreateTime, 10),
			form.JoinItems(o.Items),
			domain.ToSymbol(o.Status),
		})
	}
	return t
}

func ItemTable(items []domain.Item) Table {
	t := Table{
		Title:   "Items",
		Headers: []string{"Order ID", "Item ID", "Detail"},
		Rows:    make([][]string, 0, len(items)),
	}
	for _, it := range items {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(it.OrderID),
			strconv.Itoa(it.ItemID),
			it.Detail,
		})
	}
	return t
}

// Render draws the header row even when there are no rows.
func (t Table) Render(styles Styles) string {
	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	// Width includes the cell padding.
	total := len(widths) - 1
	for i := range widths {
		widths[i] += 2
		total += widths[i]
	}

	sep := styles.Muted.Render("|")
	for i, h := range t.Headers {
		sb.WriteString(styles.Header.Width(widths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sep)
		}
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render(strings.Repeat("-", max(total, 0))))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			sb.WriteString(styles.Cell.Width(widths[i]).Render(cell))
			if i < len(row)-1 && i < len(widths)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
