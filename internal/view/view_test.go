package view

import (
	"strings"
	"testing"

	"github.com/cloud-wave-best-zizon/order-console/internal/domain"
	"github.com/cloud-wave-best-zizon/order-console/internal/form"
	"github.com/stretchr/testify/assert"
)

func TestNavigatorShowsExactlyOnePage(t *testing.T) {
	nav := NewNavigator()
	assert.Equal(t, PageCreate, nav.Active())

	for _, p := range Pages {
		nav.Show(p)
		visible := 0
		for _, q := range Pages {
			if nav.Visible(q) {
				visible++
				assert.Equal(t, p, q)
				assert.False(t, nav.Enabled(q), "active page control must be disabled")
			} else {
				assert.True(t, nav.Enabled(q))
			}
		}
		assert.Equal(t, 1, visible)
	}
}

func TestNavigatorReenablesPreviousPage(t *testing.T) {
	nav := NewNavigator()
	nav.Show(PageRead)
	assert.False(t, nav.Enabled(PageRead))
	nav.Show(PageDelete)
	assert.True(t, nav.Enabled(PageRead))
	assert.False(t, nav.Enabled(PageDelete))
}

func TestNavigatorIgnoresUnknownPage(t *testing.T) {
	nav := NewNavigator()
	nav.Show(PageUpdate)
	nav.Show(Page(42))
	assert.Equal(t, PageUpdate, nav.Active())
}

func TestEveryActionHasAPage(t *testing.T) {
	seen := map[Action]bool{}
	for _, p := range Pages {
		for _, a := range p.Actions() {
			seen[a] = true
		}
	}
	for a := ActionCreateOrder; a <= ActionDeleteItem; a++ {
		assert.True(t, seen[a], "%s has no page", a)
	}
}

func TestOrderTable(t *testing.T) {
	tbl := OrderTable([]domain.Order{
		{ID: 1, UserID: 7, CreateTime: 100, Items: []int{1, 2}, Status: domain.StatusCreated},
		{ID: 2, UserID: 7, CreateTime: 200, Status: 9},
	})
	assert.False(t, tbl.Empty())
	assert.Equal(t, []string{"1", "7", "100", "1,2", "created"}, tbl.Rows[0])
	assert.Equal(t, "unknown", tbl.Rows[1][4])

	out := tbl.Render(DefaultStyles())
	assert.Contains(t, out, "Status")
	assert.Contains(t, out, "created")
	assert.Contains(t, out, "unknown")
}

func TestEmptyTableRendersHeadersOnly(t *testing.T) {
	tbl := ItemTable(nil)
	assert.True(t, tbl.Empty())

	out := tbl.Render(DefaultStyles())
	assert.Contains(t, out, "Item ID")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// title, header, divider
	assert.Len(t, lines, 3)
}

func TestFlash(t *testing.T) {
	var f Flash
	f.Error("not found")
	assert.Equal(t, Flash{Message: "not found", IsError: true}, f)
	f.Success()
	assert.Equal(t, Flash{Message: "Success"}, f)
	f.Clear()
	assert.Equal(t, Flash{}, f)
}

func TestRenderResult(t *testing.T) {
	s := NewState(form.DefaultLayout())
	form.PopulateOrder(s.Order, domain.Order{ID: 42, UserID: 7, Status: domain.StatusCancelled})
	s.Flash.Success()

	out := RenderResult(s, ActionRetrieveOrder, DefaultStyles())
	assert.Contains(t, out, "Order ID:")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "cancelled")
	assert.Contains(t, out, "Success")
	assert.NotContains(t, out, "Item Detail")
}

func TestRenderTabsMarksActive(t *testing.T) {
	nav := NewNavigator()
	nav.Show(PageSearch)
	out := RenderTabs(nav, DefaultStyles())
	assert.Contains(t, out, "F5 Search")
	assert.Contains(t, out, "F1 Create")
}

func TestClearForms(t *testing.T) {
	s := NewState(form.DefaultLayout())
	s.Order.Set(form.FieldUserID, "7")
	s.Item.Set(form.FieldItemID, "3")
	tbl := OrderTable(nil)
	s.Results = &tbl
	s.Flash.Error("boom")

	s.ClearForms()
	assert.Equal(t, "", s.Order.Get(form.FieldUserID))
	assert.Equal(t, "", s.Item.Get(form.FieldItemID))
	assert.Nil(t, s.Results)
	assert.Equal(t, Flash{}, s.Flash)
}
