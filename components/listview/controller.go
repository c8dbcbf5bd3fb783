package listview

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ControllerOptions wires the service and renderer into a controller.
type ControllerOptions struct {
	Service  *Service
	Renderer Renderer
}

// Controller adapts service views for transports: JSON payloads for the SPA
// pages and a server-rendered table fallback.
type Controller struct {
	service  *Service
	renderer Renderer
}

// NewController builds a controller; the renderer may be nil when only JSON
// payloads are served.
func NewController(opts ControllerOptions) *Controller {
	return &Controller{service: opts.Service, renderer: opts.Renderer}
}

// ViewPayload refreshes a page when its collection is empty and returns the
// view snapshot for JSON serialization.
func (c *Controller) ViewPayload(ctx context.Context, pageCode string) (View, error) {
	if c.service == nil {
		return View{}, errors.New("listview: controller requires a service")
	}
	view, err := c.service.View(pageCode)
	if err != nil {
		return View{}, err
	}
	if view.Stats.Total == 0 && !view.Loading {
		if err := c.service.Refresh(ctx, pageCode); err != nil {
			// Fetch failures surface on the view banner, not as a 500.
			view, _ = c.service.View(pageCode)
			return view, nil
		}
		return c.service.View(pageCode)
	}
	return view, nil
}

// RenderTemplate writes the server-rendered table for a page view.
func (c *Controller) RenderTemplate(ctx context.Context, pageCode string, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("listview: controller requires a renderer")
	}
	view, err := c.ViewPayload(ctx, pageCode)
	if err != nil {
		return err
	}
	p, err := c.service.Open(pageCode)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render("listview", templateData(p.Definition(), view), out)
	return err
}

func templateData(def PageDefinition, view View) map[string]any {
	columns := append([]string{"id"}, def.SearchFields...)
	rows := make([][]string, 0, len(view.Items))
	for _, item := range view.Items {
		row := make([]string, len(columns))
		for i, column := range columns {
			row[i] = item.Text(column)
		}
		rows = append(rows, row)
	}
	stats := make([]map[string]any, 0, len(def.CountRules))
	for _, rule := range def.CountRules {
		stats = append(stats, map[string]any{
			"name":  rule.Name,
			"count": view.Stats.Counts[rule.Name],
		})
	}
	data := map[string]any{
		"page_code":    view.PageCode,
		"title":        def.Name,
		"columns":      columns,
		"rows":         rows,
		"stats":        stats,
		"stats_total":  view.Stats.Total,
		"pages":        view.VisiblePages,
		"current_page": view.CurrentPage,
		"total_pages":  view.TotalPages,
		"loading":      view.Loading,
		"err":          view.Err,
	}
	if def.SumField != "" {
		data["stats_sum"] = fmt.Sprintf("%.2f", view.Stats.Sum)
	}
	return data
}
