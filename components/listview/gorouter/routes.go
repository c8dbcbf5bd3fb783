package gorouter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	router "github.com/goliatone/go-router"

	"github.com/izajlabs/go-adminlist/components/listview"
	"github.com/izajlabs/go-adminlist/components/listview/commands"
	"github.com/izajlabs/go-adminlist/components/listview/httpapi"
)

// ActorResolver converts a router.Context into a listview.ActorContext.
type ActorResolver func(router.Context) listview.ActorContext

// Config wires go-router with listview controllers and mutation APIs.
type Config[T any] struct {
	Router        router.Router[T]
	Controller    *listview.Controller
	Service       *listview.Service
	API           httpapi.Executor
	ActorResolver ActorResolver
	BasePath      string
	Routes        RouteConfig
}

// RouteConfig customizes the relative paths used for listview endpoints.
type RouteConfig struct {
	Pages       string
	Page        string
	PageStats   string
	PageHTML    string
	Refresh     string
	Status      string
	Item        string
	Reply       string
	Maintenance string
}

func (c Config[T]) routes() RouteConfig {
	routes := c.Routes
	if routes.Pages == "" {
		routes.Pages = "/pages"
	}
	if routes.Page == "" {
		routes.Page = "/pages/:code"
	}
	if routes.PageStats == "" {
		routes.PageStats = "/pages/:code/stats"
	}
	if routes.PageHTML == "" {
		routes.PageHTML = "/pages/:code/html"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/pages/:code/refresh"
	}
	if routes.Status == "" {
		routes.Status = "/pages/:code/items/:id/status"
	}
	if routes.Item == "" {
		routes.Item = "/pages/:code/items/:id"
	}
	if routes.Reply == "" {
		routes.Reply = "/pages/:code/items/:id/reply"
	}
	if routes.Maintenance == "" {
		routes.Maintenance = "/maintenance"
	}
	return routes
}

// Register mounts listview routes (JSON, HTML fallback, mutations) on a
// go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	if cfg.Service == nil {
		return errors.New("gorouter: service is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	actorResolver := cfg.ActorResolver
	if actorResolver == nil {
		actorResolver = defaultActorResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.Pages, router.WrapHandler(func(ctx router.Context) error {
		defs := cfg.Service.Definitions()
		return ctx.JSON(http.StatusOK, defs)
	}))

	group.Get(routes.Page, router.WrapHandler(func(ctx router.Context) error {
		code := ctx.Param("code")
		if code == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("page code is required"))
		}
		if err := applyQueryState(cfg.Service, ctx, code); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		view, err := cfg.Controller.ViewPayload(ctx.Context(), code)
		if err != nil {
			return respondError(ctx, http.StatusNotFound, err)
		}
		return ctx.JSON(http.StatusOK, view)
	}))

	group.Get(routes.PageStats, router.WrapHandler(func(ctx router.Context) error {
		code := ctx.Param("code")
		if code == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("page code is required"))
		}
		if err := applyQueryState(cfg.Service, ctx, code); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		view, err := cfg.Controller.ViewPayload(ctx.Context(), code)
		if err != nil {
			return respondError(ctx, http.StatusNotFound, err)
		}
		return ctx.JSON(http.StatusOK, view.Stats)
	}))

	group.Get(routes.PageHTML, router.WrapHandler(func(ctx router.Context) error {
		code := ctx.Param("code")
		if code == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("page code is required"))
		}
		if err := applyQueryState(cfg.Service, ctx, code); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		var buf renderBuffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), code, &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.data)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, actorResolver, routes)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolver ActorResolver, routes RouteConfig) {
	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		actor := resolver(ctx)
		input := commands.RefreshListInput{
			PageCode: ctx.Param("code"),
			ActorID:  actor.ActorID,
			TenantID: actor.TenantID,
		}
		if err := api.Refresh(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
	}))

	r.Post(routes.Status, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.UpdateStatusInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.PageCode = ctx.Param("code")
		payload.ItemID = ctx.Param("id")
		actor := resolver(ctx)
		payload.ActorID = actor.ActorID
		payload.TenantID = actor.TenantID
		if err := api.UpdateStatus(ctx.Context(), payload); err != nil {
			return respondMutationError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))

	r.Delete(routes.Item, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("item id is required"))
		}
		actor := resolver(ctx)
		input := commands.DeleteItemInput{
			PageCode: ctx.Param("code"),
			ItemID:   id,
			ActorID:  actor.ActorID,
			TenantID: actor.TenantID,
		}
		if err := api.Delete(ctx.Context(), input); err != nil {
			return respondMutationError(ctx, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Reply, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ReplyInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.PageCode = ctx.Param("code")
		payload.ItemID = ctx.Param("id")
		actor := resolver(ctx)
		payload.ActorID = actor.ActorID
		payload.TenantID = actor.TenantID
		if err := api.Reply(ctx.Context(), payload); err != nil {
			return respondMutationError(ctx, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "replied"})
	}))

	r.Post(routes.Maintenance, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SetMaintenanceInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		actor := resolver(ctx)
		payload.ActorID = actor.ActorID
		payload.TenantID = actor.TenantID
		if err := api.Maintenance(ctx.Context(), payload); err != nil {
			return respondMutationError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))
}

// applyQueryState folds ?search=, ?page= and per-dimension query params into
// the page's pipeline before the view is taken.
func applyQueryState(service *listview.Service, ctx router.Context, code string) error {
	pipeline, err := service.Open(code)
	if err != nil {
		return err
	}
	if search := ctx.Query("search"); search != "" {
		pipeline.SetSearch(search)
	}
	for _, dim := range pipeline.Definition().Dimensions {
		if value := ctx.Query(dim.Field); value != "" {
			if _, err := service.Select(code, dim.Field, value); err != nil {
				return err
			}
		}
	}
	if page := ctx.Query("page"); page != "" {
		number, err := strconv.Atoi(page)
		if err != nil {
			return errors.New("page must be an integer")
		}
		pipeline.SetPage(number)
	}
	return nil
}

func respondMutationError(ctx router.Context, err error) error {
	if errors.Is(err, listview.ErrMutationInFlight) {
		return respondError(ctx, http.StatusConflict, err)
	}
	return respondError(ctx, http.StatusInternalServerError, err)
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultActorResolver(ctx router.Context) listview.ActorContext {
	var actor listview.ActorContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		actor.ActorID = v
	}
	if v, ok := ctx.Locals("tenant_id").(string); ok {
		actor.TenantID = v
	}
	return actor
}

type renderBuffer struct {
	data []byte
}

func (b *renderBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}
