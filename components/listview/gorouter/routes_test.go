package gorouter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	router "github.com/goliatone/go-router"

	"github.com/izajlabs/go-adminlist/components/listview"
	"github.com/izajlabs/go-adminlist/components/listview/commands"
)

func TestRegisterValidatesConfig(t *testing.T) {
	err := Register(Config[struct{}]{})
	if err == nil {
		t.Fatalf("expected error when router/controller missing")
	}
}

func TestRegisterPageJSONRoute(t *testing.T) {
	mock := newMockRouter()
	svc := newStubbedService(t)
	controller := listview.NewController(listview.ControllerOptions{Service: svc})

	cfg := Config[struct{}]{
		Router:     mock,
		Controller: controller,
		Service:    svc,
		API:        noopExecutor{},
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	h, ok := mock.routes["GET:/admin/pages/:code"]
	if !ok {
		t.Fatalf("expected page route to be registered, have %v", routeKeys(mock))
	}

	ctx := newMockContext()
	ctx.params["code"] = "test.page.stock"
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != 200 {
		t.Fatalf("expected 200, got %d", ctx.status)
	}
	var view listview.View
	if err := json.Unmarshal(ctx.body, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.PageCode != "test.page.stock" {
		t.Fatalf("unexpected page code %q", view.PageCode)
	}
	if view.Stats.Total != 4 {
		t.Fatalf("expected populated view, got %d items", view.Stats.Total)
	}
}

func TestRegisterStatsRoute(t *testing.T) {
	mock := newMockRouter()
	svc := newStubbedService(t)
	controller := listview.NewController(listview.ControllerOptions{Service: svc})

	cfg := Config[struct{}]{
		Router:     mock,
		Controller: controller,
		Service:    svc,
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	h, ok := mock.routes["GET:/admin/pages/:code/stats"]
	if !ok {
		t.Fatalf("expected stats route to be registered, have %v", routeKeys(mock))
	}

	ctx := newMockContext()
	ctx.params["code"] = "test.page.stock"
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var stats listview.SummaryStats
	if err := json.Unmarshal(ctx.body, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Total != 4 {
		t.Fatalf("expected 4 items counted, got %d", stats.Total)
	}
}

func TestRegisterHTMLRoute(t *testing.T) {
	mock := newMockRouter()
	svc := newStubbedService(t)
	renderer := &stubRenderer{}
	controller := listview.NewController(listview.ControllerOptions{
		Service:  svc,
		Renderer: renderer,
	})

	cfg := Config[struct{}]{
		Router:     mock,
		Controller: controller,
		Service:    svc,
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	h, ok := mock.routes["GET:/admin/pages/:code/html"]
	if !ok {
		t.Fatalf("expected html route to be registered")
	}

	ctx := newMockContext()
	ctx.params["code"] = "test.page.stock"
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if len(ctx.body) == 0 {
		t.Fatalf("expected response body")
	}
	if renderer.calls == 0 {
		t.Fatalf("renderer not invoked")
	}
	if !strings.Contains(ctx.headers["Content-Type"], "text/html") {
		t.Fatalf("expected html content type, got %q", ctx.headers["Content-Type"])
	}
}

func TestQueryParamsFoldIntoPipeline(t *testing.T) {
	mock := newMockRouter()
	svc := newStubbedService(t)
	controller := listview.NewController(listview.ControllerOptions{Service: svc})

	cfg := Config[struct{}]{
		Router:     mock,
		Controller: controller,
		Service:    svc,
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	h := mock.routes["GET:/admin/pages/:code"]
	ctx := newMockContext()
	ctx.params["code"] = "test.page.stock"
	ctx.query["search"] = "pendant"
	ctx.query["status"] = "active"
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var view listview.View
	if err := json.Unmarshal(ctx.body, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Stats.Total != 1 {
		t.Fatalf("expected 1 active pendant, got %d", view.Stats.Total)
	}
}

func TestMutationRouteMapsInFlightToConflict(t *testing.T) {
	mock := newMockRouter()
	svc := newStubbedService(t)
	controller := listview.NewController(listview.ControllerOptions{Service: svc})

	cfg := Config[struct{}]{
		Router:     mock,
		Controller: controller,
		Service:    svc,
		API:        conflictExecutor{},
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	h, ok := mock.routes["DELETE:/admin/pages/:code/items/:id"]
	if !ok {
		t.Fatalf("expected delete route to be registered")
	}

	ctx := newMockContext()
	ctx.params["code"] = "test.page.stock"
	ctx.params["id"] = "p1"
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != 409 {
		t.Fatalf("expected 409, got %d", ctx.status)
	}
}

// --- Test helpers ---

func newStubbedService(t *testing.T) *listview.Service {
	t.Helper()
	registry := listview.NewRegistry()
	err := registry.RegisterDefinition(listview.PageDefinition{
		Code:         "test.page.stock",
		Name:         "Stock",
		Resource:     "products",
		SearchFields: []string{"name"},
		Dimensions:   []listview.Dimension{{Field: "status"}},
	})
	if err != nil {
		t.Fatalf("register definition: %v", err)
	}
	return listview.NewService(listview.Options{
		Source:   stubSource{},
		Registry: registry,
	})
}

type stubSource struct{}

func (stubSource) FetchCollection(context.Context, string) ([]listview.Item, error) {
	return []listview.Item{
		{"id": "p1", "name": "Aurora Pendant", "status": "active"},
		{"id": "p2", "name": "Nimbus Pendant", "status": "inactive"},
		{"id": "p3", "name": "Halo Ceiling", "status": "active"},
		{"id": "p4", "name": "Lumen Desk", "status": "inactive"},
	}, nil
}

func routeKeys(m *mockRouter) []string {
	keys := make([]string, 0, len(m.routes))
	for key := range m.routes {
		keys = append(keys, key)
	}
	return keys
}

type mockRouter struct {
	prefix string
	routes map[string]router.HandlerFunc
}

func newMockRouter() *mockRouter {
	return &mockRouter{routes: map[string]router.HandlerFunc{}}
}

func (m *mockRouter) Group(prefix string) router.Router[struct{}] {
	return &mockRouter{
		prefix: m.prefix + prefix,
		routes: m.routes,
	}
}

func (m *mockRouter) record(method, path string, handler router.HandlerFunc) {
	full := m.prefix + path
	m.routes[method+":"+full] = handler
}

func (m *mockRouter) Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.GET), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.POST), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.DELETE), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Put(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.PUT), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Patch(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.PATCH), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Head(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.HEAD), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Handle(method router.HTTPMethod, path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(method), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Mount(prefix string) router.Router[struct{}] {
	return m.Group(prefix)
}

func (m *mockRouter) WithGroup(path string, cb func(r router.Router[struct{}])) router.Router[struct{}] {
	cb(m.Group(path))
	return m
}

func (m *mockRouter) Use(mw ...router.MiddlewareFunc) router.Router[struct{}] { return m }

func (m *mockRouter) Static(prefix, root string, config ...router.Static) router.Router[struct{}] {
	return m
}

func (m *mockRouter) WebSocket(path string, config router.WebSocketConfig, handler func(router.WebSocketContext) error) router.RouteInfo {
	return mockRouteInfo{}
}

func (m *mockRouter) Routes() []router.RouteDefinition { return nil }

func (m *mockRouter) ValidateRoutes() []error { return nil }

func (m *mockRouter) PrintRoutes() {}

func (m *mockRouter) WithLogger(logger router.Logger) router.Router[struct{}] { return m }

type mockRouteInfo struct{}

func (mockRouteInfo) SetName(string) router.RouteInfo        { return mockRouteInfo{} }
func (mockRouteInfo) SetDescription(string) router.RouteInfo { return mockRouteInfo{} }
func (mockRouteInfo) SetSummary(string) router.RouteInfo     { return mockRouteInfo{} }
func (mockRouteInfo) AddTags(...string) router.RouteInfo     { return mockRouteInfo{} }
func (mockRouteInfo) AddParameter(name, in string, required bool, schema map[string]any) router.RouteInfo {
	return mockRouteInfo{}
}
func (mockRouteInfo) SetRequestBody(desc string, required bool, content map[string]any) router.RouteInfo {
	return mockRouteInfo{}
}
func (mockRouteInfo) AddResponse(code int, desc string, content map[string]any) router.RouteInfo {
	return mockRouteInfo{}
}

type mockContext struct {
	ctx     context.Context
	headers map[string]string
	body    []byte
	locals  map[any]any
	params  map[string]string
	query   map[string]string
	status  int
}

func newMockContext() *mockContext {
	return &mockContext{
		ctx:     context.Background(),
		headers: map[string]string{},
		locals:  map[any]any{},
		params:  map[string]string{},
		query:   map[string]string{},
	}
}

func (m *mockContext) Context() context.Context {
	return m.ctx
}

func (m *mockContext) SetHeader(k, v string) router.Context {
	m.headers[k] = v
	return m
}

func (m *mockContext) Send(b []byte) error {
	m.body = append([]byte{}, b...)
	return nil
}

func (m *mockContext) JSON(code int, v any) error {
	m.status = code
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.body = data
	return nil
}

func (m *mockContext) Body() []byte { return m.body }

func (m *mockContext) Param(name string, defaultValue ...string) string {
	if v, ok := m.params[name]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *mockContext) Query(name string, defaultValue ...string) string {
	if v, ok := m.query[name]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *mockContext) Locals(key any, value ...any) any {
	if len(value) == 0 {
		return m.locals[key]
	}
	m.locals[key] = value[0]
	return value[0]
}

func (m *mockContext) Method() string { return "GET" }

func (m *mockContext) Path() string { return "" }

func (m *mockContext) ParamsInt(key string, defaultValue int) int { return defaultValue }

func (m *mockContext) QueryValues(name string) []string {
	if v, ok := m.query[name]; ok {
		return []string{v}
	}
	return nil
}

func (m *mockContext) QueryInt(name string, defaultValue int) int { return defaultValue }

func (m *mockContext) Queries() map[string]string { return m.query }

func (m *mockContext) LocalsMerge(key any, value map[string]any) map[string]any { return value }

func (m *mockContext) Render(name string, bind any, layouts ...string) error { return nil }

func (m *mockContext) Cookie(cookie *router.Cookie) {}

func (m *mockContext) Cookies(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *mockContext) CookieParser(out any) error { return nil }

func (m *mockContext) Redirect(location string, status ...int) error { return nil }

func (m *mockContext) RedirectToRoute(routeName string, params router.ViewContext, status ...int) error {
	return nil
}

func (m *mockContext) RedirectBack(fallback string, status ...int) error { return nil }

func (m *mockContext) Header(key string) string { return m.headers[key] }

func (m *mockContext) Referer() string { return "" }

func (m *mockContext) OriginalURL() string { return "" }

func (m *mockContext) FormFile(key string) (*multipart.FileHeader, error) {
	return nil, errors.New("not implemented")
}

func (m *mockContext) FormValue(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *mockContext) IP() string { return "" }

func (m *mockContext) Status(code int) router.Context {
	m.status = code
	return m
}

func (m *mockContext) SendString(body string) error { return m.Send([]byte(body)) }

func (m *mockContext) SendStatus(code int) error {
	m.status = code
	return nil
}

func (m *mockContext) SendStream(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return m.Send(data)
}

func (m *mockContext) NoContent(code int) error {
	m.status = code
	return nil
}

func (m *mockContext) Set(key string, value any) { m.locals[key] = value }

func (m *mockContext) Get(key string, def any) any {
	if v, ok := m.locals[key]; ok {
		return v
	}
	return def
}

func (m *mockContext) GetString(key string, def string) string {
	if v, ok := m.locals[key].(string); ok {
		return v
	}
	return def
}

func (m *mockContext) GetInt(key string, def int) int {
	if v, ok := m.locals[key].(int); ok {
		return v
	}
	return def
}

func (m *mockContext) GetBool(key string, def bool) bool {
	if v, ok := m.locals[key].(bool); ok {
		return v
	}
	return def
}

func (m *mockContext) Bind(v any) error {
	if len(m.body) == 0 {
		return nil
	}
	return json.Unmarshal(m.body, v)
}

func (m *mockContext) SetContext(ctx context.Context) { m.ctx = ctx }

func (m *mockContext) Next() error { return nil }

func (m *mockContext) RouteName() string { return "" }

func (m *mockContext) RouteParams() map[string]string { return m.params }

type noopExecutor struct{}

func (noopExecutor) Refresh(context.Context, commands.RefreshListInput) error        { return nil }
func (noopExecutor) UpdateStatus(context.Context, commands.UpdateStatusInput) error  { return nil }
func (noopExecutor) Delete(context.Context, commands.DeleteItemInput) error          { return nil }
func (noopExecutor) Reply(context.Context, commands.ReplyInput) error                { return nil }
func (noopExecutor) Maintenance(context.Context, commands.SetMaintenanceInput) error { return nil }

type conflictExecutor struct {
	noopExecutor
}

func (conflictExecutor) Delete(context.Context, commands.DeleteItemInput) error {
	return listview.ErrMutationInFlight
}

type stubRenderer struct {
	calls int
}

func (s *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	s.calls++
	if len(out) > 0 && out[0] != nil {
		_, _ = out[0].Write([]byte("<table></table>"))
	}
	return "<table></table>", nil
}
