package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/izajlabs/go-adminlist/components/listview"
	"github.com/izajlabs/go-adminlist/pkg/backend"
)

type cli struct {
	Scaffold scaffoldCmd `cmd:"" help:"Scaffold a list page definition and manifest entry."`
	Preview  previewCmd  `cmd:"" help:"Fetch a page from the backend and print its current view."`
}

type scaffoldCmd struct {
	Code         string   `required:"" help:"Fully-qualified page code (e.g. acme.page.orders)."`
	Name         string   `help:"Display name for the page (defaults to the code's last segment)."`
	Description  string   `help:"One-line description used in manifests."`
	Resource     string   `required:"" help:"Backend collection the page lists (e.g. products)."`
	ManifestPath string   `required:"" type:"path" help:"Path to the page manifest YAML file to update."`
	SearchField  []string `help:"Text fields covered by the search box (use multiple --search-field flags)."`
	SumField     string   `help:"Numeric field totalled in the summary stats."`
	PageSize     int      `help:"Rows per page (defaults to 12)."`
	SchemaPath   string   `type:"path" help:"Optional JSON schema file applied to every dimension."`
	Dimension    []string `help:"Categorical dimension fields (use multiple --dimension flags)."`
	Tag          []string `help:"Optional tags to include in the manifest."`
	Maintainer   []string `help:"Maintainers to record in the manifest."`
	Overwrite    bool     `help:"Overwrite an existing manifest entry if present."`
}

type previewCmd struct {
	Code    string `arg:"" help:"Page code to preview (e.g. admin.page.stock)."`
	BaseURL string `required:"" help:"Backend base URL."`
	APIKey  string `env:"LISTCTL_API_KEY" help:"Bearer token for the backend API."`
	Search  string   `help:"Search text to apply before rendering."`
	Select  []string `help:"Dimension filter as field=value (use multiple --select flags)."`
	Page    int      `default:"1" help:"Page number to show."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Page scaffolding and preview utility for go-adminlist manifests."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("listctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if !cmd.Overwrite {
		for _, page := range doc.Pages {
			if page.Definition.Code == cmd.Code {
				return fmt.Errorf("listctl: manifest already defines page %s (use --overwrite to replace)", cmd.Code)
			}
		}
	}

	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}

	name := cmd.Name
	if name == "" {
		name = deriveDisplayName(cmd.Code)
	}

	dims := make([]listview.Dimension, 0, len(cmd.Dimension))
	for _, field := range cmd.Dimension {
		dims = append(dims, listview.Dimension{
			Field:  field,
			Label:  deriveDisplayName(field),
			Schema: schema,
		})
	}

	entry := listview.ManifestPage{
		Definition: listview.PageDefinition{
			Code:         cmd.Code,
			Name:         name,
			Description:  cmd.Description,
			Resource:     cmd.Resource,
			SearchFields: cmd.SearchField,
			Dimensions:   dims,
			SumField:     cmd.SumField,
			PageSize:     cmd.PageSize,
		},
		Maintainers: cmd.Maintainer,
		Tags:        cmd.Tag,
	}

	if cmd.Overwrite {
		replaced := false
		for idx := range doc.Pages {
			if doc.Pages[idx].Definition.Code == cmd.Code {
				doc.Pages[idx] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			doc.Pages = append(doc.Pages, entry)
		}
	} else {
		doc.Pages = append(doc.Pages, entry)
	}

	sort.Slice(doc.Pages, func(i, j int) bool {
		return doc.Pages[i].Definition.Code < doc.Pages[j].Definition.Code
	})

	if err := writeManifestFile(manifestPath, doc); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "✓ Added %s to %s\n", cmd.Code, manifestPath)
	return nil
}

func (cmd *scaffoldCmd) validate() error {
	if !strings.Contains(cmd.Code, ".") {
		return fmt.Errorf("listctl: page code %s must contain at least one '.' segment", cmd.Code)
	}
	return nil
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("listctl: read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("listctl: parse schema JSON: %w", err)
	}
	return schema, nil
}

func (cmd *previewCmd) Run(ctx context.Context) error {
	client, err := backend.NewHTTPClient(backend.Config{
		BaseURL: cmd.BaseURL,
		APIKey:  cmd.APIKey,
	})
	if err != nil {
		return err
	}

	svc := listview.NewService(listview.Options{
		Source:  client,
		Mutator: client,
	})
	if err := svc.Refresh(ctx, cmd.Code); err != nil {
		return err
	}
	if cmd.Search != "" {
		if _, err := svc.Search(cmd.Code, cmd.Search); err != nil {
			return err
		}
	}
	for _, sel := range cmd.Select {
		field, value, ok := strings.Cut(sel, "=")
		if !ok {
			return fmt.Errorf("listctl: invalid --select %q (expected field=value)", sel)
		}
		if _, err := svc.Select(cmd.Code, field, value); err != nil {
			return err
		}
	}
	view, err := svc.GoToPage(cmd.Code, cmd.Page)
	if err != nil {
		return err
	}

	printView(os.Stdout, view)
	return nil
}

func printView(out *os.File, view listview.View) {
	fmt.Fprintf(out, "%s: page %d of %d (%d rows on page, %d total)\n",
		view.PageCode, view.CurrentPage, view.TotalPages, len(view.Items), view.Stats.Total)
	if view.Stats.Sum != 0 {
		fmt.Fprintf(out, "sum: %.2f\n", view.Stats.Sum)
	}
	for name, count := range view.Stats.Counts {
		fmt.Fprintf(out, "%s: %d\n", name, count)
	}
	for _, item := range view.Items {
		fmt.Fprintf(out, "  %s\n", item.ID())
	}

	pager := make([]string, 0, len(view.VisiblePages))
	for _, n := range view.VisiblePages {
		label := fmt.Sprintf("%d", n)
		if n == view.CurrentPage {
			label = "[" + label + "]"
		}
		pager = append(pager, label)
	}
	fmt.Fprintf(out, "pages: %s\n", strings.Join(pager, " "))
}

func loadOrInitManifest(path string) (*listview.PageManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc := &listview.PageManifestDocument{
				Version: listview.ManifestVersion,
				Pages:   []listview.ManifestPage{},
				Source:  path,
			}
			return doc, nil
		}
		return nil, fmt.Errorf("listctl: stat manifest: %w", err)
	}
	doc, err := listview.ReadManifest(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func writeManifestFile(path string, doc *listview.PageManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("listctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("listctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("listctl: write manifest: %w", err)
	}
	return nil
}

func deriveDisplayName(code string) string {
	parts := strings.Split(code, ".")
	slug := strings.TrimSpace(parts[len(parts)-1])
	if slug == "" {
		slug = code
	}
	return strcase.ToCase(slug, strcase.TitleCase, ' ')
}
