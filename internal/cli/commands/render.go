package commands

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/conduit-lang/compound/internal/cli/ui"
	"github.com/conduit-lang/compound/internal/fixture"
	"github.com/conduit-lang/compound/pkg/compound"
	"github.com/conduit-lang/compound/pkg/web/query"
	"github.com/conduit-lang/compound/pkg/web/response"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type renderOptions struct {
	typ     string
	id      string
	include []string
	fields  []string
	filter  []string
	sort    []string
	pretty  bool
	summary bool
	types   bool
}

func newRenderCommand(a *app) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [FILE]",
		Short: "Render a compound document from a fixture file",
		Long: `Render the JSON:API document for every resource of a type, or for a
single resource, from a YAML fixture file.

Relationship paths passed to --include are expanded and every related
resource with attributes is written once to the "included" section.
FILE defaults to the fixture configured in compound.yaml.`,
		Example: `  # All posts
  compound render blog.yaml --type posts

  # One post with its author and the authors of its comments
  compound render blog.yaml --type posts --id 1 --include author,comments.author

  # Sparse fieldsets and sorting
  compound render blog.yaml --type posts --fields posts=title --fields people=name --sort -views

  # Drafts only
  compound render blog.yaml --type posts --filter status=draft

  # List the types of a fixture
  compound render blog.yaml --types`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, a, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.typ, "type", "t", "", "Resource type to render")
	cmd.Flags().StringVar(&opts.id, "id", "", "Render a single resource instead of the whole type")
	cmd.Flags().StringSliceVarP(&opts.include, "include", "i", nil, "Relationship paths to include (comma separated)")
	cmd.Flags().StringArrayVar(&opts.fields, "fields", nil, "Sparse fieldset as type=attr1,attr2 (repeatable)")
	cmd.Flags().StringArrayVar(&opts.filter, "filter", nil, "Filter as field=value1,value2 (repeatable)")
	cmd.Flags().StringSliceVar(&opts.sort, "sort", nil, "Sort fields, '-' prefix for descending")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent the output")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Print a summary of the included resources to stderr")
	cmd.Flags().BoolVar(&opts.types, "types", false, "List the resource types of the fixture and exit")

	_ = cmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return nil, cobra.ShellCompDirectiveDefault
		}
		store, err := fixture.Load(args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return store.Types(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runRender(cmd *cobra.Command, a *app, opts *renderOptions, args []string) error {
	errOut := cmd.ErrOrStderr()

	store, err := loadStore(cmd, a, args)
	if err != nil {
		return err
	}

	if opts.types {
		writeTypes(cmd.OutOrStdout(), store, a.noColor)
		return nil
	}

	if opts.typ == "" {
		return fmt.Errorf("--type is required (one of: %s)", strings.Join(store.Types(), ", "))
	}

	fields, err := parseFieldsets(opts.fields)
	if err != nil {
		return err
	}

	filters, err := parseFilters(opts.filter)
	if err != nil {
		return err
	}

	params := query.Params{Include: opts.include, Fields: fields, Filter: filters, Sort: opts.sort}
	doc, err := store.Document(opts.typ, opts.id, params, compound.WithLogger(a.logger))
	if err != nil {
		fmt.Fprint(errOut, describeDocumentError(store, opts, err, a.noColor))
		return &reportedError{err: err}
	}

	renderer := response.NewRendererWithConfig(&response.RendererConfig{
		PrettyPrint: opts.pretty || a.config.Render.Pretty,
		Indent:      a.config.Render.Indent,
		Logger:      a.logger,
	})
	data, err := renderer.Encode(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data); err != nil {
		return err
	}

	if opts.summary {
		writeSummary(errOut, doc, a.noColor)
	}
	return nil
}

// loadStore loads the fixture named by args, or the configured one
func loadStore(cmd *cobra.Command, a *app, args []string) (*fixture.Store, error) {
	path := a.config.Fixture
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		err := errors.New("no fixture file given and none configured")
		fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), a.noColor))
		return nil, &reportedError{err: err}
	}

	store, err := fixture.Load(path)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.FixtureError(err.Error(), a.noColor))
		return nil, &reportedError{err: err}
	}
	a.logger.Debug("fixture loaded", zap.String("path", path), zap.Int("resources", store.Len()))
	return store, nil
}

// parseFieldsets parses repeated type=attr1,attr2 flags
func parseFieldsets(values []string) (compound.Fieldsets, error) {
	fields := make(compound.Fieldsets)
	for _, value := range values {
		typ, list, ok := strings.Cut(value, "=")
		typ = strings.TrimSpace(typ)
		if !ok || typ == "" {
			return nil, fmt.Errorf("invalid --fields value %q, expected type=attr1,attr2", value)
		}

		names := []string{}
		for _, name := range strings.Split(list, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		if existing, ok := fields[typ]; ok {
			names = append(existing, names...)
		}
		fields[typ] = names
	}
	return fields, nil
}

// parseFilters parses repeated field=value flags
func parseFilters(values []string) (map[string]string, error) {
	filters := make(map[string]string)
	for _, value := range values {
		field, list, ok := strings.Cut(value, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid --filter value %q, expected field=value", value)
		}
		filters[field] = list
	}
	return filters, nil
}

// describeDocumentError formats a document error with suggestions
func describeDocumentError(store *fixture.Store, opts *renderOptions, err error, noColor bool) string {
	var paramErr *query.InvalidParameterError
	switch {
	case errors.As(err, &paramErr):
		var suggestions []string
		if paramErr.Parameter == "include" {
			suggestions = suggestInclude(store, paramErr.Value)
		}
		return ui.InvalidParameterError(paramErr.Parameter, paramErr.Value, suggestions, noColor)
	case errors.Is(err, fixture.ErrNotFound) && !store.HasType(opts.typ):
		return ui.TypeNotFoundError(opts.typ, ui.FindSimilar(opts.typ, store.Types()), noColor)
	case errors.Is(err, fixture.ErrNotFound):
		return ui.RecordNotFoundError(opts.typ, opts.id, noColor)
	default:
		return ui.FormatError(ui.ErrorOptions{Level: ui.ErrorLevelError, Problem: err.Error(), NoColor: noColor})
	}
}

// suggestInclude replaces the last segment of path with relation names
// close to it, taken from every type of the store.
func suggestInclude(store *fixture.Store, path string) []string {
	seen := make(map[string]bool)
	for _, typ := range store.Types() {
		for _, name := range store.Relations(typ) {
			seen[name] = true
		}
	}

	prefix, last := "", path
	if i := strings.LastIndex(path, "."); i >= 0 {
		prefix, last = path[:i+1], path[i+1:]
	}

	suggestions := ui.FindSimilar(last, slices.Sorted(maps.Keys(seen)))
	for i, name := range suggestions {
		suggestions[i] = prefix + name
	}
	return suggestions
}

func writeTypes(w io.Writer, store *fixture.Store, noColor bool) {
	table := ui.NewTable(w, noColor, "TYPE", "RESOURCES", "RELATIONSHIPS")
	for _, typ := range store.Types() {
		table.AddRow(typ, strconv.Itoa(len(store.All(typ))), strings.Join(store.Relations(typ), ", "))
	}
	table.Render()
}

func writeSummary(w io.Writer, doc *compound.Document, noColor bool) {
	primary := 0
	if data := doc.Data(); data != nil {
		primary = len(data.Resources())
	}
	included := doc.Included()

	ui.Header(w, "Summary", noColor)
	kv := ui.NewKeyValueTable(w, noColor)
	kv.AddRow("primary", strconv.Itoa(primary))
	kv.AddRow("included", strconv.Itoa(len(included)))
	kv.Render()

	if len(included) == 0 {
		return
	}
	fmt.Fprintln(w)
	table := ui.NewTable(w, noColor, "TYPE", "ID", "ATTRIBUTES")
	for _, res := range included {
		table.AddRow(res.Type(), res.ID(), strings.Join(slices.Sorted(maps.Keys(res.Attributes())), ", "))
	}
	table.Render()
}
