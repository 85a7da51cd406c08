package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/conduit-lang/compound/internal/cli/ui"
	"github.com/conduit-lang/compound/internal/server"
	"github.com/conduit-lang/compound/pkg/web/response"
	"github.com/spf13/cobra"
)

var (
	servePort   int
	serveHost   string
	servePrefix string
	servePretty bool
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [FILE]",
		Short: "Serve compound documents from a fixture file over HTTP",
		Long: `Start an HTTP server answering JSON:API requests from a fixture file.

Routes:
  GET /               links to every resource type
  GET /{type}         all resources of a type
  GET /{type}/{id}    a single resource

The include, fields[TYPE] and sort query parameters are supported.`,
		Example: `  # Serve on the configured address
  compound serve blog.yaml

  # Serve under /api on port 8080
  compound serve blog.yaml --port 8080 --prefix /api`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, a, args)
		},
	}

	cmd.Flags().IntVarP(&servePort, "port", "p", 3000, "Port to listen on")
	cmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to listen on")
	cmd.Flags().StringVar(&servePrefix, "prefix", "", "Path prefix for every route (e.g. /api)")
	cmd.Flags().BoolVar(&servePretty, "pretty", false, "Indent response bodies")

	return cmd
}

// serverConfig merges flags over the loaded configuration
func serverConfig(cmd *cobra.Command, a *app) server.Config {
	sc := a.config.Server
	if cmd.Flags().Changed("port") {
		sc.Port = servePort
	}
	if cmd.Flags().Changed("host") {
		sc.Host = serveHost
	}
	if cmd.Flags().Changed("prefix") {
		sc.APIPrefix = servePrefix
	}

	config := server.DefaultConfig()
	config.Address = sc.Addr()
	config.APIPrefix = sc.APIPrefix
	config.Render = response.RendererConfig{
		PrettyPrint: servePretty || a.config.Render.Pretty,
		Indent:      a.config.Render.Indent,
	}
	return config
}

func runServe(cmd *cobra.Command, a *app, args []string) error {
	store, err := loadStore(cmd, a, args)
	if err != nil {
		return err
	}

	config := serverConfig(cmd, a)
	srv, err := server.New(store, config, a.logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.WriteSuccess(cmd.OutOrStdout(),
		fmt.Sprintf("Serving %d resources on http://%s%s", store.Len(), config.Address, config.APIPrefix), a.noColor)
	return srv.ListenAndServe(ctx)
}
