package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/primetree/internal/server"
)

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve trees and rendered artifacts over HTTP",
		Long: `Serve trees and rendered artifacts over HTTP.

Routes:
  GET /healthz                 build information
  GET /api/v1/tree             laid-out tree and fitted view (JSON)
  GET /api/v1/render.{format}  svg, png, json, dot, dot-svg or txt
  GET /api/v1/hit?x=&y=        what lies under a canvas point

Query parameters (start, end, policy, width, height, nodes, edges, ...)
override the config file per request. The listen address comes from
--listen, then PRIMETREE_LISTEN, then [server] listen.`,
		Example: `  primetree serve --listen :9000
  curl 'localhost:9000/api/v1/render.svg?start=1&end=64&policy=odd'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("listen") {
				listen = c.Config.Server.Listen
			}
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger, c.Config.PipelineOptions())
			printInfo("Listening on %s", StyleHighlight.Render(listen))
			printNextStep("Try", "curl 'http://"+displayAddr(listen)+"/api/v1/render.svg?end=30'")
			return srv.ListenAndServe(cmd.Context(), listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// displayAddr turns a bind address like ":8080" into one a browser can use.
func displayAddr(listen string) string {
	if strings.HasPrefix(listen, ":") {
		return "localhost" + listen
	}
	return listen
}
