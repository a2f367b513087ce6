package cli

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/GabrielNunesIT/raml-converter/internal/config"
	"github.com/GabrielNunesIT/raml-converter/internal/importer"
	"github.com/GabrielNunesIT/raml-converter/internal/server"
	"github.com/GabrielNunesIT/raml-converter/internal/store"
)

func (c *CLI) serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Uploaded files carry their content; the server never reads the local disk.
			uploads := store.New(afero.NewReadOnlyFs(afero.NewMemMapFs()))

			imp, err := importer.New(importer.WithStore(uploads), importer.WithLogger(c.log))
			if err != nil {
				return err
			}

			return server.New(imp, c.log).ListenAndServe(cmd.Context(), c.serverAddr)
		},
	}

	cmd.Flags().StringVar(&c.serverAddr, "addr", cfg.Server.Addr, "Address to listen on")

	return cmd
}
