package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/GabrielNunesIT/raml-converter/internal/importer"
)

func (c *CLI) validateCommand() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that a file or folder holds a root RAML specification",
		RunE: func(_ *cobra.Command, _ []string) error {
			input, err := c.input(inputPath)
			if err != nil {
				return err
			}

			imp, err := importer.New(importer.WithStore(c.store), importer.WithLogger(c.log))
			if err != nil {
				return err
			}

			v := imp.Validate(input)
			if !v.Result {
				return errors.New(v.Reason)
			}

			if v.Root != "" {
				c.log.Infof("Valid RAML specification, root: %s", v.Root)
			} else {
				c.log.Infof("Valid RAML specification: %s", inputPath)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to the RAML file or folder (required)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
