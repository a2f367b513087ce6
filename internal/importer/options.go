package importer

import (
	"github.com/GabrielNunesIT/raml-converter/internal/convert"
	"github.com/GabrielNunesIT/raml-converter/internal/options"
)

// Option ids understood by the importer.
const (
	OptionFolderStrategy   = "folderStrategy"
	OptionDeterministicIDs = "deterministicIds"
	OptionSkipMethods      = "skipMethods"
)

// Folder strategies, lower-cased as normalization leaves them.
const (
	FolderStrategyPaths = "paths"
	FolderStrategyFlat  = "flat"
)

var declaredOptions = []options.Option{
	options.Enum{
		ID:               OptionFolderStrategy,
		Name:             "Folder organization",
		Description:      "Group the requests of each top-level resource into a folder (Paths) or list every request at the top level (Flat).",
		Default:          "Paths",
		AvailableOptions: []any{"Paths", "Flat"},
	},
	options.Boolean{
		ID:          OptionDeterministicIDs,
		Name:        "Deterministic ids",
		Description: "Emit empty ids and zero timestamps so that repeated conversions are identical.",
		Default:     false,
	},
	options.Array{
		ID:          OptionSkipMethods,
		Name:        "Skip methods",
		Description: "HTTP methods that do not produce requests.",
		Default:     []any{},
	},
}

// Options returns the options Convert understands.
func (i *Importer) Options() []options.Option {
	out := make([]options.Option, len(declaredOptions))
	copy(out, declaredOptions)
	return out
}

func idGenerator(values options.Values) convert.IDGenerator {
	if values.Bool(OptionDeterministicIDs) {
		return convert.DeterministicIDs{}
	}
	return convert.RandomIDs{}
}

func settings(values options.Values) convert.Settings {
	return convert.Settings{
		Flat:        values.String(OptionFolderStrategy) == FolderStrategyFlat,
		SkipMethods: values.Strings(OptionSkipMethods),
	}
}
