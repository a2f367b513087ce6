// Package importer is the entry point of RAML conversions. It turns an input
// (RAML text, a file or a set of files) into a domain.Result holding the
// converted collection and its environment.
package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/GabrielNunesIT/raml-converter/internal/convert"
	"github.com/GabrielNunesIT/raml-converter/internal/detect"
	"github.com/GabrielNunesIT/raml-converter/internal/domain"
	"github.com/GabrielNunesIT/raml-converter/internal/options"
	"github.com/GabrielNunesIT/raml-converter/internal/raml"
	"github.com/GabrielNunesIT/raml-converter/internal/resolver"
	"github.com/GabrielNunesIT/raml-converter/internal/schemacheck"
	"github.com/GabrielNunesIT/raml-converter/internal/store"
)

// Logger is the logging surface the importer needs.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Importer converts RAML inputs. It is safe for concurrent use.
type Importer struct {
	store       store.FileStore
	validator   *schemacheck.Validator
	log         Logger
	concurrency int
}

// Option configures an Importer.
type Option func(*Importer)

// WithStore sets the store files are read from. The OS filesystem is used by default.
func WithStore(fs store.FileStore) Option {
	return func(i *Importer) {
		i.store = fs
	}
}

// WithLogger sets the logger.
func WithLogger(log Logger) Option {
	return func(i *Importer) {
		if log != nil {
			i.log = log
		}
	}
}

// WithConcurrency bounds the number of conversions ConvertBatch runs at once.
func WithConcurrency(n int) Option {
	return func(i *Importer) {
		if n > 0 {
			i.concurrency = n
		}
	}
}

// withValidator replaces the embedded schemas used for the self-check.
func withValidator(v *schemacheck.Validator) Option {
	return func(i *Importer) {
		i.validator = v
	}
}

// New creates an importer.
func New(opts ...Option) (*Importer, error) {
	i := &Importer{
		log:         nopLogger{},
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(i)
	}

	if i.store == nil {
		i.store = store.NewOSStore()
	}

	if i.validator == nil {
		validator, err := schemacheck.New()
		if err != nil {
			return nil, fmt.Errorf("failed to load schemas: %w", err)
		}
		i.validator = validator
	}

	return i, nil
}

// Convert converts input using the given user options. Failures are reported
// in the result, never returned or panicked.
func (i *Importer) Convert(ctx context.Context, input domain.Input, userOptions map[string]any) (result domain.Result) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("conversion failed: %v", r)
			i.log.Errorf("Error: %v", err)
			result = domain.Failure(err)
		}
	}()

	values := options.Normalize(declaredOptions, userOptions)

	doc, err := i.load(ctx, input)
	if err != nil {
		i.log.Errorf("Error: %v", err)
		return domain.Failure(err)
	}

	i.log.Infof("Loaded API: %s (%d top-level resources)", doc.Title, len(doc.Resources))

	collection, environment := convert.New(idGenerator(values), settings(values)).Convert(doc)

	if err := i.validator.Check(schemacheck.Collection, collection); err != nil {
		i.log.Errorf("Error: %v", err)
		return domain.Failure(err)
	}
	if err := i.validator.Check(schemacheck.Environment, environment); err != nil {
		i.log.Errorf("Error: %v", err)
		return domain.Failure(err)
	}

	i.log.Infof("Converted %s: %d requests, %d folders, %d environment values",
		collection.Name, len(collection.Requests), len(collection.Folders), len(environment.Values))

	return domain.Success(collection, environment)
}

// ConvertBatch converts independent inputs concurrently. Results are returned
// in input order.
func (i *Importer) ConvertBatch(ctx context.Context, inputs []domain.Input, userOptions map[string]any) []domain.Result {
	results := make([]domain.Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency)

	for idx, input := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[idx] = domain.Failure(err)
				return nil
			}

			results[idx] = i.Convert(gctx, input, userOptions)
			return nil
		})
	}

	_ = g.Wait()

	return results
}

// Metadata returns the names of the documents input would convert to.
func (i *Importer) Metadata(ctx context.Context, input domain.Input) (domain.Metadata, error) {
	doc, err := i.load(ctx, input)
	if err != nil {
		return domain.Metadata{}, err
	}

	name := convert.CollectionName(doc)

	return domain.Metadata{
		Name: name,
		Output: []domain.OutputMetadata{
			{Type: domain.OutputCollection, Name: name},
			{Type: domain.OutputEnvironment, Name: convert.EnvironmentName(name)},
		},
	}, nil
}

// Validate checks that input looks like a root RAML document without parsing
// it. For fileset inputs the guessed root is reported.
func (i *Importer) Validate(input domain.Input) domain.Validation {
	switch input.Kind {
	case domain.KindText:
		return validation(detect.CheckText(strings.TrimSpace(input.Content)))

	case domain.KindFile:
		content, err := i.store.Read(input.Path)
		if err != nil {
			return validation(err)
		}
		return validation(detect.CheckText(strings.TrimSpace(content)))

	case domain.KindFileSet:
		roots := detect.Roots(input.Files, i.store)
		if len(roots) == 0 {
			return validation(&domain.RootError{})
		}
		return domain.Validation{Result: true, Root: roots[0].Path}

	default:
		return validation(&domain.InputError{Kind: string(input.Kind)})
	}
}

func validation(err error) domain.Validation {
	if err != nil {
		return domain.Validation{Result: false, Reason: domain.Reason(err)}
	}
	return domain.Validation{Result: true}
}

// load parses input into a document, resolving references the way its kind requires.
func (i *Importer) load(ctx context.Context, input domain.Input) (*domain.Document, error) {
	switch input.Kind {
	case domain.KindText:
		loader := raml.NewLoader(resolver.NewDisk(i.store, "."))
		return loader.Parse(ctx, input.Content, ".")

	case domain.KindFile:
		i.log.Infof("Loading RAML specification from: %s", input.Path)

		content, err := i.store.Read(input.Path)
		if err != nil {
			return nil, err
		}

		loader := raml.NewLoader(resolver.NewDisk(i.store, filepath.Dir(input.Path)))
		return loader.ParseSource(ctx, input.Path, content)

	case domain.KindFileSet:
		root, err := detect.DetectRoot(input.Files, i.store)
		if err != nil {
			return nil, err
		}

		i.log.Infof("Detected root RAML specification: %s", root.Path)

		loader := raml.NewLoader(resolver.NewFileSet(i.store, filepath.Dir(root.Path), input.Files))
		return loader.ParseSource(ctx, root.Path, *root.Content)

	default:
		return nil, &domain.InputError{Kind: string(input.Kind)}
	}
}
