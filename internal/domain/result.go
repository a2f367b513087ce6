package domain

// Output types of a successful conversion.
const (
	OutputCollection  = "collection"
	OutputEnvironment = "environment"
)

// Output is one document produced by a conversion.
type Output struct {
	Type string `json:"type" yaml:"type"`
	Data any    `json:"data" yaml:"data"`
}

// Result is the envelope returned for every conversion call.
type Result struct {
	Result bool     `json:"result" yaml:"result"`
	Reason string   `json:"reason,omitempty" yaml:"reason,omitempty"`
	Output []Output `json:"output,omitempty" yaml:"output,omitempty"`

	// Err holds the typed failure behind Reason.
	Err error `json:"-" yaml:"-"`
}

// Success wraps a converted collection and its environment.
func Success(collection *Collection, environment *Environment) Result {
	return Result{
		Result: true,
		Output: []Output{
			{Type: OutputCollection, Data: collection},
			{Type: OutputEnvironment, Data: environment},
		},
	}
}

// Failure wraps a conversion error.
func Failure(err error) Result {
	return Result{
		Result: false,
		Reason: Reason(err),
		Err:    err,
	}
}

// Collection returns the collection document of a successful result.
func (r Result) Collection() *Collection {
	for _, out := range r.Output {
		if c, ok := out.Data.(*Collection); ok && out.Type == OutputCollection {
			return c
		}
	}

	return nil
}

// Environment returns the environment document of a successful result.
func (r Result) Environment() *Environment {
	for _, out := range r.Output {
		if e, ok := out.Data.(*Environment); ok && out.Type == OutputEnvironment {
			return e
		}
	}

	return nil
}

// Validation is the outcome of a cheap input check done without converting.
type Validation struct {
	Result bool   `json:"result"`
	Reason string `json:"reason,omitempty"`
	// Root is the detected root file for fileset inputs.
	Root string `json:"root,omitempty"`
}

// Metadata describes the documents a conversion would produce.
type Metadata struct {
	Name   string           `json:"name"`
	Output []OutputMetadata `json:"output"`
}

// OutputMetadata names one document of a conversion.
type OutputMetadata struct {
	Type string `json:"type"`
	Name string `json:"name"`
}
