package domain

// Data modes a request body can be rendered in.
const (
	DataModeRaw        = "raw"
	DataModeURLEncoded = "urlencoded"
	DataModeParams     = "params"
)

// Collection is the request-collection document produced by a conversion.
type Collection struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Order       []string  `json:"order" yaml:"order"`
	Folders     []Folder  `json:"folders" yaml:"folders"`
	Requests    []Request `json:"requests" yaml:"requests"`
	Timestamp   int64     `json:"timestamp" yaml:"timestamp"`
	Synced      bool      `json:"synced" yaml:"synced"`
}

// Folder groups the requests of one top-level resource.
type Folder struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Description    string   `json:"description" yaml:"description"`
	Order          []string `json:"order" yaml:"order"`
	CollectionName string   `json:"collection_name" yaml:"collection_name"`
	CollectionID   string   `json:"collection_id" yaml:"collection_id"`
}

// Request is a single HTTP request of a collection.
type Request struct {
	ID                string              `json:"id" yaml:"id"`
	CollectionID      string              `json:"collectionId" yaml:"collectionId"`
	Method            string              `json:"method" yaml:"method"`
	Name              string              `json:"name" yaml:"name"`
	URL               string              `json:"url" yaml:"url"`
	Headers           string              `json:"headers" yaml:"headers"`
	DataMode          string              `json:"dataMode" yaml:"dataMode"`
	Data              []map[string]string `json:"data" yaml:"data"`
	RawModeData       string              `json:"rawModeData" yaml:"rawModeData"`
	Description       string              `json:"description" yaml:"description"`
	DescriptionFormat string              `json:"descriptionFormat" yaml:"descriptionFormat"`
	PreRequestScript  string              `json:"preRequestScript" yaml:"preRequestScript"`
	PathVariables     map[string]string   `json:"pathVariables" yaml:"pathVariables"`
	Responses         []any               `json:"responses" yaml:"responses"`
	Tests             string              `json:"tests" yaml:"tests"`
	Time              int64               `json:"time" yaml:"time"`
	Synced            bool                `json:"synced" yaml:"synced"`
}

// Environment is the companion key/value document of a collection.
type Environment struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Values    []EnvVar `json:"values" yaml:"values"`
	Timestamp int64    `json:"timestamp" yaml:"timestamp"`
}

// EnvVar is a placeholder variable discovered from path parameters.
type EnvVar struct {
	Key     string `json:"key" yaml:"key"`
	Value   string `json:"value" yaml:"value"`
	Type    string `json:"type" yaml:"type"`
	Name    string `json:"name" yaml:"name"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}
