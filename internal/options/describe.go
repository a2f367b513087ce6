package options

// Info is the serializable description of a declared option.
type Info struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	Default          any    `json:"default"`
	Description      string `json:"description"`
	AvailableOptions []any  `json:"availableOptions,omitempty"`
}

// Describe renders the declared options as a catalogue.
func Describe(declared []Option) []Info {
	infos := make([]Info, 0, len(declared))

	for _, opt := range declared {
		switch o := opt.(type) {
		case Boolean:
			infos = append(infos, Info{ID: o.ID, Name: o.Name, Type: o.Type(), Default: o.Default, Description: o.Description})
		case Enum:
			infos = append(infos, Info{
				ID:               o.ID,
				Name:             o.Name,
				Type:             o.Type(),
				Default:          o.Default,
				Description:      o.Description,
				AvailableOptions: o.AvailableOptions,
			})
		case Array:
			infos = append(infos, Info{ID: o.ID, Name: o.Name, Type: o.Type(), Default: defaultArray(o), Description: o.Description})
		}
	}

	return infos
}
