package convert

import "github.com/GabrielNunesIT/raml-converter/internal/domain"

const defaultVarType = "string"

// EnvironmentBuilder collects environment variables. The first registration of
// a key wins and keys keep the order they were first seen in.
type EnvironmentBuilder struct {
	vars  []domain.EnvVar
	index map[string]int
}

// NewEnvironmentBuilder creates an empty builder.
func NewEnvironmentBuilder() *EnvironmentBuilder {
	return &EnvironmentBuilder{index: make(map[string]int)}
}

// Add registers key unless it is already known. It reports whether key was added.
func (b *EnvironmentBuilder) Add(key, varType, displayName string) bool {
	if _, ok := b.index[key]; ok {
		return false
	}

	if varType == "" {
		varType = defaultVarType
	}
	if displayName == "" {
		displayName = key
	}

	b.index[key] = len(b.vars)
	b.vars = append(b.vars, domain.EnvVar{
		Key:     key,
		Value:   "",
		Type:    varType,
		Name:    displayName,
		Enabled: true,
	})

	return true
}

// AddParam registers a declared parameter.
func (b *EnvironmentBuilder) AddParam(p domain.Param) bool {
	return b.Add(p.Name, p.Type, p.DisplayName)
}

// Len returns the number of registered variables.
func (b *EnvironmentBuilder) Len() int {
	return len(b.vars)
}

// Build produces the environment companion of the named collection.
func (b *EnvironmentBuilder) Build(collectionName string, ids IDGenerator) *domain.Environment {
	values := make([]domain.EnvVar, len(b.vars))
	copy(values, b.vars)

	return &domain.Environment{
		ID:        ids.NewID(),
		Name:      EnvironmentName(collectionName),
		Values:    values,
		Timestamp: ids.Timestamp(),
	}
}

// EnvironmentName returns the name of the environment of the named collection.
func EnvironmentName(collectionName string) string {
	return collectionName + "'s Environment"
}
