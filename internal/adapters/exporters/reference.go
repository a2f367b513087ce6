package exporters

import (
	"fmt"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
)

const looseRequestsTitle = "Requests"

// reference is the printable layout of an output shared by the document exporters.
type reference struct {
	title       string
	subtitle    string
	description string
	sections    []section
	variables   []domain.EnvVar
}

// section is one folder of a collection, or its top-level requests.
type section struct {
	title       string
	description string
	requests    []domain.Request
}

func newReference(out domain.Output) (*reference, error) {
	switch data := out.Data.(type) {
	case *domain.Collection:
		return collectionReference(data), nil
	case *domain.Environment:
		return &reference{
			title:     data.Name,
			subtitle:  "Environment",
			variables: data.Values,
		}, nil
	default:
		return nil, fmt.Errorf("cannot render %s output of type %T", out.Type, out.Data)
	}
}

// collectionReference lays out folders first, in collection order, then the
// requests listed directly in the collection order.
func collectionReference(c *domain.Collection) *reference {
	ref := &reference{
		title:       c.Name,
		subtitle:    "Request collection",
		description: c.Description,
	}

	byID := make(map[string]domain.Request, len(c.Requests))
	for _, req := range c.Requests {
		byID[req.ID] = req
	}

	// Deterministic collections carry empty ids, so order entries cannot be followed.
	if len(byID) != len(c.Requests) {
		if len(c.Requests) > 0 {
			ref.sections = []section{{title: looseRequestsTitle, requests: c.Requests}}
		}
		return ref
	}

	pick := func(ids []string) []domain.Request {
		requests := make([]domain.Request, 0, len(ids))
		for _, id := range ids {
			if req, ok := byID[id]; ok {
				requests = append(requests, req)
			}
		}
		return requests
	}

	for _, folder := range c.Folders {
		ref.sections = append(ref.sections, section{
			title:       folder.Name,
			description: folder.Description,
			requests:    pick(folder.Order),
		})
	}

	if loose := pick(c.Order); len(loose) > 0 {
		ref.sections = append(ref.sections, section{title: looseRequestsTitle, requests: loose})
	}

	return ref
}
