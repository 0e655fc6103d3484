package hateoas

import (
	"bytes"

	"github.com/technopolitica/company-employees/internal/paging"
	"github.com/technopolitica/company-employees/internal/shaping"
)

// Capability is the transport's verdict on whether the client negotiated a
// hypermedia representation.
type Capability int

const (
	CapabilityPlain Capability = iota
	CapabilityHypermedia
)

func (c Capability) String() string {
	if c == CapabilityHypermedia {
		return "hypermedia"
	}
	return "plain"
}

type LinkedEntity struct {
	shaping.Entity
	Links []Link
}

// MarshalJSON writes the entity's fields followed by a "links" member.
func (e LinkedEntity) MarshalJSON() ([]byte, error) {
	fields, err := e.Entity.MarshalJSON()
	if err != nil {
		return nil, err
	}
	links := e.Links
	if links == nil {
		links = []Link{}
	}
	encodedLinks, err := marshalUnescaped(links)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Write(fields[:len(fields)-1])
	if e.Entity.Len() > 0 {
		buf.WriteByte(',')
	}
	buf.WriteString(`"links":`)
	buf.Write(encodedLinks)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type LinkCollection struct {
	Value []LinkedEntity `json:"value"`
	Links []Link         `json:"links"`
}

// Response holds exactly one of the two representations of a page.
type Response struct {
	HasLinks       bool
	ShapedEntities []shaping.Entity
	LinkedEntities LinkCollection
}

// Body is the populated representation, ready to be serialized.
func (r Response) Body() any {
	if r.HasLinks {
		return r.LinkedEntities
	}
	return r.ShapedEntities
}

func (r Response) Len() int {
	if r.HasLinks {
		return len(r.LinkedEntities.Value)
	}
	return len(r.ShapedEntities)
}

func Decide(capability Capability, entities []shaping.Entity, meta paging.MetaData, catalog Catalog) Response {
	if capability != CapabilityHypermedia {
		if entities == nil {
			entities = []shaping.Entity{}
		}
		return Response{ShapedEntities: entities}
	}
	linked := make([]LinkedEntity, 0, len(entities))
	for _, entity := range entities {
		linked = append(linked, LinkedEntity{
			Entity: entity,
			Links:  catalog.EntityLinks(entity.ID().String()),
		})
	}
	return Response{
		HasLinks: true,
		LinkedEntities: LinkCollection{
			Value: linked,
			Links: catalog.CollectionLinks(meta),
		},
	}
}
