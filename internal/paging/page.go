package paging

import "encoding/json"

// MetaData describes where a page sits in the filtered collection it was cut from.
type MetaData struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	PageSize    int  `json:"pageSize"`
	TotalCount  int  `json:"totalCount"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

func NewMetaData(totalCount int, params Params) MetaData {
	totalPages := 0
	if params.PageSize > 0 {
		totalPages = (totalCount + params.PageSize - 1) / params.PageSize
	}
	return MetaData{
		CurrentPage: params.PageNumber,
		TotalPages:  totalPages,
		PageSize:    params.PageSize,
		TotalCount:  totalCount,
		HasPrevious: params.PageNumber > 1,
		HasNext:     params.PageNumber < totalPages,
	}
}

// Header serializes the metadata for the X-Pagination response header.
func (m MetaData) Header() string {
	data, err := json.Marshal(m)
	if err != nil {
		// a struct of ints and bools always marshals
		panic(err)
	}
	return string(data)
}

type Page[T any] struct {
	Items    []T
	MetaData MetaData
}

// Slice cuts the requested page out of items, which must already be filtered
// and ordered. A page past the end is empty, not an error.
func Slice[T any](items []T, params Params) Page[T] {
	meta := NewMetaData(len(items), params)
	if params.PageNumber < 1 || params.PageNumber > meta.TotalPages {
		return Page[T]{Items: []T{}, MetaData: meta}
	}
	start := params.Offset()
	end := start + params.PageSize
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{Items: items[start:end:end], MetaData: meta}
}
