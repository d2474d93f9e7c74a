package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Filter is a single column equality constraint on a table read.
type Filter struct {
	Column string
	Value  string
}

// Eq builds an equality filter.
func Eq(column string, value interface{}) Filter {
	return Filter{Column: column, Value: fmt.Sprintf("%v", value)}
}

// SelectOptions shapes a read against a named table: projection, equality
// filters, ordering, and a row cap. The backend applies row-level security
// on top; this client never mutates.
type SelectOptions struct {
	// Select is the projection, defaulting to "*". Embedded joins use the
	// backend's resource embedding syntax, e.g. "*,author:profiles(full_name)".
	Select string

	// Filters are ANDed equality constraints.
	Filters []Filter

	// OrderBy is the ordering column, empty for query order.
	OrderBy string

	// Descending flips the order direction.
	Descending bool

	// Limit caps the number of returned rows; zero means no cap.
	Limit int
}

func (o SelectOptions) query() url.Values {
	q := url.Values{}

	sel := o.Select
	if sel == "" {
		sel = "*"
	}
	q.Set("select", sel)

	for _, f := range o.Filters {
		q.Set(f.Column, "eq."+f.Value)
	}

	if o.OrderBy != "" {
		dir := "asc"
		if o.Descending {
			dir = "desc"
		}
		q.Set("order", o.OrderBy+"."+dir)
	}

	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}

	return q
}

// Select reads rows from a table into dest, which must be a pointer to a
// slice of the row type.
func (c *Client) Select(ctx context.Context, table string, opts SelectOptions, dest interface{}) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/rest/v1/"+table, opts.query(), nil)
	if err != nil {
		return err
	}
	return parseResponse(resp, dest)
}
