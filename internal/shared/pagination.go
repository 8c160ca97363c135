package shared

import (
	"net/url"
	"strconv"
)

// Pagination selects a window of a listing. A nil Limit returns every row from Offset on.
type Pagination struct {
	Limit  *int
	Offset int
}

// ExtractPagination reads limit and offset from a query string. An empty query yields
// the zero window; any other query must carry both parameters as non-negative integers.
func ExtractPagination(query url.Values) (Pagination, error) {
	if len(query) == 0 {
		return Pagination{}, nil
	}
	if !query.Has("limit") || !query.Has("offset") {
		return Pagination{}, ErrMissingParameters
	}
	limit, err := parseNonNegative(query.Get("limit"))
	if err != nil {
		return Pagination{}, Wrap(KindBadRequest, "cannot parse parameter limit", err)
	}
	offset, err := parseNonNegative(query.Get("offset"))
	if err != nil {
		return Pagination{}, Wrap(KindBadRequest, "cannot parse parameter offset", err)
	}
	return Pagination{Limit: &limit, Offset: offset}, nil
}

func parseNonNegative(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, strconv.ErrRange
	}
	return v, nil
}
