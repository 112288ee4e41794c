package api

import (
	"fmt"
	"net/http"
	"strconv"

	service "github.com/okian/benchboard/internal/app"
)

// parseQuery reads start, end and k. Missing bounds cover all time; a
// missing k leaves the service default.
func parseQuery(r *http.Request) (service.Query, error) {
	q, err := readQuery(r)
	return q, Wrap("api.parse_query", err)
}

func readQuery(r *http.Request) (service.Query, error) {
	q := service.AllTime()
	values := r.URL.Query()

	if v := values.Get("start"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return q, fmt.Errorf("start: %w", err)
		}
		q.Start = n
	}
	if v := values.Get("end"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return q, fmt.Errorf("end: %w", err)
		}
		q.End = n
	}
	if v := values.Get("k"); v != "" {
		k, err := strconv.ParseFloat(v, 64)
		if err != nil || k <= 0 {
			return q, fmt.Errorf("k must be a positive number, got %q", v)
		}
		q.KFactor = k
	}
	return q, q.Validate()
}
