package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Page reads skip/limit query parameters. skip defaults to 0 and limit to
// DefaultLimit; limit must lie in [1, MaxLimit].
func Page(c *gin.Context) (skip, limit int, err error) {
	skip, limit = 0, DefaultLimit
	if v := c.Query("skip"); v != "" {
		skip, err = strconv.Atoi(v)
		if err != nil || skip < 0 {
			return 0, 0, fmt.Errorf("skip must be a non-negative integer")
		}
	}
	if v := c.Query("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 || limit > MaxLimit {
			return 0, 0, fmt.Errorf("limit must be between 1 and %d", MaxLimit)
		}
	}
	return skip, limit, nil
}

// ParamID parses a positive int64 path parameter.
func ParamID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// OptionalBool parses a query parameter into *bool; absent means nil.
func OptionalBool(c *gin.Context, name string) (*bool, error) {
	v, ok := c.GetQuery(name)
	if !ok || v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be a boolean", name)
	}
	return &b, nil
}

// OptionalFloat parses a query parameter into *float64 bounded by [lo, hi].
func OptionalFloat(c *gin.Context, name string, lo, hi float64) (*float64, error) {
	v, ok := c.GetQuery(name)
	if !ok || v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < lo || f > hi {
		return nil, fmt.Errorf("%s must be a number between %g and %g", name, lo, hi)
	}
	return &f, nil
}
