package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ctxWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestPage(t *testing.T) {
	skip, limit, err := Page(ctxWithQuery(""))
	require.NoError(t, err)
	assert.Equal(t, 0, skip)
	assert.Equal(t, DefaultLimit, limit)

	skip, limit, err = Page(ctxWithQuery("skip=20&limit=5"))
	require.NoError(t, err)
	assert.Equal(t, 20, skip)
	assert.Equal(t, 5, limit)

	for _, q := range []string{"skip=-1", "skip=x", "limit=0", "limit=1001"} {
		_, _, err = Page(ctxWithQuery(q))
		assert.Error(t, err, q)
	}
}

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, err := ParamID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	c.Params = gin.Params{{Key: "id", Value: "0"}}
	_, err = ParamID(c, "id")
	assert.Error(t, err)
}

func TestOptionalFilters(t *testing.T) {
	c := ctxWithQuery("is_read=true&min_rating=3.5")
	b, err := OptionalBool(c, "is_read")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.True(t, *b)

	missing, err := OptionalBool(c, "is_favorite")
	require.NoError(t, err)
	assert.Nil(t, missing)

	f, err := OptionalFloat(c, "min_rating", 0, 5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, *f)

	_, err = OptionalFloat(ctxWithQuery("min_rating=6"), "min_rating", 0, 5)
	assert.Error(t, err)
}
