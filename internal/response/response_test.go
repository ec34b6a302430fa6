package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/fail", func(c *gin.Context) {
		FailWithFields(c, http.StatusBadRequest, ErrValidation, map[string]string{"answer.choice": "This field is required."})
	})
	return r
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newEngine()

	cases := []struct {
		name   string
		header string
		reuse  bool
	}{
		{"client id reused", "trace-123", true},
		{"missing id minted", "", false},
		{"whitespace rejected", "has space", false},
		{"oversized rejected", strings.Repeat("a", 65), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/fail", nil)
			if tc.header != "" {
				req.Header.Set(HeaderRequestID, tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(HeaderRequestID)
			require.NotEmpty(t, got)
			if tc.reuse {
				assert.Equal(t, tc.header, got)
			} else {
				assert.NotEqual(t, tc.header, got)
				assert.Len(t, got, 36)
			}

			var body Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, got, body.Metadata.RequestID)
		})
	}
}

func TestFailWithFields_Envelope(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Nil(t, body.Data)
	assert.Equal(t, ErrValidation, body.Error.Code)
	assert.Equal(t, GetMessage(ErrValidation), body.Error.Message)
	assert.Equal(t, "This field is required.", body.Error.Fields["answer.choice"])
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, &Pagination{Page: 2, PerPage: 10, TotalItems: 21, TotalPages: 3}, NewPagination(2, 10, 21))
	assert.Equal(t, 0, NewPagination(1, 10, 0).TotalPages)
}
