package catalogstore

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/junaidrashid-git/storefront-client/api"
	"github.com/junaidrashid-git/storefront-client/models"
)

func newTestStore(t *testing.T, routes func(r *gin.Engine)) *Store {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client := api.New(api.Config{
		BaseURL: srv.URL,
		Tokens:  api.TokenFunc(func() string { return "tok" }),
	})
	return New(client)
}

func TestFetchActive(t *testing.T) {
	s := newTestStore(t, func(r *gin.Engine) {
		r.GET("/products/active", func(c *gin.Context) {
			c.JSON(http.StatusOK, []gin.H{
				{"id": "p1", "name": "Cookie", "price": 10, "isActive": true},
				{"id": "p2", "name": "Brownie", "price": 25, "isActive": true},
			})
		})
	})

	require.NoError(t, s.FetchActive(context.Background()))

	active := s.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "Cookie", active[0].Name)
	assert.False(t, s.Loading())
	assert.Empty(t, s.Err())
}

func TestFetchActiveNonArrayBodyCoercesToEmpty(t *testing.T) {
	bodies := []string{`null`, `{}`, `{"message":"no products"}`, `"oops"`}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			s := newTestStore(t, func(r *gin.Engine) {
				r.GET("/products/active", func(c *gin.Context) {
					c.Data(http.StatusOK, "application/json", []byte(body))
				})
			})

			require.NoError(t, s.FetchActive(context.Background()))
			assert.Empty(t, s.Active())
			assert.Empty(t, s.Err())
		})
	}
}

func TestFetchActiveErrorMessagePreference(t *testing.T) {
	cases := []struct {
		name string
		body gin.H
		want string
	}{
		{"server message", gin.H{"message": "catalog offline"}, "catalog offline"},
		{"server error field", gin.H{"error": "boom"}, "boom"},
		{"no detail", nil, "Failed to load products."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t, func(r *gin.Engine) {
				r.GET("/products/active", func(c *gin.Context) {
					if tc.body == nil {
						c.Status(http.StatusInternalServerError)
						return
					}
					c.JSON(http.StatusInternalServerError, tc.body)
				})
			})

			err := s.FetchActive(context.Background())
			require.Error(t, err)
			assert.Equal(t, tc.want, s.Err())
			assert.False(t, s.Loading())
		})
	}
}

func TestFetchAllAdmin(t *testing.T) {
	s := newTestStore(t, func(r *gin.Engine) {
		r.GET("/products/all", func(c *gin.Context) {
			c.JSON(http.StatusOK, []gin.H{
				{"id": "p1", "name": "Cookie", "isActive": true},
				{"id": "p9", "name": "Retired Roll", "isActive": false},
			})
		})
	})

	require.NoError(t, s.FetchAllAdmin(context.Background()))

	all := s.All()
	require.Len(t, all, 2)
	assert.False(t, all[1].IsActive)
	// The active cache is independent and untouched.
	assert.Empty(t, s.Active())
}

func TestFetchOne(t *testing.T) {
	s := newTestStore(t, func(r *gin.Engine) {
		r.GET("/products/p1", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": "p1", "name": "Cookie", "price": 10, "isActive": true})
		})
	})

	p, err := s.FetchOne(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Cookie", p.Name)

	sel := s.Selected()
	require.NotNil(t, sel)
	assert.Equal(t, "p1", sel.ID)
}

func TestMutatorsHitTheRightEndpoints(t *testing.T) {
	var calls []string
	record := func(c *gin.Context) {
		calls = append(calls, c.Request.Method+" "+c.Request.URL.Path)
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	}

	s := newTestStore(t, func(r *gin.Engine) {
		r.POST("/products", record)
		r.PATCH("/products/p1/update", record)
		r.PATCH("/products/p1/archive", record)
		r.PATCH("/products/p1/activate", record)
	})
	ctx := context.Background()

	_, err := s.AddProduct(ctx, models.ProductPayload{Name: "Cookie", Price: 10})
	require.NoError(t, err)
	_, err = s.UpdateProduct(ctx, "p1", models.ProductPayload{Name: "Cookie", Price: 12})
	require.NoError(t, err)
	_, err = s.ArchiveProduct(ctx, "p1")
	require.NoError(t, err)
	_, err = s.ActivateProduct(ctx, "p1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST /products",
		"PATCH /products/p1/update",
		"PATCH /products/p1/archive",
		"PATCH /products/p1/activate",
	}, calls)

	// Mutators never touch the caches; callers re-fetch.
	assert.Empty(t, s.Active())
	assert.Empty(t, s.All())
}

func TestMutatorReturnsRawResponse(t *testing.T) {
	s := newTestStore(t, func(r *gin.Engine) {
		r.POST("/products", func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"id": "p77", "name": "Eclair"})
		})
	})

	raw, err := s.AddProduct(context.Background(), models.ProductPayload{Name: "Eclair", Price: 30})
	require.NoError(t, err)
	assert.Contains(t, string(raw), "p77")
}

func TestExportXLSX(t *testing.T) {
	s := newTestStore(t, func(r *gin.Engine) {
		r.GET("/products/all", func(c *gin.Context) {
			c.JSON(http.StatusOK, []gin.H{
				{"id": "p1", "name": "Cookie", "price": 10, "stock": 4, "isActive": true},
				{"id": "p2", "name": "Brownie", "price": 25, "stock": 0, "isActive": false},
			})
		})
	})
	require.NoError(t, s.FetchAllAdmin(context.Background()))

	var buf bytes.Buffer
	require.NoError(t, s.ExportXLSX(&buf))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Products", sheet.Name)
	require.Len(t, sheet.Rows, 3) // header + 2 products
	assert.Equal(t, "ID", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "Cookie", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "Brownie", sheet.Rows[2].Cells[1].String())
}
