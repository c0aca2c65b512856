package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateShape(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/Values/9/wkt/create", r.URL.Path)
		var draft ShapeDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, "POLYGON((0 0,0 10,10 10,10 0,0 0))", draft.WKT)
		json.NewEncoder(w).Encode(ShapeResponse{
			Shapes:          []Shape{{ID: 3, Name: draft.Name, WKT: draft.WKT}},
			ResponseMessage: "created",
			Success:         true,
		})
	}))

	resp, err := c.CreateShape(context.Background(), ShapeDraft{
		Name: "field",
		WKT:  "POLYGON((0 0,0 10,10 10,10 0,0 0))",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, resp.Shapes, 1)
	assert.EqualValues(t, 3, resp.Shapes[0].ID)
}

func TestCreateShapeFailurePropagates(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad wkt", http.StatusBadRequest)
	}))

	_, err := c.CreateShape(context.Background(), ShapeDraft{WKT: "POLYGON EMPTY"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestShapeByID(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Values/9/wkt/4", r.URL.Path)
		json.NewEncoder(w).Encode(ShapeResponse{
			Shapes:  []Shape{{ID: 4, Name: "zone", WKT: "POLYGON((0 0,1 0,1 1,0 0))", Color: "#00ff00"}},
			Success: true,
		})
	}))

	s, err := c.ShapeByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "zone", s.Name)
	assert.Equal(t, "#00ff00", s.Color)
}

func TestShapeByIDNotFound(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ShapeResponse{Success: false})
	}))

	_, err := c.ShapeByID(context.Background(), 99)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.EqualValues(t, 99, nf.ID)
}

func TestDeleteShape(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/Values/9/wkt/delete/4", r.URL.Path)
		json.NewEncoder(w).Encode(Shape{ID: 4})
	}))

	s, err := c.DeleteShape(context.Background(), 4)
	require.NoError(t, err)
	assert.EqualValues(t, 4, s.ID)
}
