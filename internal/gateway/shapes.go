package gateway

import (
	"context"
	"net/http"
	"strconv"
)

// AllShapes fetches every WKT shape for the current owner.
func (c *Client) AllShapes(ctx context.Context) (*ShapeResponse, error) {
	owner, ok := c.owner()
	if !ok {
		return &ShapeResponse{}, nil
	}
	var out ShapeResponse
	if err := c.get(ctx, c.pointsPath(owner, "wkt/all"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ShapeByID fetches one shape.
func (c *Client) ShapeByID(ctx context.Context, id int64) (*Shape, error) {
	owner, ok := c.owner()
	if !ok {
		return nil, nil
	}
	var out ShapeResponse
	if err := c.get(ctx, c.pointsPath(owner, "wkt/"+strconv.FormatInt(id, 10)), nil, &out); err != nil {
		return nil, err
	}
	if len(out.Shapes) == 0 {
		return nil, &NotFoundError{Resource: "shape", ID: id}
	}
	return &out.Shapes[0], nil
}

// CreateShape persists a drawn shape. Failures propagate so the drawing flow
// can surface them.
func (c *Client) CreateShape(ctx context.Context, draft ShapeDraft) (*ShapeResponse, error) {
	owner, ok := c.owner()
	if !ok {
		return nil, ErrNoCredential
	}
	var out ShapeResponse
	if err := c.send(ctx, http.MethodPost, c.pointsPath(owner, "wkt/create"), draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateShape replaces a shape's editable attributes by id.
func (c *Client) UpdateShape(ctx context.Context, id int64, draft ShapeDraft) (*ShapeResponse, error) {
	owner, ok := c.owner()
	if !ok {
		return nil, ErrNoCredential
	}
	payload := Shape{
		ID:            id,
		Name:          draft.Name,
		Description:   draft.Description,
		WKT:           draft.WKT,
		PhotoLocation: draft.PhotoLocation,
		Color:         draft.Color,
		Date:          draft.Date,
	}
	var out ShapeResponse
	if err := c.send(ctx, http.MethodPut, c.pointsPath(owner, "wkt/update/"+strconv.FormatInt(id, 10)), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteShape removes a shape by id.
func (c *Client) DeleteShape(ctx context.Context, id int64) (*Shape, error) {
	owner, ok := c.owner()
	if !ok {
		return nil, ErrNoCredential
	}
	var out Shape
	if err := c.send(ctx, http.MethodDelete, c.pointsPath(owner, "wkt/delete/"+strconv.FormatInt(id, 10)), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
