package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

func (c *Client) pointsPath(owner int64, rest string) string {
	return fmt.Sprintf("/Values/%d/%s", owner, rest)
}

// AllPoints fetches every point for the current owner. With no resolvable
// owner it returns an empty result without touching the network.
func (c *Client) AllPoints(ctx context.Context) (*PointResponse, error) {
	owner, ok := c.owner()
	if !ok {
		return &PointResponse{}, nil
	}
	var out PointResponse
	if err := c.get(ctx, c.pointsPath(owner, "getAll"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GeneratePoints asks the backend to bulk-generate points for the owner and
// returns them.
func (c *Client) GeneratePoints(ctx context.Context) (*PointResponse, error) {
	owner, ok := c.owner()
	if !ok {
		return &PointResponse{}, nil
	}
	var out PointResponse
	if err := c.get(ctx, c.pointsPath(owner, "generate"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PointByID fetches one point.
func (c *Client) PointByID(ctx context.Context, id int64) (*Point, error) {
	owner, ok := c.owner()
	if !ok {
		return nil, nil
	}
	var out PointResponse
	if err := c.get(ctx, c.pointsPath(owner, "point/"+strconv.FormatInt(id, 10)), nil, &out); err != nil {
		return nil, err
	}
	if len(out.Points) == 0 {
		return nil, &NotFoundError{Resource: "point", ID: id}
	}
	return &out.Points[0], nil
}

// PointsInRadius fetches points inside a circle given by center and radius.
func (c *Client) PointsInRadius(ctx context.Context, circleX, circleY, radius float64) (*PointResponse, error) {
	owner, ok := c.owner()
	if !ok {
		return &PointResponse{}, nil
	}
	q := url.Values{}
	q.Set("circleX", formatCoord(circleX))
	q.Set("circleY", formatCoord(circleY))
	q.Set("radius", formatCoord(radius))
	var out PointResponse
	if err := c.get(ctx, c.pointsPath(owner, "pointsInRadius"), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NearestPoint fetches the point closest to the given coordinates.
func (c *Client) NearestPoint(ctx context.Context, x, y float64) (*PointResponse, error) {
	owner, ok := c.owner()
	if !ok {
		return &PointResponse{}, nil
	}
	q := url.Values{}
	q.Set("X", formatCoord(x))
	q.Set("Y", formatCoord(y))
	var out PointResponse
	if err := c.get(ctx, c.pointsPath(owner, "getNearestPoint"), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search fetches points within a square range around the given coordinates.
func (c *Client) Search(ctx context.Context, x, y, rng float64) (*PointResponse, error) {
	owner, ok := c.owner()
	if !ok {
		return &PointResponse{}, nil
	}
	q := url.Values{}
	q.Set("x", formatCoord(x))
	q.Set("y", formatCoord(y))
	q.Set("range", formatCoord(rng))
	var out PointResponse
	if err := c.get(ctx, c.pointsPath(owner, "search"), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Count returns the number of points the owner has.
func (c *Client) Count(ctx context.Context) (int, error) {
	owner, ok := c.owner()
	if !ok {
		return 0, nil
	}
	var out CountResponse
	if err := c.get(ctx, c.pointsPath(owner, "count"), nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// Distance returns the distance between two named points. The remote endpoint
// responds with a bare JSON number.
func (c *Client) Distance(ctx context.Context, pointName1, pointName2 string) (float64, error) {
	owner, ok := c.owner()
	if !ok {
		return 0, nil
	}
	q := url.Values{}
	q.Set("pointName1", pointName1)
	q.Set("pointName2", pointName2)
	var out float64
	if err := c.get(ctx, c.pointsPath(owner, "distance"), q, &out); err != nil {
		return 0, err
	}
	return out, nil
}

// CreatePoint persists a new point. Write failures propagate to the caller.
func (c *Client) CreatePoint(ctx context.Context, x, y float64, name string) (*Point, error) {
	owner, ok := c.owner()
	if !ok {
		return nil, ErrNoCredential
	}
	payload := Point{X: x, Y: y, Name: name}
	var out Point
	if err := c.send(ctx, http.MethodPost, c.pointsPath(owner, "add"), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePoint replaces a point's coordinates and name, stamping the update
// time.
func (c *Client) UpdatePoint(ctx context.Context, id int64, x, y float64, name string) (*Point, error) {
	owner, ok := c.owner()
	if !ok {
		return nil, ErrNoCredential
	}
	payload := Point{
		ID:   id,
		X:    x,
		Y:    y,
		Name: name,
		Date: time.Now().UTC().Format(time.RFC3339),
	}
	var out Point
	if err := c.send(ctx, http.MethodPut, c.pointsPath(owner, "point/"+strconv.FormatInt(id, 10)), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePointByName updates the point currently named nameID.
func (c *Client) UpdatePointByName(ctx context.Context, nameID string, x, y float64, name string) (*Point, error) {
	owner, ok := c.owner()
	if !ok {
		return nil, ErrNoCredential
	}
	payload := Point{X: x, Y: y, Name: name}
	var out Point
	if err := c.send(ctx, http.MethodPut, c.pointsPath(owner, "updateByName/"+url.PathEscape(nameID)), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePoint removes a point by id and returns the deleted entity.
func (c *Client) DeletePoint(ctx context.Context, id int64) (*Point, error) {
	owner, ok := c.owner()
	if !ok {
		return nil, ErrNoCredential
	}
	var out Point
	if err := c.send(ctx, http.MethodDelete, c.pointsPath(owner, "point/"+strconv.FormatInt(id, 10)), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePointByName removes a point by its display name.
func (c *Client) DeletePointByName(ctx context.Context, name string) (*Point, error) {
	owner, ok := c.owner()
	if !ok {
		return nil, ErrNoCredential
	}
	var out Point
	if err := c.send(ctx, http.MethodDelete, c.pointsPath(owner, "name/"+url.PathEscape(name)), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
