package gateway

// Point is a persisted map point. The remote API is inconsistent about
// coordinate field casing (X_coordinate vs x_coordinate); decoding relies on
// encoding/json's case-insensitive field matching so either casing lands in
// the one canonical schema, and outgoing payloads always use the lowercase
// form.
type Point struct {
	ID      int64   `json:"id"`
	X       float64 `json:"x_coordinate"`
	Y       float64 `json:"y_coordinate"`
	Name    string  `json:"name"`
	Date    string  `json:"date,omitempty"`
	OwnerID int64   `json:"ownerId,omitempty"`
}

// PointResponse is the envelope the remote API wraps point results in. Both
// single- and multi-point endpoints return the "point" array.
type PointResponse struct {
	Points          []Point `json:"point"`
	ResponseMessage string  `json:"responseMessage,omitempty"`
	Success         bool    `json:"success,omitempty"`
}

// Shape is a persisted WKT shape.
type Shape struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	WKT           string `json:"wkt"`
	PhotoLocation string `json:"photoLocation"`
	Color         string `json:"color"`
	Date          string `json:"date"`
	OwnerID       int64  `json:"ownerId,omitempty"`
}

// ShapeDraft is the payload for creating or updating a shape.
type ShapeDraft struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	WKT           string `json:"wkt"`
	PhotoLocation string `json:"photoLocation"`
	Color         string `json:"color"`
	Date          string `json:"date"`
}

// ShapeResponse is the envelope for shape results.
type ShapeResponse struct {
	Shapes          []Shape `json:"wkt"`
	ResponseMessage string  `json:"responseMessage,omitempty"`
	Success         bool    `json:"success,omitempty"`
}

// CountResponse carries the point count for the current owner.
type CountResponse struct {
	Count int `json:"count"`
}

// LoginResult is the Auth/login response.
type LoginResult struct {
	Token   string `json:"token"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// User mirrors the remote user aggregate.
type User struct {
	UserID      int64   `json:"userId"`
	UserName    string  `json:"userName"`
	UserEmail   string  `json:"userEmail"`
	CreatedDate string  `json:"createdDate,omitempty"`
	UserShapes  []Shape `json:"userShapes"`
	UserPoints  []Point `json:"userPoints"`
	UserTabs    []any   `json:"userTabs"`
}
