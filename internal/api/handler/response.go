package handler

import "github.com/labstack/echo/v4"

// successResponse is the canonical envelope for all 2xx responses.
type successResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// respond renders the success envelope. Error responses never pass through
// here; they are rendered centrally by the HTTP error handler.
func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, successResponse{
		Status:  status,
		Code:    "SUCCESS",
		Message: message,
		Data:    data,
	})
}

// paginationMeta carries pagination metadata in list responses.
type paginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}
