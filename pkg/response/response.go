package response

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Meta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int   `json:"total_page"`
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

// Settlement is the money outcome of a request, echoed at the top level of
// the envelope next to data.
type Settlement struct {
	NewBalance    decimal.Decimal  `json:"newBalance"`
	PlatformFee   *decimal.Decimal `json:"platformFee,omitempty"`
	NetAmount     *decimal.Decimal `json:"netAmount,omitempty"`
	TransactionID string           `json:"transactionId,omitempty"`
}

type SettlementResponse struct {
	Response
	Settlement
}

func NewMeta(page, limit int, total int64) *Meta {
	totalPage := 0
	if limit > 0 {
		totalPage = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Meta{Page: page, Limit: limit, Total: total, TotalPage: totalPage}
}

func SuccessResponse(message string, data any) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string, err string) Response {
	return Response{
		Success: false,
		Message: message,
		Error:   err,
	}
}

// WriteSuccess writes a success response to the fiber context
func WriteSuccess(c *fiber.Ctx, code int, message string, data any) error {
	return c.Status(code).JSON(SuccessResponse(message, data))
}

func WriteSuccessWithMeta(c *fiber.Ctx, code int, message string, data any, meta *Meta) error {
	resp := SuccessResponse(message, data)
	resp.Meta = meta
	return c.Status(code).JSON(resp)
}

// WriteSettlement writes a success response carrying s at the top level.
func WriteSettlement(c *fiber.Ctx, code int, message string, data any, s Settlement) error {
	return c.Status(code).JSON(SettlementResponse{
		Response:   SuccessResponse(message, data),
		Settlement: s,
	})
}

// WriteError writes an error response to the fiber context
func WriteError(c *fiber.Ctx, code int, message string, err string) error {
	return c.Status(code).JSON(ErrorResponse(message, err))
}
