package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/adityachauhan/aira-apiserver/internal/handler/dto"
)

// Recovery converts panics into the JSON 500 envelope so no fault ever
// propagates as a raw protocol error to the caller.
func Recovery() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				slog.Default().With(
					"request_id", GetRequestID(c),
					"method", string(c.Method()),
					"path", string(c.Path()),
					"panic", fmt.Sprintf("%v", err),
				).Error("panic recovered",
					"stack", string(debug.Stack()),
				)

				c.JSON(consts.StatusInternalServerError, dto.ErrorResponse{
					Error: "internal server error",
				})
				c.Abort()
			}
		}()

		c.Next(ctx)
	}
}
