package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/legalease/lexctl/pkg/logger"
)

// Recovery turns a handler panic into a 500 with an error body
func Recovery() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				logger.FromContext(ctx).Error("panic recovered",
					"request_id", GetRequestID(c),
					"panic", fmt.Sprintf("%v", err),
					"stack", string(debug.Stack()),
				)

				c.AbortWithStatusJSON(consts.StatusInternalServerError, utils.H{
					"error": "Internal server error",
				})
			}
		}()

		c.Next(ctx)
	}
}
