package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "salesledger/internal/core/context"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorName = "X-Actor-Name"
)

// Actor records who is performing the request, for audit attribution.
// The identity is taken from trusted gateway headers; requests without them
// proceed as anonymous.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(HeaderActorID)
		if actorID == "" {
			c.Next()
			return
		}

		ctx := appctx.WithActor(c.Request.Context(), &appctx.ActorContext{
			ActorID: actorID,
			Name:    c.GetHeader(HeaderActorName),
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
