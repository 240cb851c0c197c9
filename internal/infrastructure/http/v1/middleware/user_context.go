package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"nordlager/internal/core/apperror"
	appctx "nordlager/internal/core/context"
	"nordlager/internal/core/entity"
)

const (
	HeaderUserID     = "X-User-ID"
	HeaderCustomerID = "X-Customer-ID"
	HeaderUserName   = "X-User-Name"
	HeaderUserRole   = "X-User-Role"
	HeaderPlatform   = "X-Platform"
)

// UserContext builds the acting user's identity from trusted upstream
// headers. Authentication happens at the gateway; this service only needs
// the identity for history snapshots and tenant scoping.
//
// X-Customer-ID is required. X-User-ID may be absent for API-key callers;
// history rows then fall back to the name/role headers.
func UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, err := strconv.ParseInt(c.GetHeader(HeaderCustomerID), 10, 64)
		if err != nil || customerID <= 0 {
			_ = c.Error(apperror.NewValidation("missing or invalid " + HeaderCustomerID + " header"))
			c.Abort()
			return
		}

		var userID int64
		if raw := c.GetHeader(HeaderUserID); raw != "" {
			userID, err = strconv.ParseInt(raw, 10, 64)
			if err != nil {
				_ = c.Error(apperror.NewValidation("invalid " + HeaderUserID + " header"))
				c.Abort()
				return
			}
		}

		platform := entity.Platform(c.GetHeader(HeaderPlatform))
		if !platform.Valid() {
			platform = entity.PlatformExt
		}

		user := &appctx.UserContext{
			UserID:     userID,
			CustomerID: customerID,
			UserName:   c.GetHeader(HeaderUserName),
			UserRole:   c.GetHeader(HeaderUserRole),
			Platform:   platform,
		}

		ctx := appctx.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
