package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/utils"
)

// bindJSON decodes a raw body that was already read, e.g. for signature
// verification.
func bindJSON(body []byte, target interface{}) error {
	return json.Unmarshal(body, target)
}

// currentUserID reads the authenticated user's ID set by the auth middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	return id, ok
}

// objectIDParam parses the named path parameter as an ObjectID and writes the
// error response itself on failure.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}

// viewerKey identifies an anonymous visitor for view de-duplication. The
// client IP is enough; logged-in admins are not counted differently.
func viewerKey(c *gin.Context) string {
	return c.ClientIP()
}
