package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction is one structured audit trail entry: who did what to
// which resource, and whether it succeeded.
type AuditAction struct {
	Action       string                 `json:"action"`        // e.g. "record_create", "enterprise_disable"
	UserID       string                 `json:"user_id"`       // Acting user
	ResourceID   string                 `json:"resource_id"`   // Affected resource
	ResourceType string                 `json:"resource_type"` // e.g. "document", "record", "enterprise"
	Success      bool                   `json:"success"`
	IP           string                 `json:"ip"`
	UserAgent    string                 `json:"user_agent"`
	Details      map[string]interface{} `json:"details"`
	Timestamp    time.Time              `json:"timestamp"`
}

// LogAction writes one audit entry. Fire-and-forget: audit failures
// must never fail the request being logged, so nothing is returned.
func LogAction(action string, success bool, c fiber.Ctx, details map[string]interface{}) {
	auditLogger := GetAuditLogger()

	if details == nil {
		details = make(map[string]interface{})
	}

	audit := AuditAction{
		Action:    action,
		Success:   success,
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
		Details:   details,
		Timestamp: time.Now(),
	}

	if userID := c.Locals("user_id"); userID != nil {
		if uid, ok := userID.(string); ok {
			audit.UserID = uid
		}
	}

	if enterpriseID := c.Locals("enterprise_id"); enterpriseID != nil {
		if eid, ok := enterpriseID.(string); ok {
			audit.Details["enterprise_id"] = eid
		}
	}

	if requestID := c.Get("X-Request-ID"); requestID != "" {
		audit.Details["request_id"] = requestID
	}

	auditLogger.WithFields(logrus.Fields{
		"action":        audit.Action,
		"user_id":       audit.UserID,
		"resource_id":   audit.ResourceID,
		"resource_type": audit.ResourceType,
		"success":       audit.Success,
		"ip":            audit.IP,
		"user_agent":    audit.UserAgent,
		"details":       audit.Details,
		"timestamp":     audit.Timestamp,
	}).Info("Audit log")
}

// LogCRUD records a CRUD operation on a resource.
func LogCRUD(operation string, resourceType string, resourceID string, success bool, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["operation"] = operation
	details["resource_type"] = resourceType
	details["resource_id"] = resourceID

	LogAction("crud_"+operation, success, c, details)
}

// LogAuth records an authentication event.
func LogAuth(action string, success bool, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["auth_action"] = action

	LogAction("auth_"+action, success, c, details)
}
