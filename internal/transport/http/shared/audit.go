package shared

import (
	"context"
	"net"
	"net/http"
	"strings"

	"utamahr/internal/domain/audit"
	"utamahr/internal/domain/auth"
	"utamahr/internal/requestctx"
)

type Auditor interface {
	Record(ctx context.Context, e audit.Entry) error
}

// AuditDownload records that user received a document. Failures are logged, never returned.
func AuditDownload(r *http.Request, a Auditor, user auth.UserContext, entityType, entityID string, detail any) {
	if a == nil {
		return
	}
	err := a.Record(r.Context(), audit.Entry{
		TenantID:   user.TenantID,
		ActorID:    user.UserID,
		Action:     audit.ActionDocumentDownload,
		EntityType: entityType,
		EntityID:   entityID,
		RequestID:  requestctx.GetRequestID(r.Context()),
		IP:         ClientIP(r),
		Detail:     detail,
	})
	if err != nil {
		requestctx.Logger(r.Context()).WithError(err).WithField("entity_type", entityType).Warn("audit record failed")
	}
}

func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
