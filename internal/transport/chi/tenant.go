package chi

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/questionbank/internal/logger"
)

// OrganizationHeader carries the caller's organization, set by the upstream auth layer.
const OrganizationHeader = "X-Organization-ID"

type orgKey struct{}

// TenantMiddleware requires the organization header and stores it in the context.
func TenantMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			org := strings.TrimSpace(r.Header.Get(OrganizationHeader))
			if org == "" {
				writeError(w, http.StatusBadRequest, ErrorCodeMissingOrganization,
					"missing "+OrganizationHeader+" header")
				return
			}
			ctx := context.WithValue(r.Context(), orgKey{}, org)
			ctx = logger.WithFields(ctx, zap.String("organization_id", org))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OrganizationFromContext returns the organization set by TenantMiddleware.
func OrganizationFromContext(ctx context.Context) string {
	org, _ := ctx.Value(orgKey{}).(string)
	return org
}
