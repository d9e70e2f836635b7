package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logging"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

// AllowNetworks only lets through requests whose peer address falls inside
// one of cidrs. An empty list disables the check.
func AllowNetworks(cidrs []string) (func(http.Handler) http.HandlerFunc, error) {

	var networks []*net.IPNet

	for _, cidr := range cidrs {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}

		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("invalid network %q: %w", cidr, err)
		}

		networks = append(networks, network)
	}

	return func(next http.Handler) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			if len(networks) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			ip := net.ParseIP(host)

			for _, network := range networks {
				if ip != nil && network.Contains(ip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			logging.FromContext(r.Context()).Warn("Request from address outside allowed networks",
				slog.String("event", "security"),
				slog.String("source", host))
			response.Error(w, appErrors.ForbiddenError("Source address not allowed"))
		}
	}, nil
}
