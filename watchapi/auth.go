package watchapi

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/poundbot/gamewatch/types"

	"github.com/blang/semver"
)

const versionHeader = "X-GameWatch-Client-Version"

// MinClientVersion is the oldest client accepted when it sends its version.
var MinClientVersion = semver.Version{Major: 1}

type apiAuth struct {
	token      string
	minVersion semver.Version
}

func (a apiAuth) handle(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if v := r.Header.Get(versionHeader); v != "" {
				version, err := semver.ParseTolerant(v)
				if err != nil {
					handleError(w, r, types.RESTError{
						StatusCode: http.StatusBadRequest,
						Error:      "Could not read client version " + v,
					})
					return
				}
				if version.LT(a.minVersion) {
					handleError(w, r, types.RESTError{
						StatusCode: http.StatusBadRequest,
						Error:      "Client must be at least version " + a.minVersion.String(),
					})
					return
				}
			}

			s := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
			if len(s) != 2 || !strings.EqualFold(s[0], "Bearer") {
				handleError(w, r, types.RESTError{StatusCode: http.StatusUnauthorized, Error: "Missing bearer token"})
				return
			}
			if subtle.ConstantTimeCompare([]byte(s[1]), []byte(a.token)) != 1 {
				logWithRequest(r).Warn("Invalid token")
				handleError(w, r, types.RESTError{StatusCode: http.StatusUnauthorized, Error: "Invalid token"})
				return
			}

			next.ServeHTTP(w, r)
		},
	)
}
