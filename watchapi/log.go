package watchapi

import (
	"net/http"

	pblog "github.com/poundbot/gamewatch/log"

	"github.com/sirupsen/logrus"
)

var log = pblog.Log.WithField("sys", "API")

func logWithRequest(r *http.Request) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"URI": r.RequestURI,
		"rID": requestID(r.Context()),
	})
}
