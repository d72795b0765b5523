package discord

import (
	"time"

	"github.com/sirupsen/logrus"
)

type sessionOpener interface {
	Open() error
}

// connect opens sess, retrying every retry until it succeeds or stop is
// closed.
func connect(sess sessionOpener, retry time.Duration, stop <-chan struct{}) bool {
	cLog := log.WithFields(logrus.Fields{"ssys": "CONN"})
	cLog.Info("Connecting")

	for {
		err := sess.Open()
		if err == nil {
			cLog.Info("Connected")
			return true
		}

		cLog.WithError(err).Warn("Error connecting, attempting reconnect...")
		select {
		case <-stop:
			return false
		case <-iclock().After(retry):
		}
	}
}
