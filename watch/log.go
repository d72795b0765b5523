package watch

import (
	pblog "github.com/poundbot/gamewatch/log"
)

var log = pblog.Log.WithField("sys", "WATCH")
