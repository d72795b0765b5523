package history

import (
	pblog "github.com/poundbot/gamewatch/log"
)

var log = pblog.Log.WithField("sys", "HISTORY")
