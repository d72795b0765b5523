package a2s

import (
	pblog "github.com/poundbot/gamewatch/log"
)

var log = pblog.Log.WithField("sys", "A2S")
