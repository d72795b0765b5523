// Package discord connects to the Discord gateway and publishes status
// reports and chart images.
package discord

import (
	"time"

	"github.com/poundbot/gamewatch/pbclock"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

var iclock = pbclock.Clock

const reconnectDelay = time.Second

// A Runner owns the Discord session and keeps it connected.
type Runner struct {
	session *discordgo.Session
	guilds  GuildRemover
	status  chan bool
	stop    chan struct{}
	done    chan struct{}
}

// NewRunner creates the session for token.
func NewRunner(token string) (*Runner, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	return &Runner{
		session: session,
		status:  make(chan bool),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}, nil
}

// RemoveGuildsWith drops the registrations of guilds the bot leaves through
// guilds. It must be called before Start.
func (r *Runner) RemoveGuildsWith(guilds GuildRemover) {
	r.guilds = guilds
}

// Messenger returns the status message surface of the session.
func (r *Runner) Messenger() Messenger {
	return NewMessenger(r.session)
}

// Uploader returns a chart uploader posting to channelID.
func (r *Runner) Uploader(channelID string) ImageUploader {
	return NewImageUploader(r.session, channelID)
}

// Start starts the runner
func (r *Runner) Start() error {
	r.session.AddHandler(r.ready)
	r.session.AddHandler(disconnected(r.status, r.stop))
	r.session.AddHandler(r.resumed)
	if r.guilds != nil {
		r.session.AddHandler(newGuildDelete(r.guilds))
	}

	go r.runner()

	connect(r.session, reconnectDelay, r.stop)
	return nil
}

// Stop stops the runner
func (r *Runner) Stop() {
	log.WithFields(logrus.Fields{"ssys": "RUNNER"}).Info("Disconnecting...")
	close(r.stop)
	r.session.Close()
	<-r.done
}

func (r *Runner) runner() {
	rLog := log.WithFields(logrus.Fields{"ssys": "RUNNER"})
	defer close(r.done)
	defer rLog.Warn("Runner exited")

	connectedState := false

	for {
		if connectedState {
			rLog.Info("Connected, publishing status reports")
		Reading:
			for {
				select {
				case <-r.stop:
					return
				case connectedState = <-r.status:
					if !connectedState {
						rLog.Warn("Received disconnected message")
						break Reading
					}
					rLog.Info("Received unexpected connected message")
				}
			}
		}
	Connecting:
		for {
			rLog.Info("Waiting for connected state...")
			select {
			case <-r.stop:
				return
			case connectedState = <-r.status:
			}
			if connectedState {
				rLog.WithField("ssys", "CONN").Info("Received connected message")
				break Connecting
			}
			rLog.WithField("ssys", "CONN").Info("Received disconnected message")
		}
	}
}

func (r *Runner) resumed(s *discordgo.Session, event *discordgo.Resumed) {
	log.WithField("ssys", "CONN").Info("Resumed connection")
	r.signal(true)
}

// This function will be called (due to AddHandler above) when the bot receives
// the "ready" event from Discord.
func (r *Runner) ready(s *discordgo.Session, event *discordgo.Ready) {
	log.WithFields(logrus.Fields{"ssys": "CONN", "guilds": len(event.Guilds)}).Info("Connection Ready")

	if err := s.UpdateWatchStatus(0, localize("DiscordStatus", "game servers")); err != nil {
		log.WithError(err).Warn("Could not set presence")
	}
	r.signal(true)
}

func (r *Runner) signal(connected bool) {
	select {
	case r.status <- connected:
	case <-r.stop:
	}
}
