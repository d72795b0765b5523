package main

import (
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"

	"github.com/poundbot/gamewatch/discord"
	"github.com/poundbot/gamewatch/history"
	pblog "github.com/poundbot/gamewatch/log"
	"github.com/poundbot/gamewatch/pbclock"
	"github.com/poundbot/gamewatch/probe"
	"github.com/poundbot/gamewatch/report"
	"github.com/poundbot/gamewatch/scheduler"
	"github.com/poundbot/gamewatch/storage"
	"github.com/poundbot/gamewatch/storage/mongodb"
	"github.com/poundbot/gamewatch/storage/sqlite"
	"github.com/poundbot/gamewatch/types"
	"github.com/poundbot/gamewatch/watch"
	"github.com/poundbot/gamewatch/watchapi"

	"github.com/spf13/viper"
)

var (
	version          = "DEVEL"
	buildstamp       = "NOWISH, I GUESS"
	githash          = "GIT HASHY WITH IT"
	versionFlag      = flag.Bool("v", false, "Displays the version and then quits")
	configLocation   = flag.String("c", ".", "The config.json location")
	writeConfig      = flag.Bool("w", false, "Writes a config and exits")
	writeConfigForce = flag.Bool("init", false, "Forces writing of config and exits\nWARNING! This will destroy your config file")
	wg               sync.WaitGroup
	killChan         = make(chan struct{})
	servicesCount    int
	log              = pblog.Log
)

type service interface {
	Start() error
	Stop()
}

func start(s service, name string) error {
	if err := s.Start(); err != nil {
		log.Warnf("Failed to start %s: %s", name, err)
		return fmt.Errorf("failed to start service %s: %w", name, err)
	}

	servicesCount++
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-killChan
		log.Printf("Requesting %s shutdown...", name)
		s.Stop()
	}()

	return nil
}

func versionString() string {
	return fmt.Sprintf("GameWatch %s (%s @ %s)", version, buildstamp, githash)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("discord.token", "YOUR DISCORD BOT AUTH TOKEN")
	v.SetDefault("discord.upload-channel", "")
	v.SetDefault("storage", "sqlite")
	v.SetDefault("sqlite.path", "./gamewatch.db")
	v.SetDefault("mongo.dial", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "gamewatch")
	v.SetDefault("poll.source.interval", watch.DefaultPollInterval.String())
	v.SetDefault("poll.source.delay", watch.DefaultPollDelay.String())
	v.SetDefault("poll.minecraft.interval", watch.DefaultPollInterval.String())
	v.SetDefault("poll.minecraft.delay", watch.DefaultPollDelay.String())
	v.SetDefault("query.source.timeout", "2s")
	v.SetDefault("query.minecraft.timeout", "5s")
	v.SetDefault("history.window", history.DefaultWindow.String())
	v.SetDefault("history.text-window", history.DefaultTextWindow.String())
	v.SetDefault("history.chart-every", history.DefaultChartEvery.String())
	v.SetDefault("http.bind_addr", "")
	v.SetDefault("http.port", 9090)
	v.SetDefault("http.token", "")
	v.SetDefault("profiler.port", 6061)
	v.SetDefault("language", "")
	v.SetDefault("log.level", "info")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

func newStorage(v *viper.Viper) (storage.Storage, error) {
	switch v.GetString("storage") {
	case "sqlite":
		return sqlite.NewSQLite(sqlite.Config{Path: filepath.Clean(v.GetString("sqlite.path"))})
	case "mongodb":
		return mongodb.NewMongoDB(mongodb.Config{
			DialAddress: v.GetString("mongo.dial"),
			Database:    v.GetString("mongo.database"),
		})
	}
	return nil, fmt.Errorf("storage %q: %w", v.GetString("storage"), types.ErrConfiguration)
}

func pollConfig(v *viper.Viper) map[types.ProtocolKind]watch.PollConfig {
	polls := map[types.ProtocolKind]watch.PollConfig{}
	for _, kind := range types.ProtocolKinds {
		polls[kind] = watch.PollConfig{
			Interval: v.GetDuration("poll." + kind.String() + ".interval"),
			Delay:    v.GetDuration("poll." + kind.String() + ".delay"),
		}
	}
	return polls
}

func main() {
	flag.Parse()

	log.Println(versionString())
	if *versionFlag {
		return
	}

	runtime.GOMAXPROCS(runtime.NumCPU())

	viper.SetConfigFile(fmt.Sprintf("%s/config.json", filepath.Clean(*configLocation)))
	setDefaults(viper.GetViper())

	if *writeConfigForce {
		*writeConfig = true
	} else {
		err := viper.ReadInConfig() // Find and read the config file
		if err != nil {
			log.Println(err)
			flag.Usage()
			os.Exit(1)
		}
	}

	if *writeConfig {
		err := viper.WriteConfig()
		if err != nil {
			log.Fatalf("Could not write config: %s", err)
		}
		log.Printf("Wrote new config file to %s", viper.ConfigFileUsed())
		os.Exit(0)
	}

	pblog.SetLevel(viper.GetString("log.level"))
	discord.SetLanguage(viper.GetString("language"), filepath.Clean(*configLocation))

	go func() {
		log.Fatal(http.ListenAndServe("localhost:"+viper.GetString("profiler.port"), nil))
	}()

	store, err := newStorage(viper.GetViper())
	if err != nil {
		log.Fatalf("Could not open storage: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Could not initialize storage: %v", err)
	}

	clk := pbclock.Clock()

	dr, err := discord.NewRunner(viper.GetString("discord.token"))
	if err != nil {
		log.Fatalf("Could not create Discord session: %v", err)
	}

	sampler := history.NewSampler(store.Samples(), viper.GetDuration("history.window"), clk)

	var builder *report.Builder
	if channel := viper.GetString("discord.upload-channel"); channel != "" {
		charts := history.NewChartPublisher(dr.Uploader(channel), viper.GetDuration("history.chart-every"),
			sampler.Window(), clk)
		builder = report.NewBuilder(sampler, charts, viper.GetDuration("history.text-window"), clk)
	} else {
		builder = report.NewBuilder(sampler, nil, viper.GetDuration("history.text-window"), clk)
	}

	probes := probe.NewSet(viper.GetDuration("query.source.timeout"), viper.GetDuration("query.minecraft.timeout"))
	registry := watch.NewRegistry(store.Servers(), probes, sampler, builder, dr.Messenger(), clk)
	dr.RemoveGuildsWith(registry)

	// Discord server
	if err := start(dr, "Discord"); err != nil {
		log.Fatalf("Could not start Discord, %v", err)
	}

	// Pollers
	sched := scheduler.New(clk)
	if err := registry.SchedulePolls(sched, pollConfig(viper.GetViper())); err != nil {
		log.Fatalf("Could not schedule polls, %v", err)
	}
	if err := start(sched, "Scheduler"); err != nil {
		log.Fatalf("Could not start scheduler, %v", err)
	}

	// HTTP API server
	if token := viper.GetString("http.token"); token != "" {
		server := watchapi.NewServer(watchapi.ServerConfig{
			BindAddr: viper.GetString("http.bind_addr"),
			Port:     viper.GetInt("http.port"),
			Token:    token,
		}, registry)
		if err := start(server, "HTTP Server"); err != nil {
			log.Fatalf("Could not start HTTP server, %v", err)
		}
	} else {
		log.Info("http.token is empty, admin API disabled")
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(
		sc,
		syscall.SIGTERM, // "the normal way to politely ask a program to terminate"
		syscall.SIGINT,  // Ctrl+C
		syscall.SIGQUIT, // Ctrl-\
		syscall.SIGHUP,  // "terminal is disconnected"
		os.Interrupt,
	)
	<-sc

	log.Warn("Stopping...")
	for i := 0; i < servicesCount; i++ {
		go func() { killChan <- struct{}{} }()
	}

	wg.Wait()
}
