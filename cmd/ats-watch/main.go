package main

import (
	"context"
	"github.com/maxaizer/ats-realtime/internal/client"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"github.com/maxaizer/ats-realtime/internal/realtime"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"os/signal"
	"strings"
	"syscall"
)

func init() {
	pflag.String("url", "ws://localhost:8080/ws", "websocket endpoint of the ATS server")
	pflag.Int64("user-id", 0, "id of the user to watch as")
	pflag.String("role", string(entities.RoleAdmin), "role of the user: admin, hiring_manager or recruiter")
	pflag.Duration("heartbeat", client.DefaultHeartbeat, "interval of online presence heartbeats")
	pflag.Bool("debug", false, "log every received message")
}

func printMessage(msg realtime.ServerMessage) {
	switch m := msg.(type) {
	case realtime.UserCreated:
		log.Infof("new user %s (%s)", m.User.Username, m.User.Role)
	case realtime.JobCreated:
		log.Infof("new job #%d %q in %s", m.Job.ID, m.Job.Title, m.Job.Department)
	case realtime.ApplicantCreated:
		log.Infof("new applicant %s %s for job #%d %q", m.Applicant.FirstName, m.Applicant.LastName, m.JobID, m.JobTitle)
	case realtime.PresenceUpdate:
		if m.Action != "" {
			log.Infof("user %d (%s) is %s: %s", m.UserID, m.Role, m.Status, m.Action)
		} else {
			log.Infof("user %d (%s) is %s", m.UserID, m.Role, m.Status)
		}
	case realtime.UserOffline:
		log.Infof("user %d went offline", m.UserID)
	default:
		log.Debugf("received %s", msg.MessageType())
	}
}

func main() {

	pflag.Parse()
	viper.SetEnvPrefix("ats_watch")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		log.Fatalf("can't bind flags: %v", err)
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}

	role, err := entities.ToRole(viper.GetString("role"))
	if err != nil {
		log.Fatalf("%v: %q", err, viper.GetString("role"))
	}
	userID := viper.GetInt64("user-id")
	if userID <= 0 {
		log.Fatal("user-id must be greater than zero")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := client.New(client.Config{
		URL:       viper.GetString("url"),
		UserID:    userID,
		Role:      role,
		Heartbeat: viper.GetDuration("heartbeat"),
		OnMessage: printMessage,
	}, client.NewStore())

	if err = watcher.Connect(ctx); err != nil {
		log.Fatalf("can't connect: %v", err)
	}
	log.Infof("watching %s as user %d (%s)", viper.GetString("url"), userID, role)

	<-ctx.Done()

	if err = watcher.Close(); err != nil {
		log.Warnf("close failed: %v", err)
	}
	log.Infof("%d events in feed at exit", len(watcher.Store().Feed()))
}
