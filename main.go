package main

import (
	"context"
	"fmt"
	golog "log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"
	"time"

	"gioui.org/app"

	"github.com/ltp456/uwallet/libwallet"
	"github.com/ltp456/uwallet/libwallet/utils"
	"github.com/ltp456/uwallet/libwallet/walletdata"
	"github.com/ltp456/uwallet/ui"
	"github.com/ltp456/uwallet/ui/load"
	"github.com/ltp456/uwallet/ui/notification"
)

const (
	appName = "uwallet"

	devBuild  = "dev"
	prodBuild = "prod"

	// connectTimeout bounds the websocket handshake with the node.
	connectTimeout = 30 * time.Second
)

var (
	// Version is the application version. It is set using the -ldflags
	Version = "0.1.0"
	// BuildDate is the date the application was built. It is set using the -ldflags
	BuildDate string
	// BuildEnv is the build environment. It is set using the -ldflags
	BuildEnv = devBuild
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	if cfg.Profile > 0 {
		go func() {
			golog.Printf("Starting profiling server on port %d\n", cfg.Profile)
			golog.Println(http.ListenAndServe(fmt.Sprintf("127.0.0.1:%d", cfg.Profile), nil))
		}()
	}

	var buildDate time.Time
	if BuildEnv == prodBuild {
		buildDate, err = time.Parse(time.RFC3339, BuildDate)
		if err != nil {
			fmt.Printf("Error: %s\n", err.Error())
			return
		}
	} else {
		buildDate = time.Now()
	}

	logFile := filepath.Join(cfg.LogDir, utils.LogFileName)
	initLogRotator(logFile, cfg.MaxLogZips)

	l, err := loadApp(cfg, buildDate)
	if err != nil {
		log.Errorf("Startup failed: %v", err)
		fmt.Printf("Error: %s\n", err.Error())
		logRotator.Close()
		return
	}
	l.LogFile = logFile

	win, err := ui.CreateWindow(l)
	if err != nil {
		log.Errorf("Could not initialize window: %s\n", err)
		return
	}

	go func() {
		// Wait until we receive the shutdown request.
		<-win.Quit
		// Terminate all the backend processes safely.
		shutdown(l)
		// Backend process terminated safely trigger app shutdown now.
		win.IsShutdown <- struct{}{}
	}()

	go func() {
		// blocks until the backend processes terminate.
		win.HandleEvents()
		logRotator.Close()
		// Exit the app.
		os.Exit(0)
	}()

	// Start the GUI frontend.
	app.Main()
}

// loadApp opens the app data of the selected network and connects to its
// node. The command line network and endpoint take precedence over the
// app config.
func loadApp(cfg *config, buildDate time.Time) (*load.Load, error) {
	// Load the app-wide config which stores information such as the network
	// last used by the user.
	appCfg, err := load.AppConfigFromFile(filepath.Join(cfg.HomeDir, "config.json"))
	if err != nil {
		return nil, err
	}

	values := appCfg.Values()
	if cfg.Network != "" {
		values.NetType = cfg.Network
		if err := appCfg.Update(func(v *load.AppConfigValues) { v.NetType = cfg.Network }); err != nil {
			log.Warnf("Unable to persist network selection: %v", err)
		}
	}
	if cfg.RPCEndpoint != "" {
		values.RPCEndpoint = cfg.RPCEndpoint
	}
	net, endpoint, err := values.NetParams()
	if err != nil {
		return nil, err
	}

	dataDir := filepath.Join(cfg.HomeDir, string(net.Network))
	if err := os.MkdirAll(dataDir, utils.UserFilePerm); err != nil {
		return nil, err
	}
	if err := utils.CheckDiskSpace(dataDir); err != nil {
		if utils.ErrorCode(err) != utils.ErrUnavailable {
			return nil, err
		}
		log.Warnf("Low disk space: %v", err)
	}
	db, err := walletdata.Initialize(filepath.Join(dataDir, walletdata.DbName))
	if err != nil {
		return nil, err
	}

	state, err := load.NewAppState(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	client, err := libwallet.NewClient(ctx, endpoint, net)
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Infof("Starting %s %s on %s", appName, Version, net.Network.Display())
	return &load.Load{
		AppInfo:  load.StartApp(Version, buildDate),
		Config:   appCfg,
		State:    state,
		WL:       load.NewWalletLoad(state, net),
		DB:       db,
		Client:   client,
		Net:      net,
		Notifier: notification.NewSystemNotification(),
	}, nil
}

// shutdown stops background tasks and persists the app state.
func shutdown(l *load.Load) {
	l.Executor.Shutdown()
	l.WL.Lock()
	if err := l.State.Save(); err != nil {
		log.Errorf("Unable to save app state: %v", err)
	}
	if err := l.Client.Close(); err != nil {
		log.Debugf("Closing rpc client: %v", err)
	}
	if err := l.DB.Close(); err != nil {
		log.Errorf("Unable to close the database: %v", err)
	}
	log.Info("Shutdown complete")
}
