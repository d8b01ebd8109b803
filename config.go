package main

import (
	"fmt"
	"net/url"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/decred/slog"
	flags "github.com/jessevdk/go-flags"

	libutils "github.com/ltp456/uwallet/libwallet/utils"
	"github.com/ltp456/uwallet/logger"
)

const (
	defaultConfigFilename = "uwallet.conf"
	defaultLogDirname     = "logs"
	defaultLogLevel       = "info"
	defaultMaxLogZips     = 8
)

var (
	defaultHomeDir    = btcutil.AppDataDir("uwallet", false)
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFilename)
	defaultLogDir     = filepath.Join(defaultHomeDir, defaultLogDirname)
)

// config defines the configuration options for uwallet.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	HomeDir     string `long:"appdata" description:"Directory where the app configuration file and wallet data is stored"`
	LogDir      string `long:"logdir" description:"Directory to log output"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	MaxLogZips  int    `long:"maxlogzips" description:"The number of zipped log files created by the log rotator to be retained. Setting to 0 will keep all."`
	Network     string `long:"network" description:"Network to use {polkadot, kusama, westend, local}; defaults to the last used one"`
	RPCEndpoint string `long:"rpcendpoint" description:"Node RPC endpoint (http, https, ws or wss url); defaults to the network default"`
	Profile     int    `long:"profile" description:"Enable HTTP profiling on given port -- NOTE port must be between 1024 and 65535"`
}

func defaultConfig() config {
	return config{
		ConfigFile: defaultConfigFile,
		HomeDir:    defaultHomeDir,
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
		MaxLogZips: defaultMaxLogZips,
	}
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Nothing to do when no path is given.
	if path == "" {
		return path
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows cmd.exe-style
	// %VARIABLE%, but the variables can still be expanded via POSIX-style
	// $VARIABLE.
	path = os.ExpandEnv(path)

	if !strings.HasPrefix(path, "~") {
		return filepath.Clean(path)
	}

	// Expand initial ~ to the current user's home directory, or ~otheruser
	// to otheruser's home directory.  On Windows, both forward and backward
	// slashes can be used.
	path = path[1:]

	var pathSeparators string
	if runtime.GOOS == "windows" {
		pathSeparators = string(os.PathSeparator) + "/"
	} else {
		pathSeparators = string(os.PathSeparator)
	}

	userName := ""
	if i := strings.IndexAny(path, pathSeparators); i != -1 {
		userName = path[:i]
		path = path[i:]
	}

	homeDir := ""
	var u *user.User
	var err error
	if userName == "" {
		u, err = user.Current()
	} else {
		u, err = user.Lookup(userName)
	}
	if err == nil {
		homeDir = u.HomeDir
	}
	// Fallback to CWD if user lookup fails or user has no home directory.
	if homeDir == "" {
		homeDir = "."
	}

	return filepath.Join(homeDir, path)
}

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	_, ok := slog.LevelFromString(logLevel)
	return ok
}

// parseAndSetDebugLevels attempts to parse the specified debug level and set
// the levels accordingly.  An appropriate error is returned if anything is
// invalid.
func parseAndSetDebugLevels(debugLevel string) error {
	// When the specified string doesn't have any delimters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		// Validate debug log level.
		if !validLogLevel(debugLevel) {
			return fmt.Errorf("the specified debug level [%v] is invalid", debugLevel)
		}

		// Change the logging level for all subsystems.
		return logger.SetLogLevels(debugLevel)
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			return fmt.Errorf("the specified debug level contains an invalid subsystem/level pair [%v]", logLevelPair)
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		// Validate subsystem.
		if !logger.IsSubsystem(subsysID) {
			return fmt.Errorf("the specified subsystem [%v] is invalid -- supported subsytems %v",
				subsysID, logger.SupportedSubsystems())
		}

		// Validate log level.
		if !validLogLevel(logLevel) {
			return fmt.Errorf("the specified debug level [%v] is invalid", logLevel)
		}

		logger.SetLogLevel(subsysID, logLevel)
	}

	return nil
}

// loadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in uwallet functioning properly without any config
// settings while still allowing the user to override settings with config
// files and command line options.  Command line options always take
// precedence.
func loadConfig() (*config, error) {
	return parseConfig(os.Args[1:])
}

func parseConfig(args []string) (*config, error) {
	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified.
	preCfg := defaultConfig()
	preParser := flags.NewParser(&preCfg, flags.HelpFlag)
	if _, err := preParser.ParseArgs(args); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
		return nil, err
	}

	// Show the version and exit if the version flag was specified.
	if preCfg.ShowVersion {
		fmt.Printf("%s version %s (Go version %s %s/%s)\n", appName, Version,
			runtime.Version(), runtime.GOOS, runtime.GOARCH)
		os.Exit(0)
	}

	// Update the home directory if specified. Since the home directory is
	// updated, other variables need to be updated to reflect the new changes.
	cfg := defaultConfig()
	if preCfg.HomeDir != "" {
		cfg.HomeDir = cleanAndExpandPath(preCfg.HomeDir)
		if preCfg.ConfigFile == defaultConfigFile {
			preCfg.ConfigFile = filepath.Join(cfg.HomeDir, defaultConfigFilename)
		}
		cfg.LogDir = filepath.Join(cfg.HomeDir, defaultLogDirname)
	}
	cfg.ConfigFile = cleanAndExpandPath(preCfg.ConfigFile)

	// Load additional config from file.
	parser := flags.NewParser(&cfg, flags.Default)
	if err := flags.NewIniParser(parser).ParseFile(cfg.ConfigFile); err != nil {
		if _, ok := err.(*os.PathError); !ok {
			return nil, fmt.Errorf("error parsing config file: %v", err)
		}
	}

	// Parse command line options again to ensure they take precedence.
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	cfg.HomeDir = cleanAndExpandPath(cfg.HomeDir)
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)

	if cfg.Network != "" && libutils.ToNetworkType(cfg.Network) == libutils.Unknown {
		return nil, fmt.Errorf("invalid network %q", cfg.Network)
	}

	if cfg.RPCEndpoint != "" {
		u, err := url.Parse(cfg.RPCEndpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid rpc endpoint %q: %v", cfg.RPCEndpoint, err)
		}
		switch u.Scheme {
		case "http", "https", "ws", "wss":
		default:
			return nil, fmt.Errorf("invalid rpc endpoint %q: unsupported scheme", cfg.RPCEndpoint)
		}
	}

	if cfg.Profile != 0 && (cfg.Profile < 1024 || cfg.Profile > 65535) {
		return nil, fmt.Errorf("the profile port must be between 1024 and 65535")
	}

	if cfg.MaxLogZips < 0 {
		cfg.MaxLogZips = 0
	}

	// Parse, validate, and set debug log level(s).
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return nil, err
	}

	return &cfg, nil
}
