package load

import (
	"time"
)

// AppInfo holds build and runtime facts shown on the settings screen.
type AppInfo struct {
	version     string
	buildDate   time.Time
	startUpTime time.Time
}

// StartApp returns an instance of AppInfo with the startUpTime set to the
// current time.
func StartApp(version string, buildDate time.Time) *AppInfo {
	return &AppInfo{
		version:     version,
		buildDate:   buildDate,
		startUpTime: time.Now(),
	}
}

// BuildDate returns the app's build date.
func (app *AppInfo) BuildDate() time.Time {
	return app.buildDate
}

// Version returns the app's version.
func (app *AppInfo) Version() string {
	return app.version
}

// StartupTime returns the app's startup time.
func (app *AppInfo) StartupTime() time.Time {
	return app.startUpTime
}

// Uptime is rounded to the second.
func (app *AppInfo) Uptime() time.Duration {
	return time.Since(app.startUpTime).Round(time.Second)
}
