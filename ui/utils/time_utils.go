package utils

import (
	"time"

	"github.com/ararog/timeago"
)

const secondsInDay = 24 * 60 * 60

// TimeAgo returns the elapsed time since timestamp.
func TimeAgo(timestamp int64) string {
	timeAgo, _ := timeago.TimeAgoWithTime(time.Now(), time.Unix(timestamp, 0))
	return timeAgo
}

// FormatDateOrTime returns the elapsed time for timestamps within the last
// day, "Yesterday" within the previous day and the date otherwise.
func FormatDateOrTime(timestamp int64) string {
	utcTime := time.Unix(timestamp, 0).UTC()
	timeDiff := int(time.Now().UTC().Sub(utcTime).Seconds())

	switch {
	case timeDiff <= secondsInDay:
		return TimeAgo(timestamp)
	case timeDiff <= 2*secondsInDay:
		return "Yesterday"
	default:
		return utcTime.Format("Jan 2, 2006")
	}
}
