// utils/dates.go
package utils

import "time"

// Sheet rows carry wall-clock timestamps in IST regardless of server timezone.
var istZone = time.FixedZone("IST", 5*3600+30*60)

func NowIST() time.Time {
	return time.Now().In(istZone)
}

func FormatISTDate(t time.Time) string {
	return t.In(istZone).Format("02/01/2006")
}

func FormatISTTime(t time.Time) string {
	return t.In(istZone).Format("03:04:05 pm")
}

// TomorrowDate returns the next civil date as YYYY-MM-DD, computed in UTC.
func TomorrowDate(now time.Time) string {
	return now.UTC().AddDate(0, 0, 1).Format("2006-01-02")
}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
