package sqlval

import "time"

// sqlTimeLayout is the MySQL DATETIME text form.
const sqlTimeLayout = "2006-01-02 15:04:05"

// TimeToSQL formats t as a UTC "YYYY-MM-DD HH:MM:SS" string, truncated to
// whole seconds.
func TimeToSQL(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(sqlTimeLayout)
}

// MillisToSQL formats a Unix epoch in milliseconds the same way as TimeToSQL.
func MillisToSQL(ms int64) string {
	return TimeToSQL(time.UnixMilli(ms))
}
