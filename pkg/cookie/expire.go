package cookie

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var relativeParser = func() *when.Parser {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return p
}()

// ExpireTimestamp resolves an expiry value to Unix seconds.
//
// Integers, floats, numeric strings and "@<seconds>" are taken as timestamps
// and floored at zero. time.Time values yield their Unix time. Other strings
// are read in UTC as one of:
//
//   - an optional base word followed by offsets: "now", "today" and
//     "midnight" (00:00 today), "noon", "tomorrow" and "yesterday" (00:00 of
//     that day);
//   - offsets, each "[+|-]N unit" with unit one of sec, min, hour, day, week,
//     fortnight, month, year (singular, plural or abbreviated), optionally
//     led by "in" or followed by "ago", which negates them all:
//     "1 day", "+1 day 2 hours", "-2 hours", "3 weeks ago";
//   - an absolute date in any layout understood by dateparse;
//   - another English expression such as "next friday".
//
// Anything else fails with ErrInvalidExpire.
func ExpireTimestamp(expire any) (int64, error) {
	return expireTimestamp(expire, time.Now())
}

func expireTimestamp(expire any, now time.Time) (int64, error) {
	switch v := expire.(type) {
	case nil:
		return 0, nil
	case int:
		return max(int64(v), 0), nil
	case int8:
		return max(int64(v), 0), nil
	case int16:
		return max(int64(v), 0), nil
	case int32:
		return max(int64(v), 0), nil
	case int64:
		return max(v, 0), nil
	case uint:
		return clampUint(uint64(v)), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return clampUint(v), nil
	case float32:
		return clampFloat(float64(v)), nil
	case float64:
		return clampFloat(v), nil
	case time.Time:
		if v.IsZero() {
			return 0, nil
		}
		return max(v.Unix(), 0), nil
	case *time.Time:
		if v == nil {
			return 0, nil
		}
		return expireTimestamp(*v, now)
	case time.Duration:
		return max(now.Add(v).Unix(), 0), nil
	case string:
		return parseExpireString(v, now)
	default:
		return 0, ErrInvalidExpire
	}
}

func parseExpireString(s string, now time.Time) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidExpire
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return max(i, 0), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return clampFloat(f), nil
	}
	if strings.EqualFold(s, "now") {
		return max(now.Unix(), 0), nil
	}
	if ts, ok := strings.CutPrefix(s, "@"); ok {
		if i, err := strconv.ParseInt(ts, 10, 64); err == nil {
			return max(i, 0), nil
		}
		if f, err := strconv.ParseFloat(ts, 64); err == nil {
			return clampFloat(f), nil
		}
		return 0, ErrInvalidExpire
	}
	if t, ok := parseOffsets(s, now); ok {
		return max(t.Unix(), 0), nil
	}

	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		return max(t.Unix(), 0), nil
	}

	t, err := parseRelative(s, now)
	if err != nil {
		return 0, errors.Join(ErrInvalidExpire, err)
	}
	return max(t.Unix(), 0), nil
}

var errNoMatch = errors.New("no date expression recognized")

var offsetToken = regexp.MustCompile(`^([+-]?)\s*(\d+)\s*([a-z]+)\s*`)

var offsetUnits = map[string]func(t time.Time, n int) time.Time{
	"sec":       func(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Second) },
	"min":       func(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Minute) },
	"hour":      func(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Hour) },
	"day":       func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) },
	"week":      func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) },
	"fortnight": func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 14*n) },
	"month":     func(t time.Time, n int) time.Time { return t.AddDate(0, n, 0) },
	"year":      func(t time.Time, n int) time.Time { return t.AddDate(n, 0, 0) },
}

func offsetUnit(word string) func(time.Time, int) time.Time {
	switch word {
	case "s", "sec", "secs", "second", "seconds":
		return offsetUnits["sec"]
	case "m", "min", "mins", "minute", "minutes":
		return offsetUnits["min"]
	case "h", "hr", "hrs", "hour", "hours":
		return offsetUnits["hour"]
	case "d", "day", "days":
		return offsetUnits["day"]
	case "w", "wk", "wks", "week", "weeks":
		return offsetUnits["week"]
	case "fortnight", "fortnights":
		return offsetUnits["fortnight"]
	case "mon", "mons", "month", "months":
		return offsetUnits["month"]
	case "y", "yr", "yrs", "year", "years":
		return offsetUnits["year"]
	}
	return nil
}

func baseTime(word string, now time.Time) (time.Time, bool) {
	y, m, d := now.Date()
	switch word {
	case "now":
		return now, true
	case "today", "midnight":
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	case "noon":
		return time.Date(y, m, d, 12, 0, 0, 0, time.UTC), true
	case "tomorrow":
		return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC), true
	case "yesterday":
		return time.Date(y, m, d-1, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// parseOffsets reads an optional base word followed by signed "N unit"
// offsets. Each offset keeps its own sign; a trailing "ago" negates all.
func parseOffsets(s string, now time.Time) (time.Time, bool) {
	text := strings.ToLower(strings.Join(strings.Fields(s), " "))
	t := now.UTC()

	word, rest, _ := strings.Cut(text, " ")
	base, hasBase := baseTime(word, t)
	if hasBase {
		t, text = base, rest
	}

	ago := false
	if r, ok := strings.CutSuffix(text, "ago"); ok && !hasBase {
		text, ago = strings.TrimSpace(r), true
	}
	if r, ok := strings.CutPrefix(text, "in "); ok && !ago && !hasBase {
		text = r
	}
	if text == "" {
		return t, hasBase
	}

	for text != "" {
		m := offsetToken.FindStringSubmatch(text)
		if m == nil {
			return time.Time{}, false
		}
		apply := offsetUnit(m[3])
		if apply == nil {
			return time.Time{}, false
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return time.Time{}, false
		}
		if m[1] == "-" {
			n = -n
		}
		if ago {
			n = -n
		}
		t = apply(t, n)
		text = text[len(m[0]):]
	}
	return t, true
}

// parseRelative resolves English relative expressions. A leading sign is
// rewritten into the forms the parser understands: "+1 day" becomes
// "in 1 day", "-1 day" becomes "1 day ago". The whole string must match.
func parseRelative(s string, now time.Time) (time.Time, error) {
	text := strings.ToLower(s)
	switch {
	case strings.HasPrefix(text, "+"):
		text = "in " + strings.TrimSpace(text[1:])
	case strings.HasPrefix(text, "-"):
		text = strings.TrimSpace(text[1:]) + " ago"
	}

	res, err := relativeParser.Parse(text, now)
	if err != nil {
		return time.Time{}, err
	}
	if res == nil || res.Index != 0 || len(strings.TrimSpace(res.Text)) != len(text) {
		return time.Time{}, errNoMatch
	}
	return res.Time, nil
}

func clampUint(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}

func clampFloat(f float64) int64 {
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	}
	return int64(f)
}
