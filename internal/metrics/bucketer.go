package metrics

import "time"

// WeekBucket is one business week: Monday 00:00:00 through Friday
// 23:59:59.999..., represented as the half-open interval
// [Start, End) with End = Saturday 00:00:00. Number is the ISO week.
type WeekBucket struct {
	Start  time.Time
	End    time.Time
	Number int
}

// Contains reports whether t falls inside the bucket. A record at
// Friday 23:59:59.999 is in; the following Monday 00:00:00 belongs to
// the next week's bucket.
func (w WeekBucket) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// MonthBucket is one calendar month as the half-open interval
// [Start, End) with End = first day of the next month.
type MonthBucket struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the month
func (m MonthBucket) Contains(t time.Time) bool {
	return !t.Before(m.Start) && t.Before(m.End)
}

// Buckets is the classification of one timestamp
type Buckets struct {
	Week  WeekBucket
	Month MonthBucket
	Year  int
}

// Classify assigns a timestamp to its own week, month and year buckets
func Classify(ts time.Time) Buckets {
	return Buckets{
		Week:  WeekOf(ts),
		Month: MonthOf(ts),
		Year:  ts.Year(),
	}
}

// WeekOf returns the business week containing t. Saturday and Sunday
// timestamps yield the week that just ended, whose bucket does not
// contain them; weekend activity is outside every weekly rollup.
func WeekOf(t time.Time) WeekBucket {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	monday := day.AddDate(0, 0, -offset)
	_, week := monday.ISOWeek()
	return WeekBucket{
		Start:  monday,
		End:    monday.AddDate(0, 0, 5),
		Number: week,
	}
}

// MonthOf returns the calendar month containing t
func MonthOf(t time.Time) MonthBucket {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return MonthBucket{
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}
}

// RepresentativeWeek returns the business week anchored on the 15th of
// the reference month. The dashboard uses it as the representative
// week when a whole month has to be summarized as one week.
func RepresentativeWeek(clock ReferenceClock) WeekBucket {
	t := clock.Time()
	mid := time.Date(t.Year(), t.Month(), 15, 0, 0, 0, 0, t.Location())
	return WeekOf(mid)
}

// WeeksOfMonth returns every business week overlapping the reference
// month, in chronological order. The first and last entries may start
// or end outside the month.
func WeeksOfMonth(clock ReferenceClock) []WeekBucket {
	month := MonthOf(clock.Time())
	var weeks []WeekBucket
	for w := WeekOf(month.Start); w.Start.Before(month.End); w = WeekOf(w.Start.AddDate(0, 0, 7)) {
		weeks = append(weeks, w)
	}
	return weeks
}

// YearWindow returns the rolling 5-year window ending with the
// reference year, as an inclusive [from, to] pair. It is computed once
// per assembly so every annual rollup agrees on what "this year" is.
func YearWindow(clock ReferenceClock) (from, to int) {
	to = clock.Year()
	return to - 4, to
}
