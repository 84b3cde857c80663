package analytics

import (
	"sort"
	"time"

	"github.com/chrisdamba/foodash/internal/models"
	"github.com/shopspring/decimal"
)

// Period is one calendar bucket [Start, End) in the bucketer's time zone.
type Period struct {
	Key   string    `json:"period"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Bucket is a period with the count and summed value of the items in it.
type Bucket struct {
	Period
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
}

// Bucketer maps timestamps onto calendar periods. Every timestamp is first
// normalized to a single location so that two records on the same wall-clock
// day always share a bucket.
type Bucketer struct {
	loc *time.Location
}

func NewBucketer(loc *time.Location) Bucketer {
	if loc == nil {
		loc = time.UTC
	}
	return Bucketer{loc: loc}
}

func (b Bucketer) Location() *time.Location {
	if b.loc == nil {
		return time.UTC
	}
	return b.loc
}

// ParseInterval accepts daily, weekly or monthly.
func ParseInterval(s string) (models.Interval, error) {
	iv := models.Interval(s)
	if err := validateInterval(iv); err != nil {
		return "", err
	}
	return iv, nil
}

func validateInterval(iv models.Interval) error {
	switch iv {
	case models.IntervalDaily, models.IntervalWeekly, models.IntervalMonthly:
		return nil
	}
	return &UnknownIntervalError{Interval: string(iv)}
}

// ValidateRange checks the interval and that start is not after end.
func (b Bucketer) ValidateRange(start, end time.Time, interval models.Interval) error {
	if err := validateInterval(interval); err != nil {
		return err
	}
	if start.After(end) {
		return &InvalidRangeError{Start: start, End: end}
	}
	return nil
}

// Truncate returns the start of the period containing t.
func (b Bucketer) Truncate(t time.Time, interval models.Interval) time.Time {
	t = t.In(b.Location())
	y, m, d := t.Date()
	switch interval {
	case models.IntervalWeekly:
		// Monday-start weeks
		offset := (int(t.Weekday()) + 6) % 7
		return b.dayStart(y, m, d-offset)
	case models.IntervalMonthly:
		return b.dayStart(y, m, 1)
	default:
		return b.dayStart(y, m, d)
	}
}

// next returns the start of the period following the one starting at start.
// Boundaries are rebuilt from calendar fields rather than by adding to the
// previous instant, so a DST shift at one boundary never carries into the next.
func (b Bucketer) next(start time.Time, interval models.Interval) time.Time {
	y, m, d := start.In(b.Location()).Date()
	switch interval {
	case models.IntervalWeekly:
		return b.dayStart(y, m, d+7)
	case models.IntervalMonthly:
		return b.dayStart(y, m+1, 1)
	default:
		return b.dayStart(y, m, d+1)
	}
}

// dayStart returns the first instant of the local calendar day y-m-d (fields
// are normalized like time.Date). Where DST skips midnight that is the
// transition instant, which time.Date may place on the previous day.
func (b Bucketer) dayStart(y int, m time.Month, d int) time.Time {
	loc := b.Location()
	y, m, d = time.Date(y, m, d, 12, 0, 0, 0, loc).Date()
	onDay := func(t time.Time) bool {
		ty, tm, td := t.In(loc).Date()
		return ty == y && tm == m && td == d
	}

	if t := time.Date(y, m, d, 0, 0, 0, 0, loc); onDay(t) && t.Hour() == 0 && !onDay(t.Add(-time.Hour)) {
		return t
	}

	// Bisect on whole seconds between an instant that is still the previous
	// day in every zone and local noon.
	lo := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Add(-15 * time.Hour).Unix()
	hi := time.Date(y, m, d, 12, 0, 0, 0, loc).Unix()
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if onDay(time.Unix(mid, 0)) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return time.Unix(hi, 0).In(loc)
}

// DayRange returns the half-open instant range [first instant of start's day,
// first instant after end's day) in the bucketer's location.
func (b Bucketer) DayRange(start, end time.Time) (time.Time, time.Time) {
	from := b.Truncate(start, models.IntervalDaily)
	to := b.next(b.Truncate(end, models.IntervalDaily), models.IntervalDaily)
	return from, to
}

func periodKey(start time.Time, interval models.Interval) string {
	if interval == models.IntervalMonthly {
		return start.Format("2006-01")
	}
	return start.Format("2006-01-02")
}

// Periods lists every period touched by [start, end], in order.
func (b Bucketer) Periods(start, end time.Time, interval models.Interval) ([]Period, error) {
	if err := b.ValidateRange(start, end, interval); err != nil {
		return nil, err
	}
	cur := b.Truncate(start, interval)
	last := b.Truncate(end, interval)

	var periods []Period
	for !cur.After(last) {
		next := b.next(cur, interval)
		periods = append(periods, Period{
			Key:   periodKey(cur, interval),
			Start: cur,
			End:   next,
		})
		cur = next
	}
	return periods, nil
}

// Index returns the position of the period containing t, or -1.
func Index(periods []Period, t time.Time) int {
	i := sort.Search(len(periods), func(i int) bool {
		return periods[i].End.After(t)
	})
	if i < len(periods) && periods[i].Contains(t) {
		return i
	}
	return -1
}

// Aggregate counts items per period and, when value is non-nil, sums value(item).
// Items outside the range are ignored. Empty periods are kept with zero values.
func Aggregate[T any](b Bucketer, start, end time.Time, interval models.Interval,
	items []T, at func(T) time.Time, value func(T) float64) ([]Bucket, error) {

	periods, err := b.Periods(start, end, interval)
	if err != nil {
		return nil, err
	}

	buckets := make([]Bucket, len(periods))
	sums := make([]decimal.Decimal, len(periods))
	for i, p := range periods {
		buckets[i].Period = p
	}

	for _, item := range items {
		idx := Index(periods, at(item))
		if idx < 0 {
			continue
		}
		buckets[idx].Count++
		if value != nil {
			sums[idx] = sums[idx].Add(decimal.NewFromFloat(value(item)))
		}
	}
	for i := range buckets {
		buckets[i].Sum = sums[i].InexactFloat64()
	}
	return buckets, nil
}
