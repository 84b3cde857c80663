package analytics

import (
	"time"

	"github.com/chrisdamba/foodash/internal/models"
)

type activity struct {
	userID int64
	at     time.Time
}

type userPeriod struct {
	userID int64
	period int
}

// Retention builds signup cohorts over the filter periods. A member counts as
// active at offset k when they completed at least one order in the period
// k steps after their signup period.
func (e *Engine) Retention(f models.Filter, users []models.UserRecord, orders []models.OrderRecord) (*models.RetentionResponse, error) {
	if err := checkUsers(users); err != nil {
		return nil, err
	}
	if err := checkOrders(orders); err != nil {
		return nil, err
	}
	periods, err := e.bucketer.Periods(f.StartDate, f.EndDate, f.Interval)
	if err != nil {
		return nil, err
	}

	signups := make([]activity, 0, len(users))
	for _, u := range users {
		signups = append(signups, activity{userID: u.ID, at: u.CreatedAt})
	}

	var active []activity
	for _, o := range orders {
		if o.IsCompleted() && f.MatchesOrder(o) {
			active = append(active, activity{userID: o.UserID, at: o.CreatedAt})
		}
	}

	resp := cohortRetention(periods, signups, active)
	return &resp, nil
}

// cohortRetention is the shared cohort grid computation. signups place users
// into cohorts (a user's earliest signup wins); events mark activity.
func cohortRetention(periods []Period, signups, events []activity) models.RetentionResponse {
	n := len(periods)
	cohortOf := make(map[int64]int, len(signups))
	signupAt := make(map[int64]time.Time, len(signups))
	for _, s := range signups {
		idx := Index(periods, s.at)
		if idx < 0 {
			continue
		}
		if prev, ok := signupAt[s.userID]; ok && !s.at.Before(prev) {
			continue
		}
		cohortOf[s.userID] = idx
		signupAt[s.userID] = s.at
	}

	initial := make([]int, n)
	for _, idx := range cohortOf {
		initial[idx]++
	}

	// activeAt[c][k]: members of cohort c active at offset k
	activeAt := make([][]int, n)
	for c := range activeAt {
		activeAt[c] = make([]int, n-c)
		activeAt[c][0] = initial[c]
	}
	seen := make(map[userPeriod]struct{})
	for _, ev := range events {
		c, ok := cohortOf[ev.userID]
		if !ok {
			continue
		}
		idx := Index(periods, ev.at)
		if idx <= c {
			continue
		}
		key := userPeriod{userID: ev.userID, period: idx}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		activeAt[c][idx-c]++
	}

	resp := models.RetentionResponse{Cohorts: make([]models.CohortResult, n)}
	latest := -1
	for c := 0; c < n; c++ {
		data := make([]models.RetentionPoint, len(activeAt[c]))
		for k, a := range activeAt[c] {
			data[k] = retentionPoint(k, a, initial[c])
		}
		resp.Cohorts[c] = models.CohortResult{
			Cohort:        periods[c].Key,
			InitialUsers:  initial[c],
			RetentionData: data,
		}
		resp.TotalUsers += initial[c]
		if initial[c] > 0 {
			latest = c
		}
	}

	if latest >= 0 {
		// the largest offset every non-empty cohort has reached
		common := n - 1 - latest
		for c := 0; c <= latest; c++ {
			if initial[c] > 0 {
				resp.RetainedUsers += activeAt[c][common]
			}
		}
	}
	resp.RetentionRate = rate(float64(resp.RetainedUsers), float64(resp.TotalUsers))
	return resp
}

// customerRetention cohorts a restaurant's customers by their first completed
// order there and tracks repeat completed orders.
func customerRetention(periods []Period, orders []models.OrderRecord) models.RetentionResponse {
	var events []activity
	for _, o := range orders {
		if o.IsCompleted() {
			events = append(events, activity{userID: o.UserID, at: o.CreatedAt})
		}
	}
	return cohortRetention(periods, events, events)
}
