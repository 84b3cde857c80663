package analytics

import (
	"testing"
	"time"

	"github.com/chrisdamba/foodash/internal/models"
)

func monthlyFilter(startMonth, endMonth int) models.Filter {
	return models.Filter{
		StartDate: at(2024, 1, 1, 0).AddDate(0, startMonth-1, 0),
		EndDate:   at(2024, 1, 1, 0).AddDate(0, endMonth-1, 0),
		Interval:  models.IntervalMonthly,
	}
}

func TestRetention_JanuaryCohortExample(t *testing.T) {
	e := newTestEngine()

	var users []models.UserRecord
	for id := int64(1); id <= 10; id++ {
		users = append(users, models.UserRecord{ID: id, CreatedAt: at(2024, 1, int(id), 8), Role: models.RoleCustomer})
	}
	orders := []models.OrderRecord{
		order(1, 1, 1, models.OrderStatusCompleted, 10, at(2024, 2, 1, 12)),
		order(2, 1, 1, models.OrderStatusCompleted, 10, at(2024, 2, 9, 12)), // same user twice
		order(3, 2, 1, models.OrderStatusCompleted, 10, at(2024, 2, 2, 12)),
		order(4, 3, 1, models.OrderStatusCompleted, 10, at(2024, 2, 3, 12)),
		order(5, 4, 1, models.OrderStatusCompleted, 10, at(2024, 2, 4, 12)),
		order(6, 5, 1, models.OrderStatusCancelled, 10, at(2024, 2, 5, 12)),  // not completed
		order(7, 6, 1, models.OrderStatusCompleted, 10, at(2024, 1, 20, 12)), // signup period only
	}

	resp, err := e.Retention(monthlyFilter(1, 2), users, orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Cohorts) != 2 {
		t.Fatalf("got %d cohorts, want 2", len(resp.Cohorts))
	}
	jan := resp.Cohorts[0]
	if jan.Cohort != "2024-01" || jan.InitialUsers != 10 {
		t.Fatalf("unexpected january cohort: %+v", jan)
	}
	if got := jan.RetentionData[0]; got.ActiveUsers != 10 || got.RetentionRate != 1 {
		t.Errorf("offset 0 = %+v, want 10 active at rate 1", got)
	}
	if got := jan.RetentionData[1]; got.ActiveUsers != 4 || got.RetentionRate != 0.4 {
		t.Errorf("offset 1 = %+v, want 4 active at rate 0.4", got)
	}

	feb := resp.Cohorts[1]
	if feb.InitialUsers != 0 || len(feb.RetentionData) != 1 || feb.RetentionData[0].RetentionRate != 0 {
		t.Errorf("empty cohort should be kept with zero rates, got %+v", feb)
	}

	if resp.TotalUsers != 10 || resp.RetainedUsers != 4 || resp.RetentionRate != 0.4 {
		t.Errorf("overall = %d/%d (%v), want 4/10 (0.4)", resp.RetainedUsers, resp.TotalUsers, resp.RetentionRate)
	}
}

func TestRetention_RatesBounded(t *testing.T) {
	e := newTestEngine()
	f := dailyFilter(at(2024, 3, 1, 0), at(2024, 3, 10, 0))

	var users []models.UserRecord
	var orders []models.OrderRecord
	for id := int64(1); id <= 30; id++ {
		signup := at(2024, 3, 1, 0).Add(time.Duration(id) * 7 * time.Hour)
		users = append(users, models.UserRecord{ID: id, CreatedAt: signup})
		for k := int64(0); k < id%4; k++ {
			orders = append(orders, order(id*10+k, id, 1, models.OrderStatusCompleted, 5,
				signup.Add(time.Duration(k+1)*26*time.Hour)))
		}
	}

	resp, err := e.Retention(f, users, orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Cohorts) != 10 {
		t.Fatalf("got %d cohorts, want one per day", len(resp.Cohorts))
	}
	for _, c := range resp.Cohorts {
		if want := 10 - indexOfCohort(resp.Cohorts, c.Cohort); len(c.RetentionData) != want {
			t.Errorf("cohort %s has %d offsets, want %d", c.Cohort, len(c.RetentionData), want)
		}
		if c.InitialUsers > 0 && c.RetentionData[0].RetentionRate != 1 {
			t.Errorf("cohort %s offset 0 rate = %v, want 1", c.Cohort, c.RetentionData[0].RetentionRate)
		}
		for _, p := range c.RetentionData {
			if p.RetentionRate < 0 || p.RetentionRate > 1 {
				t.Errorf("cohort %s offset %d rate %v out of [0,1]", c.Cohort, p.Period, p.RetentionRate)
			}
			if p.ActiveUsers > c.InitialUsers {
				t.Errorf("cohort %s offset %d has %d active of %d", c.Cohort, p.Period, p.ActiveUsers, c.InitialUsers)
			}
		}
	}
	if resp.RetentionRate < 0 || resp.RetentionRate > 1 {
		t.Errorf("overall rate %v out of [0,1]", resp.RetentionRate)
	}
}

func indexOfCohort(cohorts []models.CohortResult, key string) int {
	for i, c := range cohorts {
		if c.Cohort == key {
			return i
		}
	}
	return -1
}

func TestRetention_NoUsers(t *testing.T) {
	e := newTestEngine()
	resp, err := e.Retention(monthlyFilter(1, 3), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Cohorts) != 3 {
		t.Fatalf("got %d cohorts, want 3", len(resp.Cohorts))
	}
	if resp.RetentionRate != 0 || resp.TotalUsers != 0 {
		t.Errorf("want zero-valued response, got %+v", resp)
	}
}

func TestCustomerRetention_RepeatCustomers(t *testing.T) {
	b := NewBucketer(time.UTC)
	periods, err := b.Periods(at(2024, 1, 1, 0), at(2024, 1, 3, 0), models.IntervalDaily)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orders := []models.OrderRecord{
		order(1, 1, 7, models.OrderStatusCompleted, 10, at(2024, 1, 1, 12)),
		order(2, 1, 7, models.OrderStatusCompleted, 10, at(2024, 1, 2, 12)),
		order(3, 2, 7, models.OrderStatusCompleted, 10, at(2024, 1, 2, 13)),
		order(4, 2, 7, models.OrderStatusCompleted, 10, at(2024, 1, 3, 13)),
	}
	resp := customerRetention(periods, orders)
	if resp.TotalUsers != 2 || resp.RetainedUsers != 2 || resp.RetentionRate != 1 {
		t.Errorf("got %d/%d (%v), want 2/2 (1)", resp.RetainedUsers, resp.TotalUsers, resp.RetentionRate)
	}
}
