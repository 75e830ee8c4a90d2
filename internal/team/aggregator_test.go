package team

import (
	"context"
	"testing"
	"time"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/errs"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
)

type stubDirectory struct {
	reports map[uint][]uint
	active  []uint
	users   map[uint]models.User

	directoryCalls int
}

func (d *stubDirectory) DirectReports(_ context.Context, managerID uint) ([]uint, error) {
	d.directoryCalls++
	return d.reports[managerID], nil
}

func (d *stubDirectory) ActiveUsers(_ context.Context) ([]uint, error) {
	d.directoryCalls++
	return d.active, nil
}

func (d *stubDirectory) GetUsers(_ context.Context, ids []uint) ([]models.User, error) {
	out := []models.User{}
	for _, id := range ids {
		if u, ok := d.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type stubScores struct {
	latest map[uint]*models.ScoreRecord
}

func (s *stubScores) LatestScore(_ context.Context, userID uint) (*models.ScoreRecord, error) {
	return s.latest[userID], nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixtureAggregator() (*Aggregator, *stubDirectory) {
	dir := &stubDirectory{
		reports: map[uint][]uint{10: {1, 2, 3}},
		active:  []uint{1, 2, 3, 4},
		users: map[uint]models.User{
			1: {ID: 1, Name: "Aoki", Department: "Sales"},
			2: {ID: 2, Name: "Baba", Department: "Sales"},
			3: {ID: 3, Name: "Chiba", Department: "Support"},
			4: {ID: 4, Name: "Doi", Department: "Engineering"},
		},
	}
	scores := &stubScores{latest: map[uint]*models.ScoreRecord{
		1: {UserID: 1, ScoreDate: day(2025, 6, 10), TotalScore: 4.5, RiskLevel: models.RiskLow},
		2: {UserID: 2, ScoreDate: day(2025, 6, 9), TotalScore: 2.1, RiskLevel: models.RiskHigh},
		// User 3 has no history; user 4 is medium.
		4: {UserID: 4, ScoreDate: day(2025, 6, 8), TotalScore: 3.0, RiskLevel: models.RiskMedium},
	}}
	agg := NewAggregator(dir, scores)
	agg.now = func() time.Time { return day(2025, 6, 11).Add(15 * time.Hour) }
	return agg, dir
}

func TestOverviewManagerScope(t *testing.T) {
	agg, _ := fixtureAggregator()

	dist, err := agg.Overview(context.Background(), Identity{UserID: 10, Role: models.RoleManager})
	if err != nil {
		t.Fatal(err)
	}
	if dist.TotalMembers != 3 {
		t.Fatalf("totalMembers = %d, want 3", dist.TotalMembers)
	}
	if dist.LowRisk != 1 || dist.MediumRisk != 1 || dist.HighRisk != 1 {
		t.Fatalf("distribution = %+v", dist)
	}

	byID := map[uint]Member{}
	for _, m := range dist.Members {
		byID[m.ID] = m
	}
	if m := byID[1]; m.RiskLevel != models.RiskLow || m.Score != 4.5 || !m.LastUpdateDate.Equal(day(2025, 6, 10)) {
		t.Fatalf("member 1 = %+v", m)
	}
	if m := byID[3]; m.RiskLevel != models.RiskMedium || m.Score != 0 || !m.LastUpdateDate.Equal(day(2025, 6, 11)) {
		t.Fatalf("member without history = %+v", m)
	}
}

func TestOverviewHRAndAdminSeeAllActive(t *testing.T) {
	for _, role := range []models.Role{models.RoleHR, models.RoleAdmin} {
		agg, _ := fixtureAggregator()
		dist, err := agg.Overview(context.Background(), Identity{UserID: 99, Role: role})
		if err != nil {
			t.Fatalf("%s: %v", role, err)
		}
		if dist.TotalMembers != 4 {
			t.Fatalf("%s: totalMembers = %d, want 4", role, dist.TotalMembers)
		}
	}
}

func TestOverviewRejectsEmployeesBeforeTouchingData(t *testing.T) {
	agg, dir := fixtureAggregator()

	_, err := agg.Overview(context.Background(), Identity{UserID: 1, Role: models.RoleEmployee})
	if !errs.IsCode(err, errs.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if dir.directoryCalls != 0 {
		t.Fatalf("directory consulted %d times before the policy check", dir.directoryCalls)
	}

	_, err = agg.Overview(context.Background(), Identity{UserID: 1, Role: models.Role("intern")})
	if !errs.IsCode(err, errs.CodeForbidden) {
		t.Fatalf("unknown role: expected forbidden, got %v", err)
	}
}

func TestOverviewRecomputesRiskFromScore(t *testing.T) {
	// A stored tier that disagrees with the score must not leak through.
	dir := &stubDirectory{
		reports: map[uint][]uint{10: {1}},
		users:   map[uint]models.User{1: {ID: 1, Name: "Aoki"}},
	}
	scores := &stubScores{latest: map[uint]*models.ScoreRecord{
		1: {UserID: 1, ScoreDate: day(2025, 6, 10), TotalScore: 4.8, RiskLevel: models.RiskHigh},
	}}
	agg := NewAggregator(dir, scores)

	dist, err := agg.Overview(context.Background(), Identity{UserID: 10, Role: models.RoleManager})
	if err != nil {
		t.Fatal(err)
	}
	if dist.Members[0].RiskLevel != models.RiskLow {
		t.Fatalf("riskLevel = %v, want low (recomputed)", dist.Members[0].RiskLevel)
	}
}
