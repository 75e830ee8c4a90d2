// Package team rolls up per-member wellbeing into the manager/HR dashboard
// view. Scope resolution lives behind the Directory interface; the
// aggregator only consumes resolved member lists.
package team

import (
	"context"
	"time"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/errs"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/wellbeing"
)

// Identity is the already-authenticated caller. The aggregator never
// derives it; the handler layer resolves it from the session.
type Identity struct {
	UserID uint
	Role   models.Role
}

// Directory resolves who belongs to a scope and their profile fields.
type Directory interface {
	DirectReports(ctx context.Context, managerID uint) ([]uint, error)
	ActiveUsers(ctx context.Context) ([]uint, error)
	GetUsers(ctx context.Context, ids []uint) ([]models.User, error)
}

// ScoreSource yields a member's most recent score record, or nil when the
// member has no scoring history.
type ScoreSource interface {
	LatestScore(ctx context.Context, userID uint) (*models.ScoreRecord, error)
}

// Member is one row of the roll-up.
type Member struct {
	ID             uint             `json:"id"`
	Name           string           `json:"name"`
	Department     string           `json:"department"`
	RiskLevel      models.RiskLevel `json:"riskLevel"`
	Score          float64          `json:"score"`
	LastUpdateDate time.Time        `json:"lastUpdateDate"`
}

// Distribution is the roll-up plus per-tier counts.
type Distribution struct {
	TotalMembers int      `json:"totalMembers"`
	HighRisk     int      `json:"highRisk"`
	MediumRisk   int      `json:"mediumRisk"`
	LowRisk      int      `json:"lowRisk"`
	Members      []Member `json:"members"`
}

type Aggregator struct {
	directory Directory
	scores    ScoreSource
	now       func() time.Time
}

func NewAggregator(directory Directory, scores ScoreSource) *Aggregator {
	return &Aggregator{directory: directory, scores: scores, now: time.Now}
}

// Overview produces one roll-up record per member of the caller's scope.
// The role check runs before any data is touched: managers see their direct
// reports, hr and admin see all active employees, anyone else is rejected.
func (a *Aggregator) Overview(ctx context.Context, ident Identity) (*Distribution, error) {
	var (
		ids []uint
		err error
	)
	switch ident.Role {
	case models.RoleManager:
		ids, err = a.directory.DirectReports(ctx, ident.UserID)
	case models.RoleHR, models.RoleAdmin:
		ids, err = a.directory.ActiveUsers(ctx)
	default:
		return nil, errs.Forbidden("role cannot view team wellbeing")
	}
	if err != nil {
		return nil, err
	}

	users, err := a.directory.GetUsers(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	dist := &Distribution{Members: make([]Member, 0, len(ids))}
	for _, id := range ids {
		u, ok := byID[id]
		if !ok {
			continue
		}
		member, err := a.memberFor(ctx, u)
		if err != nil {
			return nil, err
		}
		dist.Members = append(dist.Members, member)
		switch member.RiskLevel {
		case models.RiskHigh:
			dist.HighRisk++
		case models.RiskMedium:
			dist.MediumRisk++
		case models.RiskLow:
			dist.LowRisk++
		}
	}
	dist.TotalMembers = len(dist.Members)
	return dist, nil
}

func (a *Aggregator) memberFor(ctx context.Context, u models.User) (Member, error) {
	member := Member{
		ID:         u.ID,
		Name:       u.Name,
		Department: u.Department,
		// Defaults for members who have never submitted.
		RiskLevel:      models.RiskMedium,
		Score:          0,
		LastUpdateDate: a.now().UTC().Truncate(24 * time.Hour),
	}

	latest, err := a.scores.LatestScore(ctx, u.ID)
	if err != nil {
		return Member{}, err
	}
	if latest != nil {
		member.Score = latest.TotalScore
		// Recomputed rather than read back, so tier always reflects the
		// current thresholds.
		member.RiskLevel = wellbeing.ClassifyRisk(latest.TotalScore)
		member.LastUpdateDate = latest.ScoreDate
	}
	return member, nil
}
