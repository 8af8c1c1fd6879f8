package usecase

import (
	"context"
	"errors"
	"time"

	"foodshare/internal/pkg/errs"
	"foodshare/internal/usecase/readmodel"
)

var (
	ErrInvalidTrendPeriod = errors.New("period must be daily, weekly or monthly")
	ErrInvalidDateRange   = errors.New("startDate must be before endDate")
)

type TrendPeriod string

const (
	TrendPeriodDaily   TrendPeriod = "daily"
	TrendPeriodWeekly  TrendPeriod = "weekly"
	TrendPeriodMonthly TrendPeriod = "monthly"
)

func NewTrendPeriod(s string) (TrendPeriod, error) {
	switch p := TrendPeriod(s); p {
	case TrendPeriodDaily, TrendPeriodWeekly, TrendPeriodMonthly:
		return p, nil
	default:
		return "", ErrInvalidTrendPeriod
	}
}

type AnalyticsRepository interface {
	Overview(ctx context.Context) (*readmodel.OverviewRM, error)
	Trends(ctx context.Context, period TrendPeriod, year int) ([]*readmodel.TrendPointRM, error)
	CategoryBreakdown(ctx context.Context) ([]*readmodel.CategoryBreakdownRM, error)
	TopDonors(ctx context.Context, limit int) ([]*readmodel.TopDonorRM, error)
	TopRecipients(ctx context.Context, limit int) ([]*readmodel.TopRecipientRM, error)
	ImpactSummary(ctx context.Context, start, end time.Time) (*readmodel.ImpactSummaryRM, error)
	MonthlyTrends(ctx context.Context, start, end time.Time) ([]*readmodel.TrendPointRM, error)
}

const defaultLeaderboardLimit = 10

type AnalyticsUseCase interface {
	Overview(ctx context.Context) (*readmodel.OverviewRM, error)
	Trends(ctx context.Context, period string, year int) ([]*readmodel.TrendPointRM, error)
	CategoryBreakdown(ctx context.Context) ([]*readmodel.CategoryBreakdownRM, error)
	TopDonors(ctx context.Context, limit int) ([]*readmodel.TopDonorRM, error)
	TopRecipients(ctx context.Context, limit int) ([]*readmodel.TopRecipientRM, error)
	ImpactReport(ctx context.Context, start, end time.Time) (*readmodel.ImpactReportRM, error)
}

type analyticsUseCaseImpl struct {
	analyticsRepo AnalyticsRepository
}

func NewAnalyticsUseCase(analyticsRepo AnalyticsRepository) AnalyticsUseCase {
	return &analyticsUseCaseImpl{
		analyticsRepo: analyticsRepo,
	}
}

func (a *analyticsUseCaseImpl) Overview(ctx context.Context) (*readmodel.OverviewRM, error) {
	overview, err := a.analyticsRepo.Overview(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build overview")
	}
	return overview, nil
}

func (a *analyticsUseCaseImpl) Trends(ctx context.Context, period string, year int) ([]*readmodel.TrendPointRM, error) {
	p, err := NewTrendPeriod(period)
	if err != nil {
		return nil, err
	}

	trends, err := a.analyticsRepo.Trends(ctx, p, year)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build trends")
	}
	return trends, nil
}

func (a *analyticsUseCaseImpl) CategoryBreakdown(ctx context.Context) ([]*readmodel.CategoryBreakdownRM, error) {
	breakdown, err := a.analyticsRepo.CategoryBreakdown(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build category breakdown")
	}
	return breakdown, nil
}

func (a *analyticsUseCaseImpl) TopDonors(ctx context.Context, limit int) ([]*readmodel.TopDonorRM, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	donors, err := a.analyticsRepo.TopDonors(ctx, limit)
	if err != nil {
		return nil, errs.Wrap(err, "failed to rank donors")
	}
	return donors, nil
}

func (a *analyticsUseCaseImpl) TopRecipients(ctx context.Context, limit int) ([]*readmodel.TopRecipientRM, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	recipients, err := a.analyticsRepo.TopRecipients(ctx, limit)
	if err != nil {
		return nil, errs.Wrap(err, "failed to rank recipients")
	}
	return recipients, nil
}

func (a *analyticsUseCaseImpl) ImpactReport(ctx context.Context, start, end time.Time) (*readmodel.ImpactReportRM, error) {
	if !start.Before(end) {
		return nil, ErrInvalidDateRange
	}

	summary, err := a.analyticsRepo.ImpactSummary(ctx, start, end)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build impact summary")
	}

	trends, err := a.analyticsRepo.MonthlyTrends(ctx, start, end)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build monthly trends")
	}

	report := &readmodel.ImpactReportRM{Summary: *summary}
	for _, t := range trends {
		report.MonthlyTrends = append(report.MonthlyTrends, *t)
	}
	return report, nil
}
