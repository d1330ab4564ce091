package service

import (
	"context"
	"errors"
	"time"

	"fitstudio/coach-app/internal/domain"
	"fitstudio/coach-app/internal/pattern"
	"fitstudio/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DayActivity is one weekday cell of the insights grid.
type DayActivity struct {
	Label    string `json:"label"`
	Date     int64  `json:"date"` // epoch ms, start of day
	InScope  bool   `json:"inScope"`
	Future   bool   `json:"future"`
	Planned  bool   `json:"planned"`
	Workouts int    `json:"workouts"`
	Meals    int    `json:"meals"`
}

// ClientInsights is the aggregated activity view for one client and
// scope, with period-over-period comparison against the matching prior
// window.
type ClientInsights struct {
	Scope       pattern.Scope `json:"scope"`
	RangeStart  int64         `json:"rangeStart"`
	RangeEnd    int64         `json:"rangeEnd"`
	DaysInScope int           `json:"daysInScope"`

	Sessions              int    `json:"sessions"`
	SessionsDelta         string `json:"sessionsDelta"`
	CompletedSessions     int    `json:"completedSessions"`
	CaloriesBurned        int    `json:"caloriesBurned"`
	CaloriesBurnedDelta   string `json:"caloriesBurnedDelta"`
	ActiveTimeSeconds     int64  `json:"activeTimeSeconds"`
	MealsLogged           int    `json:"mealsLogged"`
	MealsLoggedDelta      string `json:"mealsLoggedDelta"`
	CaloriesConsumed      int    `json:"caloriesConsumed"`
	CaloriesConsumedDelta string `json:"caloriesConsumedDelta"`
	WeightEntries         int    `json:"weightEntries"`
	WeightEntriesDelta    string `json:"weightEntriesDelta"`

	PlannedWorkouts    int `json:"plannedWorkouts"`
	WorkoutProgressPct int `json:"workoutProgressPct"`
	DietProgressPct    int `json:"dietProgressPct"`
	ConsistencyPct     int `json:"consistencyPct"`

	Days        []DayActivity       `json:"days,omitempty"`
	WeightTrend pattern.WeightTrend `json:"weightTrend"`
}

// InsightsService aggregates a client's logged activity into the
// coaching dashboard view.
type InsightsService interface {
	ClientInsights(ctx context.Context, requesterID, clientID primitive.ObjectID, scope pattern.Scope) (*ClientInsights, error)
}

// insightsService implements the InsightsService interface.
type insightsService struct {
	userRepo    repository.UserRepository
	patternRepo repository.ClientPatternRepository
	programRepo repository.ProgramTemplateRepository
	sessionRepo repository.WorkoutSessionRepository
	dietLogRepo repository.DietLogRepository
	weightRepo  repository.WeightLogRepository
	now         func() time.Time
}

// NewInsightsService creates a new instance of insightsService.
func NewInsightsService(
	userRepo repository.UserRepository,
	patternRepo repository.ClientPatternRepository,
	programRepo repository.ProgramTemplateRepository,
	sessionRepo repository.WorkoutSessionRepository,
	dietLogRepo repository.DietLogRepository,
	weightRepo repository.WeightLogRepository,
) InsightsService {
	return &insightsService{
		userRepo:    userRepo,
		patternRepo: patternRepo,
		programRepo: programRepo,
		sessionRepo: sessionRepo,
		dietLogRepo: dietLogRepo,
		weightRepo:  weightRepo,
		now:         time.Now,
	}
}

// authorize mirrors the pattern access rule: the client themself, their
// trainer, or an admin.
func (s *insightsService) authorize(ctx context.Context, requesterID, clientID primitive.ObjectID) error {
	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	if !client.IsCustomer() {
		return ErrClientNotRole
	}

	if requesterID == clientID {
		return nil
	}
	if client.TrainerID != nil && *client.TrainerID == requesterID {
		return nil
	}
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err == nil && requester.IsAdmin() {
		return nil
	}
	return ErrPatternDenied
}

// ClientInsights computes the dashboard aggregates for one scope. Events
// for the current and previous windows are fetched in one superset query
// per collection and split in memory.
func (s *insightsService) ClientInsights(ctx context.Context, requesterID, clientID primitive.ObjectID, scope pattern.Scope) (*ClientInsights, error) {
	if err := s.authorize(ctx, requesterID, clientID); err != nil {
		return nil, err
	}

	now := s.now()
	rng := pattern.RangeFor(scope, now)
	days := pattern.DayWindows(scope, now)

	// The previous window always starts before the current one, so one
	// range query per collection covers both.
	sessions, err := s.sessionRepo.GetByUserInRange(ctx, clientID, rng.PreviousStart, rng.End)
	if err != nil {
		return nil, err
	}
	meals, err := s.dietLogRepo.GetByUserInRange(ctx, clientID, rng.PreviousStart, rng.End)
	if err != nil {
		return nil, err
	}
	weights, err := s.weightRepo.GetByUserInRange(ctx, clientID, rng.PreviousStart, rng.End)
	if err != nil {
		return nil, err
	}

	curSessions := pattern.FilterWorkouts(sessions, rng.Start, rng.End)
	prevSessions := pattern.FilterWorkouts(sessions, rng.PreviousStart, rng.PreviousEnd)
	curMeals := pattern.FilterDietLogs(meals, rng.Start, rng.End)
	prevMeals := pattern.FilterDietLogs(meals, rng.PreviousStart, rng.PreviousEnd)
	curWeights := pattern.FilterWeightLogs(weights, rng.Start, rng.End)
	prevWeights := pattern.FilterWeightLogs(weights, rng.PreviousStart, rng.PreviousEnd)

	curWorkout := pattern.SumWorkouts(curSessions)
	prevWorkout := pattern.SumWorkouts(prevSessions)
	curDiet := pattern.SumDietLogs(curMeals)
	prevDiet := pattern.SumDietLogs(prevMeals)

	insights := &ClientInsights{
		Scope:       scope,
		RangeStart:  rng.Start,
		RangeEnd:    rng.End,
		DaysInScope: rng.DaysInScope,

		Sessions:              curWorkout.Sessions,
		SessionsDelta:         pattern.FormatDelta(curWorkout.Sessions, prevWorkout.Sessions),
		CompletedSessions:     pattern.CompletedSessions(curSessions),
		CaloriesBurned:        curWorkout.Calories,
		CaloriesBurnedDelta:   pattern.FormatDelta(curWorkout.Calories, prevWorkout.Calories),
		ActiveTimeSeconds:     curWorkout.TimeSeconds,
		MealsLogged:           curDiet.Logs,
		MealsLoggedDelta:      pattern.FormatDelta(curDiet.Logs, prevDiet.Logs),
		CaloriesConsumed:      curDiet.Calories,
		CaloriesConsumedDelta: pattern.FormatDelta(curDiet.Calories, prevDiet.Calories),
		WeightEntries:         len(curWeights),
		WeightEntriesDelta:    pattern.FormatDelta(len(curWeights), len(prevWeights)),

		DietProgressPct: pattern.DietProgressPercent(curDiet.Logs, rng.DaysInScope),
	}

	// Planned workouts and the weight trend come from the pattern
	// document; a client with no pattern yet simply has zero plan.
	state, err := s.patternRepo.GetByClientID(ctx, clientID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	var tpl *domain.ProgramTemplate
	if state != nil {
		insights.WeightTrend = pattern.Trend(state.WeightLog)
		if state.Workout != nil && state.Workout.SourceTemplateID != nil {
			tpl, err = s.programRepo.GetByID(ctx, *state.Workout.SourceTemplateID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
		}
	}
	if tpl != nil {
		insights.PlannedWorkouts = pattern.PlannedWorkoutDays(*tpl, days)
	}
	insights.WorkoutProgressPct = pattern.WorkoutProgressPercent(insights.CompletedSessions, insights.PlannedWorkouts)

	if len(days) > 0 {
		scheduled := make(map[string]bool)
		if tpl != nil {
			for _, d := range tpl.DailyWorkouts {
				if len(d.KeyWork) > 0 {
					scheduled[d.DayLabel] = true
				}
			}
		}

		daysWithActivity := 0
		grid := make([]DayActivity, 0, len(days))
		for _, day := range days {
			cell := DayActivity{
				Label:    day.Label,
				Date:     day.Start,
				InScope:  day.InScope,
				Future:   day.Future,
				Planned:  scheduled[day.Label],
				Workouts: len(pattern.FilterWorkouts(curSessions, day.Start, day.End)),
				Meals:    len(pattern.FilterDietLogs(curMeals, day.Start, day.End)),
			}
			if cell.InScope && !cell.Future && (cell.Workouts > 0 || cell.Meals > 0) {
				daysWithActivity++
			}
			grid = append(grid, cell)
		}
		insights.Days = grid
		insights.ConsistencyPct = pattern.WeeklyConsistencyPercent(daysWithActivity, rng.DaysInScope)
	}

	return insights, nil
}
