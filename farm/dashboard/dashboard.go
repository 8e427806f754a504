package dashboard

import (
	"context"
	"errors"
	"time"

	"codeberg.org/krishisakhi/server/farm/crops"
	"codeberg.org/krishisakhi/server/farm/detections"
	"codeberg.org/krishisakhi/server/farm/tips"
	"codeberg.org/krishisakhi/server/farm/users"
	"codeberg.org/krishisakhi/server/farm/weather"
	"codeberg.org/krishisakhi/server/internal/pages"
	"codeberg.org/krishisakhi/server/internal/store"
	"golang.org/x/sync/errgroup"
)

var quickActions = []struct {
	page, titleKey, descriptionKey string
}{
	{pages.DiseaseDetection, "detectDisease", "scanPlantForDiseases"},
	{pages.CropManagement, "addCrop", "registerNewCrop"},
	{pages.ExpertTips, "getTips", "expertFarmingAdvice"},
	{pages.Weather, "checkWeather", "weatherForecast"},
}

func NewService(
	cropRepo *crops.Repository,
	detectionRepo *detections.Repository,
	tipRepo *tips.Repository,
	userRepo *users.Repository,
	weatherSvc *weather.Service,
) *Service {
	return &Service{
		crops:      cropRepo,
		detections: detectionRepo,
		tips:       tipRepo,
		users:      userRepo,
		weather:    weatherSvc,
		now:        time.Now,
	}
}

// loads every section concurrently; store failures fail the dashboard,
// a weather failure only leaves Weather nil
func (s *Service) Load(ctx context.Context, opts Options) (*Dashboard, error) {
	t := opts.Translator
	key := GreetingKey(s.now().Hour())

	d := &Dashboard{
		GreetingKey:  key,
		Greeting:     t.T(key),
		UserName:     t.T("farmer"),
		Subtitle:     t.T("dashboardSubtitle"),
		QuickActions: make([]QuickAction, len(quickActions)),
	}

	for i, qa := range quickActions {
		d.QuickActions[i] = QuickAction{
			Title:       t.T(qa.titleKey),
			Description: t.T(qa.descriptionKey),
			URL:         pages.URL(qa.page, nil),
		}
	}

	newest := store.ParseOrder("-created_date")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		active, err := s.crops.List(gctx, crops.ListFilter{Status: crops.StatusActive}, newest, activeCropsLimit)
		if err != nil {
			return err
		}

		d.ActiveCrops = active
		d.CropSummary = crops.Summarize(active)
		return nil
	})

	g.Go(func() error {
		recent, err := s.detections.List(gctx, detections.ListFilter{}, newest, recentDetectionsLimit)
		if err != nil {
			return err
		}

		d.RecentDetections = recent
		return nil
	})

	g.Go(func() error {
		featured, err := s.tips.List(gctx, tips.ListFilter{}, newest, featuredTipsLimit)
		if err != nil {
			return err
		}

		d.FeaturedTips = featured
		return nil
	})

	if opts.UserID != "" {
		g.Go(func() error {
			user, err := s.users.Me(gctx, opts.UserID)
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}

			if err != nil {
				return err
			}

			if user.FullName != "" {
				d.UserName = user.FullName
			}

			return nil
		})
	}

	// weather runs on the parent context so a store failure does not
	// surface as a cancelled weather call
	weatherDone := make(chan struct{})
	go func() {
		defer close(weatherDone)
		d.Weather, d.weatherErr = s.weather.Brief(ctx, opts.Location)
	}()

	err := g.Wait()
	<-weatherDone

	if err != nil {
		return nil, err
	}

	return d, nil
}

// picks the greeting translation key for an hour of the day
func GreetingKey(hour int) string {
	switch {
	case hour < 12:
		return "greetingMorning"
	case hour < 17:
		return "greetingAfternoon"
	default:
		return "greetingEvening"
	}
}
