package rewards

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tourguide.openclassrooms.org/internal/metrics"
	"tourguide.openclassrooms.org/internal/models"
)

type staticCatalog struct {
	attractions []models.Attraction
	err         error
}

func (c *staticCatalog) Attractions(ctx context.Context) ([]models.Attraction, error) {
	if c.err != nil {
		return nil, c.err
	}
	return append([]models.Attraction(nil), c.attractions...), nil
}

type fakeOracle struct {
	calls   atomic.Int32
	failFor map[uuid.UUID]bool
	delay   time.Duration
}

func (o *fakeOracle) AttractionRewardPoints(ctx context.Context, attractionID, travelerID uuid.UUID) (int, error) {
	o.calls.Add(1)
	time.Sleep(o.delay)
	if o.failFor[attractionID] {
		return 0, errors.New("reward central timeout")
	}
	return 100, nil
}

func testAttractions() []models.Attraction {
	return []models.Attraction{
		{ID: uuid.New(), Name: "Disneyland", Coordinate: models.Coordinate{Latitude: 33.817595, Longitude: -117.922008}},
		{ID: uuid.New(), Name: "Jackson Hole", Coordinate: models.Coordinate{Latitude: 43.582767, Longitude: -110.821999}},
		{ID: uuid.New(), Name: "Mojave National Preserve", Coordinate: models.Coordinate{Latitude: 35.141689, Longitude: -115.510399}},
		{ID: uuid.New(), Name: "Joshua Tree National Park", Coordinate: models.Coordinate{Latitude: 33.881866, Longitude: -115.90065}},
		{ID: uuid.New(), Name: "Bronx Zoo", Coordinate: models.Coordinate{Latitude: 40.852905, Longitude: -73.872971}},
	}
}

func newTestEngine(attractions []models.Attraction, oracle Oracle) *Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	proximity := NewProximity(DefaultProximityBuffer, DefaultAttractionProximityRange)
	return NewEngine(&staticCatalog{attractions: attractions}, oracle, proximity, logger)
}

func newTestTraveler() *models.Traveler {
	return models.NewTraveler(uuid.New(), "jon", "000", "jon@tourGuide.com")
}

func assertUniqueRewards(t *testing.T, rewards []models.Reward) {
	t.Helper()
	seen := make(map[string]bool)
	for _, r := range rewards {
		assert.False(t, seen[r.Attraction.Name], "duplicate reward for %s", r.Attraction.Name)
		seen[r.Attraction.Name] = true
	}
}

func TestUserGetsRewardAtAttraction(t *testing.T) {
	attractions := testAttractions()
	engine := newTestEngine(attractions, &fakeOracle{})
	traveler := newTestTraveler()
	traveler.AddVisit(models.NewVisit(traveler.ID, attractions[0].Coordinate, time.Now()))

	require.NoError(t, engine.CalculateRewards(context.Background(), traveler))

	rewards := traveler.Rewards()
	require.Len(t, rewards, 1)
	assert.Equal(t, "Disneyland", rewards[0].Attraction.Name)
	assert.Equal(t, 100, rewards[0].Points)
}

func TestNearAllAttractions(t *testing.T) {
	attractions := testAttractions()
	engine := newTestEngine(attractions, &fakeOracle{})
	engine.Proximity.SetProximityBuffer(math.MaxFloat64)
	traveler := newTestTraveler()
	traveler.AddVisit(models.NewVisit(traveler.ID, attractions[0].Coordinate, time.Now()))

	require.NoError(t, engine.CalculateRewards(context.Background(), traveler))

	assert.Len(t, traveler.Rewards(), len(attractions))
	assertUniqueRewards(t, traveler.Rewards())
}

func TestZeroBufferGrantsNothing(t *testing.T) {
	attractions := testAttractions()
	oracle := &fakeOracle{}
	engine := newTestEngine(attractions, oracle)
	engine.Proximity.SetProximityBuffer(0)
	traveler := newTestTraveler()
	offset := models.Coordinate{Latitude: attractions[0].Coordinate.Latitude + 0.01, Longitude: attractions[0].Coordinate.Longitude}
	traveler.AddVisit(models.NewVisit(traveler.ID, offset, time.Now()))

	require.NoError(t, engine.CalculateRewards(context.Background(), traveler))

	assert.Empty(t, traveler.Rewards())
	assert.Equal(t, int32(0), oracle.calls.Load())
}

func TestCalculateRewardsIsIdempotent(t *testing.T) {
	attractions := testAttractions()
	oracle := &fakeOracle{}
	engine := newTestEngine(attractions, oracle)
	engine.Proximity.SetProximityBuffer(math.MaxFloat64)
	traveler := newTestTraveler()
	traveler.AddVisit(models.NewVisit(traveler.ID, attractions[0].Coordinate, time.Now()))

	require.NoError(t, engine.CalculateRewards(context.Background(), traveler))
	first := traveler.Rewards()
	callsAfterFirst := oracle.calls.Load()

	require.NoError(t, engine.CalculateRewards(context.Background(), traveler))

	assert.Equal(t, first, traveler.Rewards())
	assert.Equal(t, callsAfterFirst, oracle.calls.Load(), "no attraction should be scored twice")
}

func TestMultipleVisitsScoreAttractionOnce(t *testing.T) {
	attractions := testAttractions()
	oracle := &fakeOracle{}
	engine := newTestEngine(attractions, oracle)
	traveler := newTestTraveler()
	first := models.NewVisit(traveler.ID, attractions[0].Coordinate, time.Now().Add(-time.Hour))
	traveler.AddVisit(first)
	traveler.AddVisit(models.NewVisit(traveler.ID, attractions[0].Coordinate, time.Now()))

	require.NoError(t, engine.CalculateRewards(context.Background(), traveler))

	rewards := traveler.Rewards()
	require.Len(t, rewards, 1)
	assert.Equal(t, first, rewards[0].Visit)
	assert.Equal(t, int32(1), oracle.calls.Load())
}

func TestConcurrentCalculateRewardsForOneTraveler(t *testing.T) {
	attractions := testAttractions()
	engine := newTestEngine(attractions, &fakeOracle{delay: time.Millisecond})
	engine.Proximity.SetProximityBuffer(math.MaxFloat64)
	traveler := newTestTraveler()
	traveler.AddVisit(models.NewVisit(traveler.ID, attractions[0].Coordinate, time.Now()))
	traveler.AddVisit(models.NewVisit(traveler.ID, attractions[4].Coordinate, time.Now()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, engine.CalculateRewards(context.Background(), traveler))
		}()
	}
	wg.Wait()

	assert.Len(t, traveler.Rewards(), len(attractions))
	assertUniqueRewards(t, traveler.Rewards())
}

func TestOracleFailureOnlyDropsThatAttraction(t *testing.T) {
	attractions := testAttractions()
	oracle := &fakeOracle{failFor: map[uuid.UUID]bool{attractions[1].ID: true}}
	engine := newTestEngine(attractions, oracle)
	engine.Proximity.SetProximityBuffer(math.MaxFloat64)
	traveler := newTestTraveler()
	traveler.AddVisit(models.NewVisit(traveler.ID, attractions[0].Coordinate, time.Now()))
	failuresBefore := testutil.ToFloat64(metrics.OracleFailures)

	require.NoError(t, engine.CalculateRewards(context.Background(), traveler))

	assert.Len(t, traveler.Rewards(), len(attractions)-1)
	assert.False(t, traveler.HasRewardFor("Jackson Hole"))
	assert.Equal(t, failuresBefore+1, testutil.ToFloat64(metrics.OracleFailures))

	// Once the oracle recovers the missing attraction is picked up.
	oracle.failFor = nil
	require.NoError(t, engine.CalculateRewards(context.Background(), traveler))
	assert.True(t, traveler.HasRewardFor("Jackson Hole"))
}

func TestCatalogFailureCommitsNothing(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog := &staticCatalog{err: models.ErrProviderUnavailable}
	engine := NewEngine(catalog, &fakeOracle{}, NewProximity(math.MaxFloat64, DefaultAttractionProximityRange), logger)
	traveler := newTestTraveler()
	traveler.AddVisit(models.NewVisit(traveler.ID, models.Coordinate{}, time.Now()))

	err := engine.CalculateRewards(context.Background(), traveler)

	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
	assert.Empty(t, traveler.Rewards())
}

func TestRewardsOnlyForQualifyingVisits(t *testing.T) {
	attractions := testAttractions()
	engine := newTestEngine(attractions, &fakeOracle{})
	engine.Proximity.SetProximityBuffer(500)
	rng := rand.New(rand.NewPCG(42, 7))

	for i := 0; i < 20; i++ {
		traveler := newTestTraveler()
		for j := 0; j < 3; j++ {
			c := models.Coordinate{Latitude: rng.Float64()*180 - 90, Longitude: rng.Float64()*360 - 180}
			traveler.AddVisit(models.NewVisit(traveler.ID, c, time.Now()))
		}

		require.NoError(t, engine.CalculateRewards(context.Background(), traveler))

		rewards := traveler.Rewards()
		assertUniqueRewards(t, rewards)
		for _, r := range rewards {
			qualifies := false
			for _, v := range traveler.Visits() {
				qualifies = qualifies || engine.Proximity.QualifiesForReward(v, r.Attraction)
			}
			assert.True(t, qualifies, "reward for %s has no qualifying visit", r.Attraction.Name)
		}
	}
}

func TestNegativeScoreIsRejected(t *testing.T) {
	engine := newTestEngine(testAttractions(), oracleFunc(func(ctx context.Context, a, u uuid.UUID) (int, error) {
		return -5, nil
	}))

	_, err := engine.RewardPoints(context.Background(), testAttractions()[0], newTestTraveler())

	assert.ErrorIs(t, err, models.ErrOracleUnavailable)
}

type oracleFunc func(ctx context.Context, attractionID, travelerID uuid.UUID) (int, error)

func (f oracleFunc) AttractionRewardPoints(ctx context.Context, attractionID, travelerID uuid.UUID) (int, error) {
	return f(ctx, attractionID, travelerID)
}

type blockingOracle struct{}

func (blockingOracle) AttractionRewardPoints(ctx context.Context, attractionID, travelerID uuid.UUID) (int, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

// sentryEvents routes Sentry events into a counter for the rest of the test.
func sentryEvents(t *testing.T) func() int {
	t.Helper()
	var (
		mu sync.Mutex
		n  int
	)
	require.NoError(t, sentry.Init(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			mu.Lock()
			defer mu.Unlock()
			n++
			return nil
		},
	}))
	t.Cleanup(func() { _ = sentry.Init(sentry.ClientOptions{}) })
	return func() int {
		mu.Lock()
		defer mu.Unlock()
		return n
	}
}

func TestCancelledScoringIsNotReported(t *testing.T) {
	events := sentryEvents(t)
	attractions := testAttractions()
	engine := newTestEngine(attractions, blockingOracle{})
	engine.Proximity.SetProximityBuffer(math.MaxFloat64)
	traveler := newTestTraveler()
	traveler.AddVisit(models.NewVisit(traveler.ID, attractions[0].Coordinate, time.Now()))

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	require.NoError(t, engine.CalculateRewards(ctx, traveler))
	assert.Empty(t, traveler.Rewards())
	assert.Equal(t, 0, events(), "cancelled oracle calls must not reach Sentry")

	_, err := engine.RewardPoints(ctx, attractions[0], traveler)
	assert.ErrorIs(t, err, models.ErrOracleUnavailable)
	assert.ErrorIs(t, err, context.Canceled)

	engine.Oracle = &fakeOracle{failFor: map[uuid.UUID]bool{attractions[1].ID: true}}
	require.NoError(t, engine.CalculateRewards(context.Background(), traveler))
	assert.Equal(t, 1, events(), "real oracle failures are still reported")
}
