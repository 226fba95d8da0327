package tourguide

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"tourguide.openclassrooms.org/internal/models"
)

const (
	internalUserPhone       = "000"
	internalUserEmailDomain = "tourGuide.com"
	internalUserVisits      = 3
	internalUserHistoryDays = 30
)

// InternalUserName returns the name of the i-th generated test user.
func InternalUserName(i int) string {
	return fmt.Sprintf("internalUser%d", i)
}

// InitializeInternalUsers registers n generated travelers, each with a short
// random visit history from the last 30 days. It returns how many were added;
// names already taken are skipped.
func (s *Service) InitializeInternalUsers(n int) int {
	now := s.Now()
	added := 0
	for i := 0; i < n; i++ {
		name := InternalUserName(i)
		t := models.NewTraveler(uuid.New(), name, internalUserPhone, name+"@"+internalUserEmailDomain)
		for j := 0; j < internalUserVisits; j++ {
			t.AddVisit(models.NewVisit(t.ID, randomCoordinate(), randomTimeWithin(now, internalUserHistoryDays)))
		}
		if s.AddUser(t) {
			added++
		}
	}
	s.Logger.Info("Created internal test users", "count", added)
	return added
}

func randomCoordinate() models.Coordinate {
	return models.Coordinate{
		Latitude:  -85.05112878 + rand.Float64()*2*85.05112878,
		Longitude: -180 + rand.Float64()*360,
	}
}

func randomTimeWithin(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -rand.IntN(days)).UTC()
}
