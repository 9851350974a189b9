package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// TimeutilSuite tests the clock policy functions.
//
// Justification: pure date arithmetic with boundary semantics the whole
// expiry pipeline depends on. The ceiling rule for DaysUntil must be
// preserved exactly for display parity.
type TimeutilSuite struct {
	suite.Suite
	now time.Time
}

func TestTimeutilSuite(t *testing.T) {
	suite.Run(t, new(TimeutilSuite))
}

func (s *TimeutilSuite) SetupTest() {
	s.now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (s *TimeutilSuite) TestDaysUntil_CeilingRule() {
	s.Run("two and a half days rounds up to three", func() {
		target := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
		s.Equal(3, DaysUntil(target, s.now))
	})

	s.Run("exact day boundary stays exact", func() {
		target := s.now.Add(2 * Day)
		s.Equal(2, DaysUntil(target, s.now))
	})

	s.Run("later today reads as zero days", func() {
		target := s.now.Add(-6 * time.Hour)
		s.Equal(0, DaysUntil(target, s.now))
	})

	s.Run("past targets are negative", func() {
		target := s.now.Add(-3 * Day)
		s.Equal(-3, DaysUntil(target, s.now))
	})
}

func (s *TimeutilSuite) TestIsExpiredByTime() {
	s.Run("before expiry is not expired", func() {
		s.False(IsExpiredByTime(s.now.Add(time.Second), s.now))
	})

	s.Run("exactly at expiry is expired", func() {
		s.True(IsExpiredByTime(s.now, s.now))
	})

	s.Run("after expiry is expired", func() {
		s.True(IsExpiredByTime(s.now.Add(-time.Second), s.now))
	})
}

func (s *TimeutilSuite) TestIsExpiringSoon_WindowBoundaries() {
	s.Run("inside the window", func() {
		s.True(IsExpiringSoon(s.now.Add(5*Day), s.now, 7))
	})

	s.Run("exactly at window edge is included", func() {
		s.True(IsExpiringSoon(s.now.Add(7*Day), s.now, 7))
	})

	s.Run("beyond the window is excluded", func() {
		s.False(IsExpiringSoon(s.now.Add(7*Day+time.Second), s.now, 7))
	})

	s.Run("already past is excluded", func() {
		s.False(IsExpiringSoon(s.now.Add(-time.Second), s.now, 7))
	})

	s.Run("expiring right now is excluded", func() {
		s.False(IsExpiringSoon(s.now, s.now, 7))
	})
}

func (s *TimeutilSuite) TestRelativeTime() {
	s.Run("under a minute", func() {
		s.Equal("Just now", RelativeTime(s.now.Add(-30*time.Second), s.now))
	})

	s.Run("singular units", func() {
		s.Equal("1 hour ago", RelativeTime(s.now.Add(-90*time.Minute), s.now))
	})

	s.Run("plural units", func() {
		s.Equal("2 hours ago", RelativeTime(s.now.Add(-2*time.Hour), s.now))
		s.Equal("3 days ago", RelativeTime(s.now.Add(-3*Day), s.now))
	})

	s.Run("older than a week falls back to a date", func() {
		s.Equal("22 Dec 2023", RelativeTime(s.now.Add(-10*Day), s.now))
	})
}
