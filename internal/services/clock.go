package services

import (
	"time"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
)

// Clock returns the current time. Tests substitute a fixed or stepping clock.
type Clock func() time.Time

// stamp returns the current time at storage precision, forced strictly after
// prev so that successive updates of one entity never share a timestamp.
func stamp(now Clock, prev time.Time) time.Time {
	t := models.Timestamp(now())
	if !t.After(prev) {
		t = models.Timestamp(prev).Add(time.Millisecond)
	}
	return t
}
