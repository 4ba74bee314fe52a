package session

import (
	"github.com/robfig/cron/v3"

	"github.com/GoSim-25-26J-441/portfolio/internal/logutils"
)

// DefaultSweepSpec runs the purge every five minutes.
const DefaultSweepSpec = "@every 5m"

// StartSweeper schedules periodic purging of expired in-memory sessions.
// The caller stops the returned scheduler on shutdown.
func StartSweeper(store *MemoryStore, spec string) (*cron.Cron, error) {
	if spec == "" {
		spec = DefaultSweepSpec
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if n := store.Purge(); n > 0 {
			logutils.Log.WithFields(logutils.Fields{"purged": n, "live": store.Len()}).Debug("expired sessions removed")
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logutils.Log.WithField("spec", spec).Info("session sweeper started")
	return c, nil
}
