package jobs

import (
	"context"

	"github.com/emrgen/linkdealer/internal/service"
	"github.com/sirupsen/logrus"
)

// NewSnapshotWarmTask creates a task that periodically rebuilds the info
// snapshot into the cache so /api/info is usually a cache hit.
func NewSnapshotWarmTask(info *service.InfoService, schedule string) *SnapshotWarmTask {
	return &SnapshotWarmTask{
		info:     info,
		schedule: schedule,
	}
}

type SnapshotWarmTask struct {
	info     *service.InfoService
	schedule string
}

func (t *SnapshotWarmTask) Name() string {
	return "snapshot_warm"
}

func (t *SnapshotWarmTask) Schedule() string {
	return t.schedule
}

func (t *SnapshotWarmTask) Run() {
	if _, err := t.info.Refresh(context.Background()); err != nil {
		logrus.Errorf("snapshot warm failed: %v", err)
	}
}
