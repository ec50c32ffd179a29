package queries

import (
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/tracking"
)

// stageStamps holds the nullable stage timestamp columns of one parcel row.
// The read side derives status from these the same way the domain model does:
// the highest-power stage carrying a stamp wins.
type stageStamps struct {
	registeredAt   *time.Time
	receivedAtUSAt *time.Time
	repackingAt    *time.Time
	repackedAt     *time.Time
	boxedAt        *time.Time
	flyingBackAt   *time.Time
	receivedAtVNAt *time.Time
}

func (s stageStamps) status() tracking.Stage {
	stamped := []struct {
		stage tracking.Stage
		at    *time.Time
	}{
		{tracking.StageRegistered, s.registeredAt},
		{tracking.StageReceivedAtUS, s.receivedAtUSAt},
		{tracking.StageRepacking, s.repackingAt},
		{tracking.StageRepacked, s.repackedAt},
		{tracking.StageBoxed, s.boxedAt},
		{tracking.StageFlyingBack, s.flyingBackAt},
		{tracking.StageReceivedAtVN, s.receivedAtVNAt},
	}

	status := tracking.StageNew
	for _, entry := range stamped {
		if entry.at != nil && status.Before(entry.stage) {
			status = entry.stage
		}
	}
	return status
}

// stageColumns maps each stamped stage to its tracking_items column, in
// ascending power order. Used to build status predicates on the read side.
var stageColumns = []struct {
	stage  tracking.Stage
	column string
}{
	{tracking.StageRegistered, "registered_at"},
	{tracking.StageReceivedAtUS, "received_at_us_at"},
	{tracking.StageRepacking, "repacking_at"},
	{tracking.StageRepacked, "repacked_at"},
	{tracking.StageBoxed, "boxed_at"},
	{tracking.StageFlyingBack, "flying_back_at"},
	{tracking.StageReceivedAtVN, "received_at_vn_at"},
}

// statusPredicate returns the SQL condition selecting rows whose derived
// status equals the given stage: the stage's own column is set and every
// higher-power column is null. For StageNew all columns are null.
func statusPredicate(status tracking.Stage) string {
	// lower-power columns are ignored: the highest stamp wins regardless
	parts := make([]string, 0, len(stageColumns))
	for _, entry := range stageColumns {
		switch {
		case entry.stage == status:
			parts = append(parts, entry.column+" IS NOT NULL")
		case status.Before(entry.stage):
			parts = append(parts, entry.column+" IS NULL")
		}
	}
	return strings.Join(parts, " AND ")
}
