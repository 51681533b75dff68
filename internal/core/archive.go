package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"wellcore/internal/blob"
	"wellcore/pkg/domain"
)

// archiveReport writes the decision report as a JSON blob. Archival is best
// effort: a failing archive backend must not abort the simulation step.
func (s *Service) archiveReport(ctx context.Context, rpt *domain.StepReport) {
	rpt.ID = uuid.NewString()
	key := fmt.Sprintf("reports/%s/%s.json", rpt.Well, rpt.ID)

	data, err := json.Marshal(rpt)
	if err != nil {
		s.logger.Error("encode step report", "well", rpt.Well, "error", err)
		return
	}

	opts := blob.PutOptions{
		ContentType: "application/json",
		Metadata: map[string]string{
			"well":     rpt.Well,
			"sim_time": fmt.Sprintf("%g", rpt.SimTime),
			"recorded": s.clock.Now().Format("2006-01-02T15:04:05Z07:00"),
		},
	}
	if _, err := s.archive.Put(ctx, key, bytes.NewReader(data), opts); err != nil {
		s.logger.Error("archive step report", "well", rpt.Well, "key", key, "error", err)
		return
	}
	s.logger.Debug("archived step report", "well", rpt.Well, "key", key)
}
