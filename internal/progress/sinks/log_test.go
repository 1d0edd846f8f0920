package sinks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/JakeFAU/domain-harvester/internal/progress"
)

func TestLogSinkReportsNewDomains(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	sink := NewLogSink(zap.New(core))

	runID := progress.UUIDToBytes(uuid.New())
	err := sink.Consume(context.Background(), []progress.Event{
		{RunID: runID, TS: time.Now(), Stage: progress.StageDomainAdded, Domain: "example.com", Total: 3},
		{RunID: runID, TS: time.Now(), Stage: progress.StageFetchDone, URL: "https://example.com/", Outcome: progress.OutcomeOK},
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("domain added").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "example.com", fields["domain"])
	require.EqualValues(t, 3, fields["total"])
	require.Zero(t, logs.FilterMessage("fetch done").Len(), "fetch events are debug only")
}
