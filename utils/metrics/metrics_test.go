package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordFetch(t *testing.T) {
	before := testutil.ToFloat64(FetchTotal.WithLabelValues("network"))

	RecordFetch("network", 0.25)
	RecordFetch("network", 0.5)

	assert.Equal(t, before+2, testutil.ToFloat64(FetchTotal.WithLabelValues("network")))
}

func TestRecordExtraction(t *testing.T) {
	dropped := testutil.ToFloat64(RecordsDropped)

	RecordExtraction(150, 2)
	RecordExtraction(148, 0)

	assert.Equal(t, float64(148), testutil.ToFloat64(RecordsExtracted))
	assert.Equal(t, dropped+2, testutil.ToFloat64(RecordsDropped))
}

func TestRecordSkippedTrigger(t *testing.T) {
	before := testutil.ToFloat64(TriggersSkipped)

	RecordSkippedTrigger()

	assert.Equal(t, before+1, testutil.ToFloat64(TriggersSkipped))
}
