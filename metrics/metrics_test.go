package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordOperation(t *testing.T) {
	counter := operationsTotal.WithLabelValues("test-provider", "move", OutcomeUnsupported)
	before := testutil.ToFloat64(counter)

	RecordOperation("test-provider", "move", OutcomeUnsupported)
	RecordOperation("test-provider", "move", OutcomeUnsupported)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestRecordUpload(t *testing.T) {
	before := testutil.CollectAndCount(uploadDuration)
	RecordUpload("test-provider-upload", OutcomeSuccess, 1500*time.Millisecond)
	assert.Equal(t, before+1, testutil.CollectAndCount(uploadDuration))
}
