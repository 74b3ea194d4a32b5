package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { Register(reg) })
	assert.Panics(t, func() { Register(reg) })
}

func TestRecordAuth(t *testing.T) {
	before := testutil.ToFloat64(AuthEvents.WithLabelValues("login", ResultFailure))
	RecordAuth("login", ResultFailure)
	assert.Equal(t, before+1, testutil.ToFloat64(AuthEvents.WithLabelValues("login", ResultFailure)))
}

func TestRecordMail(t *testing.T) {
	ok := testutil.ToFloat64(MailDeliveries.WithLabelValues("log", ResultSuccess))
	failed := testutil.ToFloat64(MailDeliveries.WithLabelValues("log", ResultFailure))

	RecordMail("log", nil)
	RecordMail("log", errors.New("down"))

	assert.Equal(t, ok+1, testutil.ToFloat64(MailDeliveries.WithLabelValues("log", ResultSuccess)))
	assert.Equal(t, failed+1, testutil.ToFloat64(MailDeliveries.WithLabelValues("log", ResultFailure)))
}

func TestRecordGatewayRejection(t *testing.T) {
	before := testutil.ToFloat64(GatewayRejections)
	RecordGatewayRejection()
	assert.Equal(t, before+1, testutil.ToFloat64(GatewayRejections))
}
