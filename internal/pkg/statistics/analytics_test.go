package statistics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChurnRatePercent(t *testing.T) {
	assert.Equal(t, 0.0, churnRatePercent(0, 0))
	assert.Equal(t, 0.0, churnRatePercent(0, 10))
	assert.Equal(t, 25.0, churnRatePercent(1, 4))
	assert.Equal(t, 100.0, churnRatePercent(4, 4))
	// Rounded to two decimals, not truncated.
	assert.Equal(t, 33.33, churnRatePercent(1, 3))
	assert.Equal(t, 66.67, churnRatePercent(2, 3))
}

func TestChurnReport_JSONKeys(t *testing.T) {
	data, err := json.Marshal(ChurnReport{Total: 4, Cancelled: 1, ChurnRatePercent: 25})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Contains(t, got, "total_subscriptions")
	assert.Contains(t, got, "cancelled")
	assert.Contains(t, got, "churn_rate_percent")
	assert.Equal(t, 25.0, got["churn_rate_percent"])
}
