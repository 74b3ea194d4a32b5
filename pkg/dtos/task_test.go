package dtos

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	var req DTOForTaskCreate

	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":"2030-05-17"}`), &req))
	require.NotNil(t, req.DueDate)
	assert.Equal(t, time.Date(2030, 5, 17, 0, 0, 0, 0, time.UTC), req.DueDate.Time)

	req = DTOForTaskCreate{}
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":"2030-05-17T10:30:00Z"}`), &req))
	assert.Equal(t, 10, req.DueDate.Hour())

	req = DTOForTaskCreate{}
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":null}`), &req))
	assert.Nil(t, req.DueDate.Ptr())

	assert.Error(t, json.Unmarshal([]byte(`{"dueDate":"next tuesday"}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"dueDate":20300517}`), &req))
}

func TestOptionalDate_DistinguishesAbsentFromNull(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		set     bool
		wantNil bool
	}{
		{"absent", `{"title":"t"}`, false, true},
		{"null", `{"dueDate":null}`, true, true},
		{"date", `{"dueDate":"2030-05-17"}`, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req DTOForTaskUpdate
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.set, req.DueDate.Set)
			assert.Equal(t, tt.wantNil, req.DueDate.Date.Ptr() == nil)
		})
	}

	var req DTOForTaskUpdate
	assert.Error(t, json.Unmarshal([]byte(`{"dueDate":"soon"}`), &req))
}
