package utils_test

import (
	"testing"
	"time"

	"aparta-backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestCurrentBillingPeriod(t *testing.T) {
	at := time.Date(2025, time.October, 17, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-10", utils.CurrentBillingPeriod(at))
}

func TestBeginningOfDay(t *testing.T) {
	at := time.Date(2025, time.October, 17, 15, 30, 45, 123, time.UTC)
	assert.Equal(t, time.Date(2025, time.October, 17, 0, 0, 0, 0, time.UTC), utils.BeginningOfDay(at))
}
