package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yankhoury/homeplate/internal/models"
)

func TestParseOrderStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want models.OrderStatus
	}{
		{"received", models.StatusReceived},
		{"reçu", models.StatusReceived},
		{"accepted", models.StatusAccepted},
		{"acceptée", models.StatusAccepted},
		{"rejected", models.StatusRejected},
		{"refusée", models.StatusRejected},
		{"ready", models.StatusReady},
		{"préparée", models.StatusReady},
		{"out_for_delivery", models.StatusOutForDelivery},
		{"en_livraison", models.StatusOutForDelivery},
		{"delivered", models.StatusDelivered},
		{"livrée", models.StatusDelivered},
		{"cancelled", models.StatusCancelled},
		{"foo", models.StatusUnknown},
		{"", models.StatusUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, models.ParseOrderStatus(tc.raw))
		})
	}
}

func TestStatusPresentationIsTotal(t *testing.T) {
	statuses := []models.OrderStatus{
		models.StatusReceived,
		models.StatusAccepted,
		models.StatusRejected,
		models.StatusReady,
		models.StatusOutForDelivery,
		models.StatusDelivered,
		models.StatusCancelled,
		models.StatusUnknown,
		models.OrderStatus("something-the-backend-invented"),
	}

	for _, status := range statuses {
		presentation := status.Presentation()
		assert.NotEmpty(t, presentation.Label, "status %q must have a label", status)
		assert.NotEmpty(t, presentation.Severity, "status %q must have a severity", status)
	}

	assert.Equal(t, models.SeveritySuccess, models.StatusDelivered.Presentation().Severity)
	assert.Equal(t, models.SeverityDanger, models.StatusRejected.Presentation().Severity)
	assert.Equal(t, "Unknown", models.OrderStatus("foo").Presentation().Label)
}

func TestStatusPartition(t *testing.T) {
	t.Run("Delivered Is History", func(t *testing.T) {
		assert.False(t, models.StatusDelivered.IsActive())
		assert.True(t, models.StatusDelivered.IsTerminal())
	})

	t.Run("Accepted Is Active", func(t *testing.T) {
		assert.True(t, models.StatusAccepted.IsActive())
		assert.False(t, models.StatusAccepted.IsTerminal())
	})

	t.Run("Rejected And Cancelled Are History", func(t *testing.T) {
		assert.False(t, models.StatusRejected.IsActive())
		assert.False(t, models.StatusCancelled.IsActive())
	})

	t.Run("Unknown Status Does Not Panic And Counts As Active", func(t *testing.T) {
		status := models.ParseOrderStatus("foo")
		assert.True(t, status.IsActive())
	})
}
