package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	allowed := [][2]string{
		{OrderStatusNew, OrderStatusInProgress},
		{OrderStatusInProgress, OrderStatusReady},
		{OrderStatusReady, OrderStatusCompleted},
	}
	for _, pair := range allowed {
		assert.True(t, CanTransitionOrderStatus(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}

	denied := [][2]string{
		{OrderStatusNew, OrderStatusReady},
		{OrderStatusNew, OrderStatusCompleted},
		{OrderStatusInProgress, OrderStatusNew},
		{OrderStatusCompleted, OrderStatusNew},
		{OrderStatusCompleted, OrderStatusCompleted},
		{OrderStatusReady, OrderStatusInProgress},
	}
	for _, pair := range denied {
		assert.False(t, CanTransitionOrderStatus(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}
}
