package models

import "testing"

func TestForwardTransitions(t *testing.T) {
	allowed := []struct{ from, to string }{
		{OrderPending, OrderConfirmed},
		{OrderPending, OrderCancelled},
		{OrderConfirmed, OrderProcessing},
		{OrderConfirmed, OrderCancelled},
		{OrderProcessing, OrderShipped},
		{OrderShipped, OrderDelivered},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = false, want true", tc.from, tc.to)
		}
	}

	forbidden := []struct{ from, to string }{
		{OrderConfirmed, OrderPending},
		{OrderProcessing, OrderCancelled},
		{OrderShipped, OrderCancelled},
		{OrderDelivered, OrderShipped},
		{OrderCancelled, OrderConfirmed},
		{OrderPending, OrderShipped},
		{OrderDelivered, OrderDelivered},
	}
	for _, tc := range forbidden {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = true, want false", tc.from, tc.to)
		}
	}
}

func TestCancellable(t *testing.T) {
	if !Cancellable(OrderPending) || !Cancellable(OrderConfirmed) {
		t.Error("pending and confirmed orders must be cancellable")
	}
	for _, s := range []string{OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		if Cancellable(s) {
			t.Errorf("Cancellable(%s) = true, want false", s)
		}
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		if !ValidOrderStatus(s) {
			t.Errorf("ValidOrderStatus(%s) = false", s)
		}
	}
	if ValidOrderStatus("refunded") {
		t.Error("unknown status accepted")
	}
}
