package core

import "testing"

func TestOrderStatusIsCompleted(t *testing.T) {
	cases := []struct {
		status OrderStatus
		want   bool
	}{
		{OrderStatusPaid, true},
		{OrderStatusProcessing, true},
		{OrderStatusDelivered, true},
		{OrderStatusPending, false},
		{OrderStatusCancelled, false},
		{OrderStatusPaymentError, false},
		{OrderStatus("unknown"), false},
	}
	for _, tc := range cases {
		if got := tc.status.IsCompleted(); got != tc.want {
			t.Errorf("%q.IsCompleted() = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestCompletedStatusesMatchIsCompleted(t *testing.T) {
	for _, s := range CompletedStatuses {
		if !s.IsCompleted() {
			t.Errorf("%q listed in CompletedStatuses but IsCompleted() is false", s)
		}
	}
}
