package domain

import "testing"

func TestShipmentStatus_EventType(t *testing.T) {
	cases := []struct {
		status ShipmentStatus
		event  ShipmentEventType
		ok     bool
	}{
		{StatusPending, "", false},
		{StatusPickedUp, EventPickedUp, true},
		{StatusInTransit, EventInTransit, true},
		{StatusArrivedAtPort, EventArrivedAtPort, true},
		{StatusDelivered, EventDelivered, true},
		{ShipmentStatus("UNKNOWN"), "", false},
	}

	for _, c := range cases {
		event, ok := c.status.EventType()
		if ok != c.ok || event != c.event {
			t.Errorf("EventType(%s) = (%s, %v), expected (%s, %v)",
				c.status, event, ok, c.event, c.ok)
		}
	}
}

func TestShipmentStatus_IsValid(t *testing.T) {
	for _, s := range ShipmentStatuses {
		if !s.IsValid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if ShipmentStatus("SHIPPED").IsValid() {
		t.Errorf("SHIPPED must not be a valid status")
	}
	if ShipmentStatus("pending").IsValid() {
		t.Errorf("status comparison must be case-sensitive")
	}
}

func TestShipmentEventType_IsValid(t *testing.T) {
	for _, e := range ShipmentEventTypes {
		if !e.IsValid() {
			t.Errorf("expected %s to be valid", e)
		}
	}
	if ShipmentEventType("PENDING").IsValid() {
		t.Errorf("PENDING must not be a valid event type")
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		parsed, ok := ParseRole(string(r))
		if !ok || parsed != r {
			t.Errorf("ParseRole(%s) = (%s, %v)", r, parsed, ok)
		}
	}
	if _, ok := ParseRole("ADMIN"); ok {
		t.Errorf("ADMIN must not parse as a role")
	}
	if _, ok := ParseRole("customer"); ok {
		t.Errorf("role parsing must be case-sensitive")
	}
}
