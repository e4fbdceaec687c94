package events

// EventCollector is embedded in aggregates to collect domain events during state transitions.
type EventCollector struct {
	events []DomainEvent
}

// Record appends a domain event to the collector.
func (c *EventCollector) Record(event DomainEvent) {
	c.events = append(c.events, event)
}

// Events returns the collected domain events without clearing them.
func (c *EventCollector) Events() []DomainEvent {
	return c.events
}

// ClearEvents returns the collected domain events and clears the internal slice.
func (c *EventCollector) ClearEvents() []DomainEvent {
	collected := c.events
	c.events = nil
	return collected
}

// Clone returns an independent collector holding the same events, so that
// value-copied aggregates do not share a backing array.
func (c EventCollector) Clone() EventCollector {
	if len(c.events) == 0 {
		return EventCollector{}
	}
	dst := make([]DomainEvent, len(c.events))
	copy(dst, c.events)
	return EventCollector{events: dst}
}
