package model

import "strings"

// TimelineStep is one state of the fixed delivery-progress catalog.
type TimelineStep struct {
	Status OrderStatus `json:"status"`
	Step   int         `json:"step"`
	Label  string      `json:"label"`
	Icon   string      `json:"icon"`
}

// timelineCatalog lists the forward-path states in ascending step order.
// Cancelled sits outside the forward path at step 0 and never appears in a
// rendered timeline.
var timelineCatalog = []TimelineStep{
	{Status: OrderStatusPending, Step: 1, Label: "Bestellung eingegangen", Icon: "📥"},
	{Status: OrderStatusConfirmed, Step: 2, Label: "Bestellung bestätigt", Icon: "✅"},
	{Status: OrderStatusPreparing, Step: 3, Label: "Wird zusammengestellt", Icon: "🛒"},
	{Status: OrderStatusReady, Step: 4, Label: "Bereit zur Auslieferung", Icon: "📦"},
	{Status: OrderStatusDelivering, Step: 5, Label: "Unterwegs zu dir", Icon: "🚚"},
	{Status: OrderStatusDelivered, Step: 6, Label: "Geliefert", Icon: "🎉"},
}

var cancelledStep = TimelineStep{Status: OrderStatusCancelled, Step: 0, Label: "Storniert", Icon: "❌"}

// TimelineEntry annotates a catalog step for a concrete order.
type TimelineEntry struct {
	TimelineStep
	Completed bool `json:"completed"`
	Current   bool `json:"current"`
}

// NormalizeStatus maps unrecognized status values to pending. The policy
// fails open to the earliest state for display purposes only; stored rows are
// never rewritten.
func NormalizeStatus(raw string) OrderStatus {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if status == OrderStatusCancelled {
		return status
	}
	for _, step := range timelineCatalog {
		if step.Status == status {
			return status
		}
	}
	return OrderStatusPending
}

// StatusInfo returns the catalog entry describing the given status.
func StatusInfo(status OrderStatus) TimelineStep {
	normalized := NormalizeStatus(string(status))
	if normalized == OrderStatusCancelled {
		return cancelledStep
	}
	for _, step := range timelineCatalog {
		if step.Status == normalized {
			return step
		}
	}
	return timelineCatalog[0]
}

// ComputeTimeline projects the six forward-path states for the given order
// status. An entry is completed iff its step is not past the current one and
// the order is not cancelled; a cancelled order completes nothing. Exactly
// the entry matching the normalized status is current.
func ComputeTimeline(status OrderStatus) []TimelineEntry {
	current := NormalizeStatus(string(status))
	cancelled := current == OrderStatusCancelled
	info := StatusInfo(current)

	entries := make([]TimelineEntry, 0, len(timelineCatalog))
	for _, step := range timelineCatalog {
		entries = append(entries, TimelineEntry{
			TimelineStep: step,
			Completed:    !cancelled && step.Step <= info.Step,
			Current:      step.Status == current,
		})
	}
	return entries
}
