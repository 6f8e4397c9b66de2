package notify

import (
	"encoding/json"
	"log"
)

// Event names relayed to the external broadcaster.
const (
	EventInventoryUpdated    = "inventory:updated"
	EventMealPlanUpdated     = "meal-plan:updated"
	EventShoppingItemAdded   = "shopping-list:item-added"
	EventShoppingListUpdated = "shopping-list:updated"
)

// Actions carried in meal-plan:updated payloads.
const (
	ActionAdded   = "added"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionCooked  = "cooked"
)

// Notifier is a fire-and-forget change sink. Implementations must never
// block the caller and never report delivery status back; the engine does
// not receive acknowledgements.
type Notifier interface {
	Notify(householdID, event string, payload any)
}

// LogNotifier stands in for the real-time broadcaster, which lives in the
// serving layer outside this process. Every event goes to the process log.
type LogNotifier struct{}

func (LogNotifier) Notify(householdID, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[NOTIFY] %s %s (payload not serializable: %v)", householdID, event, err)
		return
	}
	log.Printf("[NOTIFY] %s %s %s", householdID, event, data)
}

// NopNotifier discards everything.
type NopNotifier struct{}

func (NopNotifier) Notify(householdID, event string, payload any) {}
