package telemetry

import "time"

type EventType string

const (
	EventPlayerRegistered   EventType = "player_registered"
	EventRoleChosen         EventType = "role_chosen"
	EventJobWorked          EventType = "job_worked"
	EventSkillLevelUp       EventType = "skill_level_up"
	EventArrestAttempted    EventType = "arrest_attempted"
	EventArrestExpired      EventType = "arrest_expired"
	EventRobberyAttempted   EventType = "robbery_attempted"
	EventPropertyBought     EventType = "property_bought"
	EventSharesTraded       EventType = "shares_traded"
	EventCorporationFounded EventType = "corporation_founded"
	EventDailyBonusClaimed  EventType = "daily_bonus_claimed"
	EventMarketTick         EventType = "market_tick"
	EventSweepCompleted     EventType = "sweep_completed"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
