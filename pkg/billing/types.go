package billing

import (
	"time"
)

// SubscriptionStatus represents the status of a subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusTrialing SubscriptionStatus = "trialing"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

// Subscription is the billing state of one organization
type Subscription struct {
	Plan   string             `json:"plan"`
	Status SubscriptionStatus `json:"status"`

	CurrentPeriodEnd  *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancel_at_period_end"`

	TrialEnd *time.Time `json:"trial_end,omitempty"`
}

// Usage is one metered resource against its plan limit. A non-positive
// limit means unmetered.
type Usage struct {
	Metric string `json:"metric"`
	Used   int64  `json:"used"`
	Limit  int64  `json:"limit"`
}

// Data is the complete billing snapshot the composer works from
type Data struct {
	OrganizationID string       `json:"organization_id"`
	Subscription   Subscription `json:"subscription"`
	Usage          []Usage      `json:"usage,omitempty"`
}

// AlertLevel orders alerts by severity
type AlertLevel string

const (
	LevelInfo     AlertLevel = "info"
	LevelWarning  AlertLevel = "warning"
	LevelCritical AlertLevel = "critical"
)

// Alert is one notification for the dashboard. IDs are deterministic per
// condition so dismissal survives recomputation.
type Alert struct {
	ID          string     `json:"id"`
	Category    string     `json:"category"`
	Level       AlertLevel `json:"level"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Dismissible bool       `json:"dismissible"`
	Timestamp   time.Time  `json:"timestamp"`
}

// Partition splits alerts by level, preserving order within each level
func Partition(alerts []Alert) (critical, warning, info []Alert) {
	for _, a := range alerts {
		switch a.Level {
		case LevelCritical:
			critical = append(critical, a)
		case LevelWarning:
			warning = append(warning, a)
		default:
			info = append(info, a)
		}
	}
	return critical, warning, info
}
