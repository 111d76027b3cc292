package billing

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/routiq/orggate/pkg/observability"
	"github.com/routiq/orggate/pkg/rbac"
)

// Usage thresholds as fractions of the metric limit
const (
	usageWarningThreshold  = 0.80
	usageCriticalThreshold = 1.00
)

// Trial alerts fire within these windows before trial end
const (
	trialWarningDays  = 3
	trialCriticalDays = 1
)

// ErrPermissionDenied is returned when the role lacks the billing
// permission. Callers surface an empty alert list, never a partial one.
var ErrPermissionDenied = errors.New("role lacks billing permission")

// Composer builds alerts from billing snapshots
type Composer struct {
	metrics *observability.Metrics
	now     func() time.Time
}

// NewComposer creates a composer
func NewComposer(metrics *observability.Metrics) *Composer {
	return &Composer{metrics: metrics, now: time.Now}
}

// ComposeForRole is the single authorization point for alert visibility.
// The billing permission itself stays owner-only; admins still see alerts
// because an admin who cannot act on a failing payment must at least know
// about it.
func (c *Composer) ComposeForRole(role rbac.Role, data *Data) ([]Alert, error) {
	allowed, err := rbac.HasPermission(role, rbac.PermissionOrganizationBilling)
	if err != nil {
		return nil, err
	}
	if !allowed {
		allowed, err = rbac.CanAssumeRole(role, rbac.RoleAdmin)
		if err != nil {
			return nil, err
		}
	}
	if !allowed {
		return nil, ErrPermissionDenied
	}
	return c.Compose(data), nil
}

// Compose builds the alert list for one snapshot. Order is stable:
// subscription state first, then trial, then usage in input order.
func (c *Composer) Compose(data *Data) []Alert {
	if data == nil {
		return nil
	}

	now := c.now().UTC()
	var alerts []Alert

	if data.Subscription.Status == SubscriptionStatusPastDue {
		alerts = append(alerts, Alert{
			ID:          "payment-past-due",
			Category:    "payment",
			Level:       LevelCritical,
			Title:       "Payment overdue",
			Message:     "Your last payment failed. Update your payment method to avoid service interruption.",
			Dismissible: false,
			Timestamp:   now,
		})
	}

	if data.Subscription.CancelAtPeriodEnd && data.Subscription.Status != SubscriptionStatusCanceled {
		message := "Your subscription is scheduled to cancel at the end of the current billing period."
		if data.Subscription.CurrentPeriodEnd != nil {
			message = fmt.Sprintf("Your subscription is scheduled to cancel on %s.",
				data.Subscription.CurrentPeriodEnd.Format("January 2, 2006"))
		}
		alerts = append(alerts, Alert{
			ID:          "subscription-canceling",
			Category:    "subscription",
			Level:       LevelWarning,
			Title:       "Subscription ending",
			Message:     message,
			Dismissible: true,
			Timestamp:   now,
		})
	}

	if alert, ok := c.trialAlert(data, now); ok {
		alerts = append(alerts, alert)
	}

	for _, usage := range data.Usage {
		if alert, ok := usageAlert(usage, now); ok {
			alerts = append(alerts, alert)
		}
	}

	for _, a := range alerts {
		c.metrics.AlertsComposedTotal.WithLabelValues(string(a.Level)).Inc()
	}

	return alerts
}

func (c *Composer) trialAlert(data *Data, now time.Time) (Alert, bool) {
	if data.Subscription.Status != SubscriptionStatusTrialing || data.Subscription.TrialEnd == nil {
		return Alert{}, false
	}

	remaining := data.Subscription.TrialEnd.Sub(now)
	if remaining < 0 {
		return Alert{}, false
	}
	days := int(math.Ceil(remaining.Hours() / 24))

	switch {
	case days <= trialCriticalDays:
		return Alert{
			ID:          "trial-ending-critical",
			Category:    "trial",
			Level:       LevelCritical,
			Title:       "Trial ends today",
			Message:     "Your trial ends within 24 hours. Choose a plan to keep access.",
			Dismissible: false,
			Timestamp:   now,
		}, true
	case days <= trialWarningDays:
		return Alert{
			ID:          "trial-ending",
			Category:    "trial",
			Level:       LevelWarning,
			Title:       "Trial ending soon",
			Message:     fmt.Sprintf("Your trial ends in %d days. Choose a plan to keep access.", days),
			Dismissible: true,
			Timestamp:   now,
		}, true
	}
	return Alert{}, false
}

func usageAlert(usage Usage, now time.Time) (Alert, bool) {
	if usage.Limit <= 0 {
		return Alert{}, false
	}

	fraction := float64(usage.Used) / float64(usage.Limit)
	percent := int(fraction * 100)

	switch {
	case fraction >= usageCriticalThreshold:
		return Alert{
			ID:          "usage-" + usage.Metric + "-limit",
			Category:    "usage",
			Level:       LevelCritical,
			Title:       fmt.Sprintf("%s limit reached", usage.Metric),
			Message:     fmt.Sprintf("You have used %d of %d %s. Upgrade your plan to continue.", usage.Used, usage.Limit, usage.Metric),
			Dismissible: false,
			Timestamp:   now,
		}, true
	case fraction >= usageWarningThreshold:
		return Alert{
			ID:          "usage-" + usage.Metric + "-high",
			Category:    "usage",
			Level:       LevelWarning,
			Title:       fmt.Sprintf("%s usage at %d%%", usage.Metric, percent),
			Message:     fmt.Sprintf("You have used %d of %d %s.", usage.Used, usage.Limit, usage.Metric),
			Dismissible: true,
			Timestamp:   now,
		}, true
	}
	return Alert{}, false
}
