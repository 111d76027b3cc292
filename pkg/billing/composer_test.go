package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routiq/orggate/pkg/observability"
	"github.com/routiq/orggate/pkg/rbac"
)

func testComposer(now time.Time) *Composer {
	c := NewComposer(observability.NewNopMetrics())
	c.now = func() time.Time { return now }
	return c
}

func activeData(usage ...Usage) *Data {
	return &Data{
		OrganizationID: "org_1",
		Subscription:   Subscription{Plan: "pro", Status: SubscriptionStatusActive},
		Usage:          usage,
	}
}

func findAlert(t *testing.T, alerts []Alert, id string) Alert {
	t.Helper()
	for _, a := range alerts {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("alert %q not found in %v", id, alerts)
	return Alert{}
}

func TestUsageThresholds(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		used      int64
		wantLevel AlertLevel
		wantNone  bool
	}{
		{"below warning", 79, "", true},
		{"at boundary under warning", 80, LevelWarning, false}, // 80/100 = exactly 80%
		{"just over warning", 81, LevelWarning, false},
		{"just under limit", 99, LevelWarning, false},
		{"at limit", 100, LevelCritical, false},
		{"over limit", 120, LevelCritical, false},
		{"nothing used", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := testComposer(now).Compose(activeData(Usage{Metric: "messages", Used: tt.used, Limit: 100}))
			if tt.wantNone {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, tt.wantLevel, alerts[0].Level)
			assert.Equal(t, "usage", alerts[0].Category)
		})
	}
}

func TestUsageUnmeteredSkipped(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	alerts := testComposer(now).Compose(activeData(Usage{Metric: "messages", Used: 5000, Limit: 0}))
	assert.Empty(t, alerts, "non-positive limit means unmetered")
}

func TestUsageCriticalNotDismissible(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	alerts := testComposer(now).Compose(activeData(Usage{Metric: "messages", Used: 100, Limit: 100}))
	require.Len(t, alerts, 1)
	assert.False(t, alerts[0].Dismissible)

	alerts = testComposer(now).Compose(activeData(Usage{Metric: "messages", Used: 85, Limit: 100}))
	require.Len(t, alerts, 1)
	assert.True(t, alerts[0].Dismissible)
}

func TestTrialThresholds(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		remaining time.Duration
		wantLevel AlertLevel
		wantNone  bool
	}{
		{"ten days left", 10 * 24 * time.Hour, "", true},
		{"three days left", 3 * 24 * time.Hour, LevelWarning, false},
		{"two days left", 2 * 24 * time.Hour, LevelWarning, false},
		{"one day left", 24 * time.Hour, LevelCritical, false},
		{"hours left", 6 * time.Hour, LevelCritical, false},
		{"already ended", -time.Hour, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trialEnd := now.Add(tt.remaining)
			alerts := testComposer(now).Compose(&Data{
				OrganizationID: "org_1",
				Subscription: Subscription{
					Plan:     "trial",
					Status:   SubscriptionStatusTrialing,
					TrialEnd: &trialEnd,
				},
			})
			if tt.wantNone {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, tt.wantLevel, alerts[0].Level)
			assert.Equal(t, "trial", alerts[0].Category)
		})
	}
}

func TestPastDueCriticalNonDismissible(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	alerts := testComposer(now).Compose(&Data{
		OrganizationID: "org_1",
		Subscription:   Subscription{Plan: "pro", Status: SubscriptionStatusPastDue},
	})

	a := findAlert(t, alerts, "payment-past-due")
	assert.Equal(t, LevelCritical, a.Level)
	assert.False(t, a.Dismissible, "past_due must never be dismissible")
}

func TestCancelAtPeriodEndWarning(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	periodEnd := now.Add(20 * 24 * time.Hour)
	alerts := testComposer(now).Compose(&Data{
		OrganizationID: "org_1",
		Subscription: Subscription{
			Plan:              "pro",
			Status:            SubscriptionStatusActive,
			CancelAtPeriodEnd: true,
			CurrentPeriodEnd:  &periodEnd,
		},
	})

	a := findAlert(t, alerts, "subscription-canceling")
	assert.Equal(t, LevelWarning, a.Level)
	assert.True(t, a.Dismissible)
	assert.Contains(t, a.Message, "March 21, 2026")
}

func TestComposeForRoleGating(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	data := activeData(Usage{Metric: "messages", Used: 100, Limit: 100})

	for _, role := range []rbac.Role{rbac.RoleAdmin, rbac.RoleOwner} {
		alerts, err := testComposer(now).ComposeForRole(role, data)
		require.NoError(t, err, role)
		assert.NotEmpty(t, alerts, role)
	}

	for _, role := range []rbac.Role{rbac.RoleMember, rbac.RoleStaff} {
		alerts, err := testComposer(now).ComposeForRole(role, data)
		assert.True(t, errors.Is(err, ErrPermissionDenied), role)
		assert.Empty(t, alerts, role)
	}
}

func TestAdminSeesAlertsWithoutBillingGrant(t *testing.T) {
	// The grant table keeps billing management owner-only; alert
	// visibility alone extends down to admin.
	allowed, err := rbac.HasPermission(rbac.RoleAdmin, rbac.PermissionOrganizationBilling)
	require.NoError(t, err)
	require.False(t, allowed)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	alerts, err := testComposer(now).ComposeForRole(rbac.RoleAdmin, activeData(Usage{Metric: "messages", Used: 100, Limit: 100}))
	require.NoError(t, err)
	assert.NotEmpty(t, alerts)
}

func TestComposeForRoleUnknownRole(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err := testComposer(now).ComposeForRole(rbac.Role("superuser"), activeData())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrPermissionDenied), "unknown role is a defect, not a denial")
}

func TestComposeStableOrder(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	trialEnd := now.Add(2 * 24 * time.Hour)
	data := &Data{
		OrganizationID: "org_1",
		Subscription: Subscription{
			Plan:     "trial",
			Status:   SubscriptionStatusTrialing,
			TrialEnd: &trialEnd,
		},
		Usage: []Usage{
			{Metric: "messages", Used: 90, Limit: 100},
			{Metric: "patients", Used: 100, Limit: 100},
		},
	}

	first := testComposer(now).Compose(data)
	second := testComposer(now).Compose(data)
	assert.Equal(t, first, second, "composition must be deterministic")

	require.Len(t, first, 3)
	assert.Equal(t, "trial-ending", first[0].ID)
	assert.Equal(t, "usage-messages-high", first[1].ID)
	assert.Equal(t, "usage-patients-limit", first[2].ID)
}

func TestPartition(t *testing.T) {
	alerts := []Alert{
		{ID: "a", Level: LevelWarning},
		{ID: "b", Level: LevelCritical},
		{ID: "c", Level: LevelInfo},
		{ID: "d", Level: LevelCritical},
	}

	critical, warning, info := Partition(alerts)
	assert.Equal(t, []string{"b", "d"}, []string{critical[0].ID, critical[1].ID})
	assert.Len(t, warning, 1)
	assert.Len(t, info, 1)
}

func TestViewDismissal(t *testing.T) {
	view := NewView()
	alerts := []Alert{
		{ID: "usage-messages-high", Dismissible: true},
		{ID: "payment-past-due", Dismissible: false},
	}

	assert.Len(t, view.Visible(alerts), 2)

	view.Dismiss("usage-messages-high")
	view.Dismiss("payment-past-due")

	visible := view.Visible(alerts)
	require.Len(t, visible, 1)
	assert.Equal(t, "payment-past-due", visible[0].ID,
		"non-dismissible alerts survive dismissal attempts")

	view.Reset()
	assert.Len(t, view.Visible(alerts), 2)
}
