package aggregation

import (
	"time"

	"github.com/echolens/echolens/internal/models"
)

// GenerateAlerts escalates anomalies into alerts. Only high-severity
// anomalies escalate; medium and low stay on the summary record for
// dashboards to surface.
func GenerateAlerts(anomalies []models.Anomaly, now time.Time) []models.Alert {
	var alerts []models.Alert
	for _, anomaly := range anomalies {
		if anomaly.Severity != models.SeverityHigh {
			continue
		}
		alerts = append(alerts, models.Alert{
			Type:      "anomaly_alert",
			Priority:  anomaly.Severity,
			Title:     anomaly.Description,
			Details:   anomaly,
			Timestamp: now.UTC().Format(time.RFC3339),
		})
	}
	return alerts
}
