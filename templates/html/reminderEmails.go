package templates

import "fmt"

// RenderLowStockEmail generates the HTML for a low medication stock alert
func RenderLowStockEmail(seniorName, drugName string, currentStock, threshold int) string {
	body := fmt.Sprintf(`Hello,

The medication supply for %s is running low.

Medication: %s
Doses remaining: %d (alert threshold: %d)

Please arrange a refill soon so no scheduled dose is missed.`,
		seniorName, drugName, currentStock, threshold)

	return RenderGenericEmail("Medication Running Low", body)
}

// RenderMissedDoseEmail generates the HTML for a missed dose digest
func RenderMissedDoseEmail(seniorName string, missedCount int) string {
	body := fmt.Sprintf(`Hello,

%s missed %d scheduled dose(s) in the last day.

You can review the dose history in the CareLink app and check in with them.`,
		seniorName, missedCount)

	return RenderGenericEmail("Missed Doses", body)
}
