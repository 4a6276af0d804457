package risk_test

import (
	"testing"

	"github.com/aretw0/aeon/internal/risk"
	"github.com/aretw0/aeon/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify_ThresholdTable(t *testing.T) {
	cases := []struct {
		name string
		id   string
		mean float64
		want domain.RiskLevel
	}{
		{"CRP well below", "CRP", 0.4, domain.RiskLow},
		{"CRP boundary is moderate", "CRP", 1.0, domain.RiskModerate},
		{"CRP mid", "CRP", 2.2, domain.RiskModerate},
		{"CRP boundary is high", "CRP", 3.0, domain.RiskHigh},
		{"CRP above", "CRP", 8.5, domain.RiskHigh},
		{"IL6 low", "IL6", 1.1, domain.RiskLow},
		{"IL6 moderate", "IL6", 1.8, domain.RiskModerate},
		{"IL6 high", "IL6", 5.0, domain.RiskHigh},
		{"IL-6 alias", "IL-6", 1.1, domain.RiskLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Baseline is irrelevant when a table exists.
			assert.Equal(t, tc.want, risk.Classify(tc.id, tc.mean, 0))
		})
	}
}

func TestClassify_FoldChange(t *testing.T) {
	assert.Equal(t, domain.RiskLow, risk.Classify("8-OHdG", 5.0, 4.2))
	assert.Equal(t, domain.RiskModerate, risk.Classify("8-OHdG", 6.5, 4.2))
	assert.Equal(t, domain.RiskHigh, risk.Classify("8-OHdG", 11.0, 4.2))

	// Boundaries go to the upper bucket.
	assert.Equal(t, domain.RiskModerate, risk.Classify("TNF", 1.5, 1.0))
	assert.Equal(t, domain.RiskHigh, risk.Classify("TNF", 2.5, 1.0))
}

func TestClassify_UnknownBaseline(t *testing.T) {
	assert.Equal(t, domain.RiskUnknown, risk.Classify("TNF", 2.0, 0))
	assert.Equal(t, domain.RiskUnknown, risk.Classify("TNF", 2.0, -1))
}

func TestUnit(t *testing.T) {
	assert.Equal(t, "mg/L", risk.Unit("CRP"))
	assert.Equal(t, "pg/mL", risk.Unit("IL6"))
	assert.Equal(t, "ng/mL", risk.Unit("8-OHdG"))
	assert.Equal(t, "units", risk.Unit("TNF"))
}
