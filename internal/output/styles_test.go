package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.Color
		wantDim  bool
	}{
		{name: "registered returns green", status: StatusRegistered, wantFG: colorGreen},
		{name: "added returns green", status: StatusAdded, wantFG: colorGreen},
		{name: "shadowed returns yellow", status: StatusShadowed, wantFG: ColorYellow},
		{name: "changed returns yellow", status: StatusChanged, wantFG: ColorYellow},
		{name: "unchanged returns faint", status: StatusUnchanged, wantDim: true},
		{name: "removed returns red", status: StatusRemoved, wantFG: colorRed},
		{name: "failed returns bold red", status: statusFailed, wantBold: true, wantFG: colorBoldRed},
		{name: "unknown returns default unstyled", status: "unknown-value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := statusStyle(tt.status)
			if tt.wantBold {
				assert.True(t, style.GetBold(), "expected bold")
			}
			if tt.wantFG != "" {
				assert.Equal(t, tt.wantFG, style.GetForeground(), "foreground color mismatch")
			}
			if tt.wantDim {
				assert.True(t, style.GetFaint(), "expected faint")
			}
		})
	}
}

func TestFormatModuleLine(t *testing.T) {
	result := FormatModuleLine("obsi2.util.helpers", StatusRegistered)

	assert.Contains(t, result, "obsi2.util.helpers")
	assert.Contains(t, result, StatusRegistered)
	assert.True(t, strings.HasPrefix(stripAnsi(result), "m:"), "should start with m: prefix")

	t.Run("alignment consistency", func(t *testing.T) {
		line1 := stripAnsi(FormatModuleLine("obsi2", StatusAdded))
		line2 := stripAnsi(FormatModuleLine("obsi2.graphics.canvas", StatusAdded))

		assert.Equal(t, strings.Index(line1, StatusAdded), strings.Index(line2, StatusAdded),
			"status words should align to same column")
	})
}

func TestFormatCheckmark(t *testing.T) {
	result := FormatCheckmark("Bundle written")
	assert.Contains(t, result, "✔", "should contain checkmark")
	assert.Contains(t, result, "Bundle written", "should contain message")
}

func TestFormatVetCheck(t *testing.T) {
	t.Run("without detail", func(t *testing.T) {
		result := stripAnsi(FormatVetCheck("Schema validation passed", ""))
		assert.Contains(t, result, "Schema validation passed")
		assert.False(t, strings.HasSuffix(result, " "), "should not have trailing whitespace when detail is empty")
	})

	t.Run("alignment consistency", func(t *testing.T) {
		line1 := stripAnsi(FormatVetCheck("Config file found", "obsi-bundle.yaml"))
		line2 := stripAnsi(FormatVetCheck("License source found", "LICENSE"))

		assert.Equal(t, strings.Index(line1, "obsi-bundle.yaml"), strings.Index(line2, "LICENSE"),
			"detail text should align to same column")
	})
}

// stripAnsi removes ANSI escape sequences for content assertions.
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if s[i] == 'm' {
				inEscape = false
			}
			continue
		}
		result.WriteByte(s[i])
	}
	return result.String()
}
