package view

import (
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/civil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newgestao/drivercontrol/internal/dashboard"
	"github.com/newgestao/drivercontrol/internal/period"
)

func TestTimeframePicker_Preset(t *testing.T) {
	m := NewTimeframePicker()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(TimeframeSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, period.PresetLast7Days, msg.Selector.Preset)
}

func TestTimeframePicker_Custom(t *testing.T) {
	m := NewTimeframePicker()
	m.cursor = len(presetOptions) - 1

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.IsSelecting())

	m.startInput.SetValue("2024-03-01")
	m.endInput.SetValue("2024-03-10")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd().(TimeframeSelectedMsg)
	assert.Equal(t, period.PresetCustom, msg.Selector.Preset)
	assert.Equal(t, civil.Date{Year: 2024, Month: 3, Day: 1}, msg.Selector.CustomStart)
	assert.Equal(t, civil.Date{Year: 2024, Month: 3, Day: 10}, msg.Selector.CustomEnd)
}

func TestTimeframePicker_CustomInvalid(t *testing.T) {
	m := NewTimeframePicker()
	m.cursor = len(presetOptions) - 1

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.startInput.SetValue("01/03/2024")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Error(t, m.err)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.IsSelecting())
	assert.NoError(t, m.err)
}

func TestWriteExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	files, err := writeExport(dir, &dashboard.ExportFile{
		Name:    "relatorio_20240301_20240307",
		CSV:     []byte("data;receita\n"),
		Summary: "Receita: R$ 0,00",
	})
	require.NoError(t, err)
	require.Len(t, files, 2)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, "data;receita\n", string(data))

	summary, err := os.ReadFile(filepath.Join(dir, "relatorio_20240301_20240307_resumo.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Receita: R$ 0,00", string(summary))
}
