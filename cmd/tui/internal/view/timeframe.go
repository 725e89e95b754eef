package view

import (
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/newgestao/drivercontrol/internal/period"
)

var presetOptions = []period.Preset{
	period.PresetToday,
	period.PresetYesterday,
	period.PresetLast7Days,
	period.PresetLast30Days,
	period.PresetThisMonth,
	period.PresetLastMonth,
	period.PresetCustom,
}

var presetLabels = map[period.Preset]string{
	period.PresetToday:      "Hoje",
	period.PresetYesterday:  "Ontem",
	period.PresetLast7Days:  "Últimos 7 dias",
	period.PresetLast30Days: "Últimos 30 dias",
	period.PresetThisMonth:  "Este mês",
	period.PresetLastMonth:  "Mês passado",
	period.PresetCustom:     "Personalizado",
}

// TimeframeSelectedMsg is emitted when the user has picked a day-mode preset
// or typed a valid custom range.
type TimeframeSelectedMsg struct {
	Selector period.Selector
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

// TimeframePicker selects a day-mode preset or a custom date range.
type TimeframePicker struct {
	state  timeframeState
	cursor int

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewTimeframePicker() TimeframePicker {
	si := textinput.New()
	si.Placeholder = "YYYY-MM-DD"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Início: "

	ei := textinput.New()
	ei.Placeholder = "YYYY-MM-DD"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "Fim:    "

	return TimeframePicker{
		state:      timeframeStateSelect,
		startInput: si,
		endInput:   ei,
	}
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case timeframeStateSelect:
			return m.updateSelect(keyMsg)
		case timeframeStateCustom:
			if next, cmd, handled := m.updateCustom(keyMsg); handled {
				return next, cmd
			}
		}
	}

	if m.state == timeframeStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(presetOptions)-1 {
			m.cursor++
		}
	case tea.KeyEnter:
		preset := presetOptions[m.cursor]
		if preset == period.PresetCustom {
			m.state = timeframeStateCustom
			m.focusIndex = 0
			m.startInput.Focus()

			return m, textinput.Blink
		}

		return m, func() tea.Msg {
			return TimeframeSelectedMsg{Selector: period.Selector{Preset: preset}}
		}
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
		} else {
			m.endInput.Focus()
		}

		return m, textinput.Blink, true

	case "enter":
		start, err := civil.ParseDate(strings.TrimSpace(m.startInput.Value()))
		if err != nil {
			m.err = errors.New("data inicial inválida (YYYY-MM-DD)")
			return m, nil, true
		}

		end, err := civil.ParseDate(strings.TrimSpace(m.endInput.Value()))
		if err != nil {
			m.err = errors.New("data final inválida (YYYY-MM-DD)")
			return m, nil, true
		}

		m.err = nil
		sel := period.Selector{Preset: period.PresetCustom, CustomStart: start, CustomEnd: end}

		return m, func() tea.Msg {
			return TimeframeSelectedMsg{Selector: sel}
		}, true

	case "esc":
		m.state = timeframeStateSelect
		m.err = nil

		return m, nil, true
	}

	return m, nil, false
}

func (m TimeframePicker) updateInputs(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	var cmds []tea.Cmd
	var c tea.Cmd

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = errorStyle.Render(fmt.Sprintf("\n\nErro: %v", m.err))
	}

	if m.state == timeframeStateCustom {
		return fmt.Sprintf(
			"Período personalizado:\n\n%s\n%s\n\n(Enter confirma, Tab alterna, Esc volta)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	var b strings.Builder

	b.WriteString("Período:\n\n")

	for i, p := range presetOptions {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		fmt.Fprintf(&b, "%s %s\n", cursor, presetLabels[p])
	}

	b.WriteString("\n(Enter seleciona, Esc volta)")

	return b.String() + errStr
}

// IsSelecting reports whether the picker shows the preset list rather than
// the custom range inputs.
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

func (m *TimeframePicker) Reset() {
	m.state = timeframeStateSelect
	m.cursor = 0
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}
