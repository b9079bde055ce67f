package handler

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode"

	"orfoepiya/internal/domain"
	"orfoepiya/internal/drill"
	"orfoepiya/internal/stress"

	tele "gopkg.in/telebot.v3"
)

const (
	vowelCallbackPrefix  = "vowel_"
	moduleCallbackPrefix = "module_"

	// maxVowelsPerRow keeps vowel buttons readable on narrow screens
	maxVowelsPerRow = 5
)

// renderWord returns the word as HTML with every vowel in bold.
// With reveal set, the stressed vowel is upper-cased and underlined.
func renderWord(plain string, slots []domain.VowelSlot, reveal bool) string {
	byPos := make(map[int]domain.VowelSlot, len(slots))
	for _, slot := range slots {
		byPos[slot.Position] = slot
	}

	var b strings.Builder
	for i, r := range []rune(plain) {
		slot, ok := byPos[i]
		if !ok {
			b.WriteString(html.EscapeString(string(r)))
			continue
		}
		if reveal && slot.Stressed {
			b.WriteString("<b><u>" + html.EscapeString(string(unicode.ToUpper(r))) + "</u></b>")
			continue
		}
		b.WriteString("<b>" + html.EscapeString(string(r)) + "</b>")
	}
	return b.String()
}

// vowelLabel returns the button text of the slot at index i. stressed is the
// index of the stressed slot of the word.
func vowelLabel(slot domain.VowelSlot, i, selected, stressed int, outcome drill.Outcome) string {
	label := string(unicode.ToUpper(slot.Char))
	switch {
	case outcome == drill.Unanswered:
		return label
	case i == selected && outcome == drill.Correct:
		return "✅ " + label
	case i == selected:
		return "❌ " + label
	case outcome == drill.Incorrect && i == stressed:
		return "✅ " + label
	}
	return label
}

// parseVowelIndex extracts the slot index from vowel_<i>
func parseVowelIndex(data string) (int, bool) {
	if !strings.HasPrefix(data, vowelCallbackPrefix) {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimPrefix(data, vowelCallbackPrefix))
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

func countersLine(c drill.Counters) string {
	return fmt.Sprintf("Попыток: %d · Верно: %d · Точность: %d%%", c.TotalAttempts, c.CorrectAnswers, c.Accuracy())
}

// drillView renders the drill screen for the session state
func drillView(s *drill.Session, module domain.Module) (string, *tele.ReplyMarkup) {
	markup := &tele.ReplyMarkup{}
	header := fmt.Sprintf("%s <b>%s</b>\n\n", module.Icon, html.EscapeString(module.Title))

	switch s.State() {
	case drill.StateLoading:
		markup.Inline(markup.Row(btnDashboard))
		return header + "⏳ Загружаем слова...", markup
	case drill.StateFailed:
		markup.Inline(
			markup.Row(btnRetry),
			markup.Row(btnDashboard),
		)
		return header + "⚠️ Не удалось загрузить слова. Попробуйте ещё раз.", markup
	}

	word, _ := s.CurrentWord()
	slots := s.Vowels()
	selected, _ := s.Selection()
	outcome := s.Outcome()

	var b strings.Builder
	b.WriteString(header)
	fmt.Fprintf(&b, "Слово %d из %d. Где ударение?\n\n", s.Index()+1, s.Len())
	b.WriteString(renderWord(word.Plain, slots, outcome != drill.Unanswered))
	b.WriteString("\n\n")
	switch outcome {
	case drill.Correct:
		b.WriteString("✅ Верно!\n\n")
	case drill.Incorrect:
		fmt.Fprintf(&b, "❌ Неверно. Правильно: %s\n\n", html.EscapeString(word.Marked))
	}
	b.WriteString(countersLine(s.Counters()))

	rows := vowelRows(markup, slots, selected, outcome)
	if outcome != drill.Unanswered {
		rows = append(rows, markup.Row(btnNext))
	}
	rows = append(rows, markup.Row(btnRestart, btnDashboard))
	markup.Inline(rows...)

	return b.String(), markup
}

func vowelRows(markup *tele.ReplyMarkup, slots []domain.VowelSlot, selected int, outcome drill.Outcome) []tele.Row {
	stressed := stress.StressedSlot(slots)

	var rows []tele.Row
	var row tele.Row
	for i, slot := range slots {
		row = append(row, markup.Data(vowelLabel(slot, i, selected, stressed, outcome), vowelCallbackPrefix+strconv.Itoa(i)))
		if len(row) == maxVowelsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// moduleLabel returns the dashboard button text of a module
func moduleLabel(m domain.Module, stat *domain.UserStat) string {
	if stat == nil || stat.TotalAttempts == 0 {
		return fmt.Sprintf("%s %s · Нет статистики", m.Icon, m.Title)
	}
	return fmt.Sprintf("%s %s · %d попыток · %d верно · %d%%", m.Icon, m.Title, stat.TotalAttempts, stat.CorrectAnswers, stat.Accuracy())
}

// dashboardView renders the module list with the learner's stats
func dashboardView(user *domain.UserAccount, stats []domain.UserStat) (string, *tele.ReplyMarkup) {
	byModule := make(map[string]*domain.UserStat, len(stats))
	for i := range stats {
		byModule[stats[i].ModuleID] = &stats[i]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏠 <b>%s</b>, выберите модуль:\n", html.EscapeString(user.Nickname))

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for _, m := range domain.Modules() {
		fmt.Fprintf(&b, "\n%s %s: %s", m.Icon, html.EscapeString(m.Title), html.EscapeString(m.Description))
		rows = append(rows, markup.Row(markup.Data(moduleLabel(m, byModule[m.ID]), moduleCallbackPrefix+m.ID)))
	}
	rows = append(rows, markup.Row(btnLogout))
	markup.Inline(rows...)

	return b.String(), markup
}
