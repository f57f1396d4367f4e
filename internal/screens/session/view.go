package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bramv/brainsparks/internal/games"
	"github.com/bramv/brainsparks/internal/history"
	"github.com/bramv/brainsparks/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.active == nil {
		return centered(width, theme.Hint.Render("Preparing today's session..."))
	}
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}
	if s.phase == phaseIntro {
		return s.renderIntro(width)
	}

	switch s.currentKind() {
	case history.KindArithmetic:
		return s.renderArithmetic(width)
	case history.KindMemory:
		return s.renderMemory(width)
	case history.KindReaction:
		return s.renderReaction(width)
	case history.KindOddOneOut:
		return s.renderOddOneOut(width)
	}
	return ""
}

func (s *SessionScreen) renderIntro(width int) string {
	cur := s.active.Current()
	if cur == nil {
		return centered(width, theme.Hint.Render("Wrapping up..."))
	}

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Test %d of %d", s.active.CurrentIndex+1, len(s.active.Tests)))))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(cur.Kind.DisplayName())))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Hint.Render(introBlurb(cur.Kind))))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Enter to start, S to skip")))
	return b.String()
}

func introBlurb(kind history.TestKind) string {
	switch kind {
	case history.KindArithmetic:
		return "Solve as many as you can before the clock runs out."
	case history.KindMemory:
		return "Memorize the digits, then type them back."
	case history.KindReaction:
		return "Wait for GO, then hit space as fast as you can."
	case history.KindOddOneOut:
		return "Spot the symbol that doesn't belong."
	}
	return ""
}

func (s *SessionScreen) renderArithmetic(width int) string {
	d := s.arithmetic
	if d == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(statusLine(width, fmt.Sprintf("Solved %d", d.answered),
		fmt.Sprintf("%d left  %s", arithmeticTarget-d.answered, clock(d.secondsLeft))))
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(d.question.Text())))
	b.WriteString("\n\n")
	b.WriteString(centered(width, "Answer: "+d.input.View()))
	b.WriteString("\n\n")
	b.WriteString(centered(width, flashView(d.lastOutcome)))
	return b.String()
}

func (s *SessionScreen) renderMemory(width int) string {
	d := s.memory
	if d == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(statusLine(width, fmt.Sprintf("Round %d/%d", d.drill.Round, games.MemoryRounds),
		fmt.Sprintf("best span %d", d.drill.Longest)))
	b.WriteString("\n\n\n")

	if d.revealing {
		b.WriteString(centered(width, theme.Hint.Render("Memorize:")))
		b.WriteString("\n\n")
		b.WriteString(centered(width, lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Render(spaced(d.drill.Sequence))))
	} else {
		b.WriteString(centered(width, theme.Hint.Render("Type the digits back:")))
		b.WriteString("\n\n")
		b.WriteString(centered(width, d.input.View()))
		b.WriteString("\n\n")
		b.WriteString(centered(width, flashView(d.lastOutcome)))
	}
	return b.String()
}

func (s *SessionScreen) renderReaction(width int) string {
	d := s.reaction
	if d == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(statusLine(width, fmt.Sprintf("Trial %d/%d", d.trial+1, d.cfg.Trials), ""))
	b.WriteString("\n\n\n")

	if d.armed {
		b.WriteString(centered(width, lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true).
			Render("███  GO!  ███")))
	} else {
		b.WriteString(centered(width, lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true).
			Render("███ WAIT ███")))
		if d.early {
			b.WriteString("\n\n")
			b.WriteString(centered(width, theme.Hint.Render("Too soon! Wait for the green.")))
		}
	}

	if len(d.times) > 0 {
		b.WriteString("\n\n")
		b.WriteString(centered(width, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("last: %d ms", d.times[len(d.times)-1]))))
	}
	return b.String()
}

func (s *SessionScreen) renderOddOneOut(width int) string {
	d := s.oddOneOut
	if d == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(statusLine(width, fmt.Sprintf("Found %d", d.correct), clock(d.secondsLeft)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, d.choice.View()))
	b.WriteString("\n")
	b.WriteString(centered(width, flashView(d.lastOutcome)))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Leave today's session?")))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Hint.Render("Progress on finished tests is kept; the current test restarts next time.")))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().
		Foreground(theme.Success).
		Render("[Y] Yes, leave")))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().
		Foreground(theme.Primary).
		Render("[N] No, keep going")))
	return b.String()
}

func flashView(f outcomeFlash) string {
	switch f {
	case flashGood:
		return theme.Correct.Render("✓")
	case flashBad:
		return theme.Incorrect.Render("✗")
	}
	return " "
}

// statusLine renders a left/right aligned info row above a drill.
func statusLine(width int, left, right string) string {
	l := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  " + left)
	r := lipgloss.NewStyle().Foreground(theme.TextDim).Render(right)
	pad := width - lipgloss.Width(l) - lipgloss.Width(r) - 4
	if pad < 1 {
		pad = 1
	}
	line := l + strings.Repeat(" ", pad) + r
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0)))
	return line + "\n" + divider
}

func centered(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

func clock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func spaced(digits string) string {
	return strings.Join(strings.Split(digits, ""), " ")
}
