package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hsinyulin/ledgerchat/internal/pipeline"
	"github.com/hsinyulin/ledgerchat/internal/session"
)

// exit commands recognized in both languages.
var exitCommands = []string{"exit", "quit", "bye", "離開", "退出", "再見"}

// stats commands recognized in both languages.
var statsCommands = []string{"stats", "統計"}

// Loop runs the line-based chat until EOF, an exit command, or context
// cancellation. It is the fallback for terminals where the full-screen
// interface is unwanted.
func Loop(ctx context.Context, p *pipeline.Pipeline, sess *session.Session, in io.Reader, out io.Writer) error {
	banner := TitleStyle.Render("ledgerchat") + "\n" +
		SubtleStyle.Render("問我關於您的支出資料 / Ask me about your spending. (exit to quit)")
	fmt.Fprintln(out, BoxStyle.Render(banner))
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(out, PromptStyle.Render("> "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if isExitCommand(question) {
			fmt.Fprintln(out, SubtleStyle.Render("再見！ / Goodbye!"))
			return nil
		}
		if isStatsCommand(question) {
			fmt.Fprintln(out, renderDiagnostics(p.Diagnostics(sess)))
			continue
		}

		resp, err := p.Ask(ctx, sess, question)
		if err != nil {
			fmt.Fprintln(out, ErrorStyle.Render("抱歉，處理時發生錯誤。 / Sorry, something went wrong."))
			fmt.Fprintln(out, SubtleStyle.Render(err.Error()))
			continue
		}

		fmt.Fprintln(out, Render(resp))
		fmt.Fprintln(out)
	}
}

// Render formats one pipeline response for terminal output.
func Render(resp pipeline.Response) string {
	if resp.Blocked {
		return BlockedStyle.Render(resp.Text)
	}

	var sb strings.Builder
	sb.WriteString(AnswerStyle.Render(resp.Text))
	for _, warning := range resp.Warnings {
		sb.WriteString("\n")
		sb.WriteString(WarningStyle.Render("⚠ " + warning))
	}
	return sb.String()
}

func isExitCommand(question string) bool {
	return matchesCommand(question, exitCommands)
}

func isStatsCommand(question string) bool {
	return matchesCommand(question, statsCommands)
}

func matchesCommand(question string, commands []string) bool {
	lower := strings.ToLower(question)
	for _, cmd := range commands {
		if lower == cmd {
			return true
		}
	}
	return false
}

func renderDiagnostics(d pipeline.Diagnostics) string {
	var sb strings.Builder
	sb.WriteString(SubtleStyle.Render(fmt.Sprintf("questions classified: %d", d.Classifier.Total)))
	if d.Classifier.Total > 0 {
		sb.WriteString("\n")
		sb.WriteString(SubtleStyle.Render(fmt.Sprintf("most common intent: %s (avg confidence %.2f)",
			d.Classifier.MostCommon, d.Classifier.AvgConfidence)))
	}
	if d.Language.Total > 0 {
		sb.WriteString("\n")
		sb.WriteString(SubtleStyle.Render(fmt.Sprintf("language detections: %d (zh %d / en %d, primary %s)",
			d.Language.Total, d.Language.ChineseCount, d.Language.EnglishCount, d.Language.Primary)))
	}
	return sb.String()
}
