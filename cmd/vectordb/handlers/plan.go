package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/imamik/vectordb/internal/assembler"
	"github.com/imamik/vectordb/internal/util/labels"
)

var (
	planColorBlue  = lipgloss.Color("#3b82f6")
	planColorDim   = lipgloss.Color("#6b7280")
	planColorWhite = lipgloss.Color("#f9fafb")
	planColorAmber = lipgloss.Color("#f59e0b")
)

var (
	planTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(planColorWhite)

	planHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(planColorBlue).
			Padding(0, 1)

	planCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	planDimStyle = lipgloss.NewStyle().
			Foreground(planColorDim)

	planWarnStyle = lipgloss.NewStyle().
			Foreground(planColorAmber)
)

// planRow is one generated resource.
type planRow struct {
	Order     int      `json:"order"`
	Layer     int      `json:"layer"`
	Kind      string   `json:"kind"`
	Name      string   `json:"name"`
	DependsOn []string `json:"dependsOn,omitempty"`
}

// planOutput is the JSON form of a plan.
type planOutput struct {
	Claim       string    `json:"claim"`
	Selector    string    `json:"selector"`
	Fingerprint string    `json:"fingerprint"`
	Resources   []planRow `json:"resources"`
	Warnings    []string  `json:"warnings,omitempty"`
}

// isInteractiveTTY reports whether stdout is a terminal.
var isInteractiveTTY = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Plan assembles the input document and lists the generated resources in
// build order.
func Plan(ctx context.Context, inputPath string, jsonOutput bool) error {
	req, err := loadRequest(inputPath)
	if err != nil {
		return err
	}

	res, err := newAssembler(logger()).Assemble(ctx, req.Observed.Composite.Resource)
	if err != nil {
		return fmt.Errorf("failed to assemble: %w", err)
	}

	out := buildPlan(res)

	if jsonOutput {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal plan: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(renderPlan(out, isInteractiveTTY()))
	return nil
}

func buildPlan(res *assembler.Result) *planOutput {
	g := res.Graph

	layerOf := make(map[string]int, g.Len())
	for i, layer := range g.Layers() {
		for _, name := range layer {
			layerOf[name] = i + 1
		}
	}

	out := &planOutput{
		Claim:       res.Config.Claim,
		Selector:    labels.SelectorForClaim(res.Config.Claim, res.Config.Environment),
		Fingerprint: g.Fingerprint(),
		Warnings:    res.Warnings,
	}
	for i, d := range g.Descriptors() {
		out.Resources = append(out.Resources, planRow{
			Order:     i + 1,
			Layer:     layerOf[d.Name],
			Kind:      d.Kind.Kind,
			Name:      d.Name,
			DependsOn: g.Dependencies(d.Name),
		})
	}
	return out
}

// renderPlan renders the plan as a table. Styled output adds colors and a
// rounded border.
func renderPlan(out *planOutput, styled bool) string {
	rows := make([][]string, 0, len(out.Resources))
	for _, r := range out.Resources {
		deps := strings.Join(r.DependsOn, ", ")
		if deps == "" {
			deps = "-"
		}
		rows = append(rows, []string{fmt.Sprint(r.Order), fmt.Sprint(r.Layer), r.Kind, r.Name, deps})
	}

	t := table.New().
		Headers("#", "LAYER", "KIND", "NAME", "DEPENDS ON").
		Rows(rows...)

	if styled {
		t = t.Border(lipgloss.RoundedBorder()).
			BorderStyle(planDimStyle).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return planHeaderStyle
				}
				return planCellStyle
			})
	} else {
		t = t.Border(lipgloss.NormalBorder())
	}

	layers := 0
	for _, r := range out.Resources {
		layers = max(layers, r.Layer)
	}

	var b strings.Builder
	title := fmt.Sprintf("vectordb plan: %s", out.Claim)
	if styled {
		title = planTitleStyle.Render(title)
	}
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(t.String())
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%d resources in %d layers, fingerprint %s\n", len(out.Resources), layers, out.Fingerprint)
	if out.Selector != "" {
		fmt.Fprintf(&b, "Select them with: -l %s\n", out.Selector)
	}

	for _, w := range out.Warnings {
		line := "Warning: " + w
		if styled {
			line = planWarnStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
