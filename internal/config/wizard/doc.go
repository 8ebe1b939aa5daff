// Package wizard provides an interactive configuration wizard for vectordb.
//
// This package implements a TUI-based wizard that guides users through
// creating a VectorDatabase composite resource. It uses charmbracelet/huh for
// form-based input collection.
//
// The main entry point is RunWizard, which orchestrates question groups
// and returns a WizardResult. Use BuildComposite to convert results to a
// VectorDatabase, and WriteComposite to generate the YAML output file.
package wizard
