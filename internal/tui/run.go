package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/tracker/internal/service"
	"github.com/Veraticus/tracker/internal/tui/themes"
)

// Run opens the browser in the alternate screen and blocks until the user quits
// or ctx is canceled.
func Run(ctx context.Context, store service.TransactionStore, theme themes.Theme, opts ...tea.ProgramOption) error {
	if store == nil {
		return fmt.Errorf("storage is required")
	}

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(NewModel(ctx, store, theme), opts...)

	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("browse failed: %w", err)
	}
	return nil
}
