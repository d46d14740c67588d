package tui

import "github.com/Veraticus/tracker/internal/service"

// reportLoadedMsg carries a fresh snapshot of the store.
type reportLoadedMsg struct {
	err    error
	report *service.Report
}
