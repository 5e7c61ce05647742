package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gosuda/ipl"
	iplruntime "github.com/gosuda/ipl/runtime"
)

type appConfig struct {
	ipl.Config
	script string
	// args is the vector the script sees: program name, script path, then
	// the forwarded arguments.
	args []string
}

type vmStartedMsg struct {
	events <-chan tea.Msg
}

type vmOutputMsg struct {
	out iplruntime.Output
}

type vmTraceMsg struct {
	line int
	text string
}

type vmDoneMsg struct {
	err error
}

type vmInputResp struct {
	value string
	ok    bool
}

type vmPromptMsg struct {
	req  iplruntime.InputRequest
	resp chan vmInputResp
}

type pendingInput struct {
	req  iplruntime.InputRequest
	resp chan vmInputResp
}
